package gen

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/teogen/schema"
)

// Generator renders a schema through every configured target.
type Generator struct {
	schema *schema.Namespace
	config *Config
}

// NewGenerator creates a generator for the schema root ns.
//
// Example:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget(target.MustNew("ts"), "./client/ts"),
//	    gen.WithTarget(target.MustNew("rust"), "./src/entities"),
//	)
//	g, err := gen.NewGenerator(ns, cfg)
//	report, err := g.Generate(ctx)
func NewGenerator(ns *schema.Namespace, c *Config) (*Generator, error) {
	if ns == nil {
		return nil, NewSchemaError(nil, "schema cannot be nil", nil)
	}
	if c == nil {
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Generator{schema: ns, config: c}, nil
}

// Report summarizes a run.
type Report struct {
	Run     string
	Targets []string
	Metrics WriterMetrics
	Took    time.Duration
}

// Generate runs every job in parallel, bounded by the configured number of
// workers. Each job builds its own outline, so the outputs do not depend on
// scheduling order. The first failing job cancels the others.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{Run: uuid.NewString()}
	w := NewWriter(g.config, report.Run)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.config.Workers, 1))
	for _, job := range g.config.Jobs {
		report.Targets = append(report.Targets, job.Target.Name())
		eg.Go(func() error {
			return g.runJob(ctx, w, job)
		})
	}
	err := eg.Wait()
	report.Metrics = w.Metrics()
	report.Took = time.Since(start)
	return report, err
}

func (g *Generator) runJob(ctx context.Context, w *Writer, job *Job) error {
	name := job.Target.Name()
	log := g.config.Logger.With().Str("target", name).Str("dest", job.Dest).Logger()
	start := time.Now()
	log.Debug().Str("mode", job.Target.Mode().String()).Msg("start")

	outline, err := NewOutline(g.schema, job.Target.Mode(), g.schema)
	if err != nil {
		return NewGenerationError(name, "", "build outline", err)
	}
	files, err := job.Target.Render(&RenderContext{
		Outline:      outline,
		Schema:       g.schema,
		Dest:         job.Dest,
		ObjectName:   g.config.ObjectName,
		Header:       g.config.Header,
		Capabilities: CapabilitiesOf(outline),
	})
	if err != nil {
		return NewGenerationError(name, "", "render", err)
	}
	for _, f := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := w.Write(ctx, name, job.Dest, f); err != nil {
			return NewGenerationError(name, f.Path, "write", err)
		}
	}
	log.Info().Int("files", len(files)).Dur("took", time.Since(start)).Msg("generated")
	return nil
}

// Generate is a convenience wrapper that configures and runs a Generator.
func Generate(ctx context.Context, ns *schema.Namespace, opts ...Option) (*Report, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	g, err := NewGenerator(ns, c)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx)
}
