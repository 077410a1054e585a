package gen

import (
	"errors"
	"runtime"

	"github.com/rs/zerolog"
)

// Format selects the formatter applied to generated Go files.
type Format string

// Supported formats.
const (
	FormatNone      Format = "none"
	FormatGoimports Format = "goimports"
	FormatGofumpt   Format = "gofumpt"
)

// DefaultObjectName is the package object name of generated clients.
const DefaultObjectName = "teo"

// Job binds a target to its destination directory.
type Job struct {
	Target Target
	Dest   string
}

// Config holds the options of a generation run.
type Config struct {
	// Jobs are the targets to generate, each with its own destination.
	Jobs []*Job
	// Header is written at the top of generated files.
	Header string
	// ObjectName is the client package object name ("teo").
	ObjectName string
	// Workers limits the number of targets generated in parallel.
	Workers int
	// Format is the formatter of generated Go files.
	Format Format
	// DryRun renders every file without touching the disk.
	DryRun bool
	// Logger receives per-file and per-target events.
	Logger zerolog.Logger
	// Ledger records checksums of written files. Optional.
	Ledger Ledger
}

// Option configures code generation.
type Option func(*Config) error

// WithTarget adds a target job writing into dest.
func WithTarget(t Target, dest string) Option {
	return func(c *Config) error {
		if t == nil {
			return NewConfigError("Target", nil, "target cannot be nil")
		}
		if dest == "" {
			return NewConfigError("Dest", t.Name(), "destination directory cannot be empty")
		}
		c.Jobs = append(c.Jobs, &Job{Target: t, Dest: dest})
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithObjectName sets the package object name of generated clients.
func WithObjectName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("ObjectName", nil, "object name cannot be empty")
		}
		c.ObjectName = name
		return nil
	}
}

// WithWorkers sets the number of targets generated in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithFormat sets the formatter for generated Go files.
// Supported formats: "none", "goimports", "gofumpt".
func WithFormat(f string) Option {
	return func(c *Config) error {
		switch Format(f) {
		case FormatNone, FormatGoimports, FormatGofumpt:
			c.Format = Format(f)
			return nil
		default:
			return NewConfigError("Format", f, "unsupported format; use none, goimports, or gofumpt")
		}
	}
}

// WithDryRun renders without writing.
func WithDryRun(dry bool) Option {
	return func(c *Config) error {
		c.DryRun = dry
		return nil
	}
}

// WithLogger sets the logger of the run.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// WithLedger sets the generation ledger.
func WithLedger(l Ledger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Ledger", nil, "ledger cannot be nil")
		}
		c.Ledger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate reports configuration errors that individual options cannot
// detect.
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return NewConfigError("Targets", nil, "at least one target is required")
	}
	seen := make(map[string]string, len(c.Jobs))
	for _, j := range c.Jobs {
		if prev, ok := seen[j.Dest]; ok {
			return NewConfigError("Dest", j.Dest, "shared by targets "+prev+" and "+j.Target.Name())
		}
		seen[j.Dest] = j.Target.Name()
	}
	return nil
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		ObjectName: DefaultObjectName,
		Workers:    runtime.GOMAXPROCS(0),
		Format:     FormatGoimports,
		Logger:     zerolog.Nop(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
