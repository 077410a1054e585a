package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultDebounce = 300 * time.Millisecond

func watchCmd(root *rootOptions) *cobra.Command {
	var (
		only     []string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate when the schema or the config changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := root.logger(cmd)
			cfg, err := loadConfig(root.configFile)
			if err != nil {
				return err
			}
			w, err := newWatcher(cfg.watched(), debounce, log)
			if err != nil {
				return err
			}
			defer w.Close()

			regenerate := func(ctx context.Context) error {
				cfg, err := loadConfig(root.configFile)
				if err != nil {
					return err
				}
				report, err := runGenerate(ctx, cfg, only, log)
				if report != nil {
					printReport(cmd.OutOrStdout(), report, cfg.DryRun)
				}
				return err
			}
			if err := regenerate(ctx); err != nil {
				log.Error().Err(err).Msg("generate")
			}
			log.Info().Strs("files", cfg.watched()).Msg("watching")
			return w.Run(ctx, regenerate)
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "generate only the named targets")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "quiet period before regenerating")
	return cmd
}

// watcher reports changes of a fixed set of files. The parent directories
// are watched so that editors replacing a file by rename are noticed.
type watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	log      zerolog.Logger
}

func newWatcher(files []string, debounce time.Duration, log zerolog.Logger) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &watcher{
		fs:       fw,
		files:    make(map[string]bool, len(files)),
		debounce: debounce,
		log:      log,
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return w, nil
}

// Close stops watching.
func (w *watcher) Close() error { return w.fs.Close() }

// Run calls fn once per burst of changes, after no change was seen for the
// debounce period, until ctx is done. Calls of fn never overlap, and their
// errors are logged.
func (w *watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.files[filepath.Clean(event.Name)] || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := fn(ctx); err != nil {
				w.log.Error().Err(err).Msg("regenerate")
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher")
		}
	}
}
