// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/api2spec/tape2spec/internal/config"
	"github.com/api2spec/tape2spec/internal/generator"
	"github.com/api2spec/tape2spec/internal/scanner"
)

var (
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the tapes directory and regenerate the specification",
	Long: `Watch the tapes directory and regenerate the Swagger specification.

This command monitors the tape corpus and regenerates the output file when
tapes are added, changed, or removed. The output file is only rewritten when
its content changes.

Example:
  tape2spec watch                          # Watch ./tapes
  tape2spec watch -t recordings            # Watch another directory
  tape2spec watch --debounce 1000          # Wait 1s before regenerating
  tape2spec watch --on-change "make docs"  # Run command after regeneration`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: from config, 500)")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "command to run after regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}
	if watchOnChange != "" {
		cfg.Watch.OnChange = watchOnChange
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch(ctx, cfg)
}

// specWatcher regenerates the output file of one configuration.
type specWatcher struct {
	config   *config.Config
	gen      *generator.Generator
	checksum uint64
	onChange func(ctx context.Context) error
	debounce time.Duration
}

func newSpecWatcher(cfg *config.Config) (*specWatcher, error) {
	gen, err := generator.New(cfg)
	if err != nil {
		return nil, err
	}

	w := &specWatcher{
		config:   cfg,
		gen:      gen,
		debounce: time.Duration(cfg.Watch.Debounce) * time.Millisecond,
	}
	if data, err := os.ReadFile(cfg.Output); err == nil {
		w.checksum = xxhash.Checksum64(data)
	}
	if cfg.Watch.OnChange != "" {
		w.onChange = func(ctx context.Context) error {
			return runOnChange(ctx, cfg.Watch.OnChange)
		}
	}
	return w, nil
}

// regenerate generates the document and rewrites the output file when its
// content changed. It reports whether the file was written.
func (w *specWatcher) regenerate(ctx context.Context) (bool, error) {
	result, data, err := w.gen.Run(ctx)
	if err != nil {
		return false, err
	}
	if result.Warnings != nil {
		printWarning("skipped %d tape(s)", len(result.Skipped))
		printVerbose("%v", result.Warnings)
	}

	sum := xxhash.Checksum64(data)
	if sum == w.checksum {
		return false, nil
	}

	if dir := filepath.Dir(w.config.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(w.config.Output, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}
	w.checksum = sum

	printInfo("Wrote %s (%d paths, %d definitions)", w.config.Output, len(result.Doc.Paths), len(result.Doc.Definitions))
	return true, nil
}

// relevant reports whether a file system event can change the document.
func (w *specWatcher) relevant(event fsnotify.Event) bool {
	if w.gen.Scanner().Matches(event.Name) {
		return true
	}
	// a removed directory takes its tapes with it
	return event.Has(fsnotify.Remove|fsnotify.Rename) && !scanner.IsTapeFile(event.Name)
}

// watch regenerates once, then again after every burst of tape changes,
// until ctx is done.
func watch(ctx context.Context, cfg *config.Config) error {
	w, err := newSpecWatcher(cfg)
	if err != nil {
		return err
	}

	dirs, err := w.gen.Scanner().Dirs()
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %s", w.debounce)
	if cfg.Watch.OnChange != "" {
		printVerbose("  On change: %s", cfg.Watch.OnChange)
	}
	count, err := w.gen.Scanner().FileCount()
	if err != nil {
		return fmt.Errorf("failed to count tapes: %w", err)
	}
	printInfo("Watching %d tapes in %d directories under %s", count, len(dirs), cfg.Tapes)
	printInfo("Press Ctrl+C to stop")

	w.update(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			created := event.Has(fsnotify.Create) && isDir(event.Name)
			if created {
				// tapes written before the watch was added are only picked
				// up by the regeneration this triggers
				addTree(fsw, event.Name)
			}
			if !created && !w.relevant(event) {
				continue
			}
			printVerbose("Changed: %s", event.Name)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			printError("%v", err)

		case <-fire:
			fire = nil
			w.update(ctx)
		}
	}
}

// addTree watches dir and every directory below it.
func addTree(fsw *fsnotify.Watcher, dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			printError("failed to watch %s: %v", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// update regenerates and runs the on-change command when the output changed.
func (w *specWatcher) update(ctx context.Context) {
	changed, err := w.regenerate(ctx)
	if err != nil {
		printError("%v", err)
		return
	}
	if !changed {
		printVerbose("No changes")
		return
	}
	if w.onChange != nil {
		if err := w.onChange(ctx); err != nil {
			printError("on-change command failed: %v", err)
		}
	}
}

// runOnChange runs a shell command, forwarding its output.
func runOnChange(ctx context.Context, command string) error {
	c := exec.CommandContext(ctx, "sh", "-c", command)
	c.Stdout = rootCmd.OutOrStdout()
	c.Stderr = rootCmd.ErrOrStderr()
	return c.Run()
}
