package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Relsola/moon"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "compile [file...]",
		Aliases: []string{"c"},
		Short:   "Compile source to C-like calls",
		Example: `  moon compile -c '(add 2 (subtract 4 2))'
  moon compile a.moon b.moon
  moon compile --watch main.moon`,
		RunE: compileHandler,
	}
	addInputFlags(cmd)
	cmd.Flags().BoolP("watch", "w", false, "Recompile the file whenever it changes")
	return cmd
}

func compileHandler(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if len(args) != 1 {
			return errors.New("--watch requires exactly one file")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return watchFile(ctx, args[0], out, cmd.ErrOrStderr(), compileOptions()...)
	}

	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}
	if len(sources) == 1 {
		opts := append(compileOptions(), moon.WithFilename(sources[0].Name))
		output, err := moon.Compile(sources[0].Code, opts...)
		if err != nil {
			return err
		}
		return printCompiled(out, output)
	}

	results, err := moon.CompileAll(cmd.Context(), sources, compileOptions()...)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		fmt.Fprintln(out, faint("// "+r.Name))
		if perr := printCompiled(out, r.Output); perr != nil {
			return perr
		}
	}
	return err
}

func printCompiled(w io.Writer, output string) error {
	if output == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, output)
	return err
}

// watchFile compiles path once and again after every change until ctx is
// done. Compile errors are reported and watching continues. The parent
// directory is watched so that editors replacing the file are seen too.
func watchFile(ctx context.Context, path string, out, errOut io.Writer, opts ...moon.Option) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	opts = append(opts[:len(opts):len(opts)], moon.WithFilename(path))
	compileOnce := func() {
		data, err := os.ReadFile(abs)
		if err == nil {
			var output string
			if output, err = moon.Compile(string(data), opts...); err == nil {
				_ = printCompiled(out, output)
				return
			}
		}
		fmt.Fprint(errOut, renderError(err))
	}
	compileOnce()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				compileOnce()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
