package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/midbel/grapher/dash"
	"github.com/midbel/grapher/decode"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	watchFiles bool
	parallel   int
)

func drawCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw [file.chart...]",
		Short: "Render the charts of description files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDraw,
	}
	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "render again when a file changes")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 4, "number of files rendered at the same time")
	return cmd
}

func runDraw(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()
	grp, sub := errgroup.WithContext(ctx)
	if parallel > 0 {
		grp.SetLimit(parallel)
	}
	for _, f := range files {
		f := f
		grp.Go(func() error {
			_, err := renderFile(sub, f)
			return err
		})
	}
	err := grp.Wait()
	if !watchFiles {
		return err
	}
	if err != nil {
		slog.Error("render failed", slog.String("err", err.Error()))
	}
	return watch(ctx, files)
}

// renderFile decodes and renders a description file. It returns the local
// files the description depends on.
func renderFile(ctx context.Context, file string) ([]string, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cfg, err := decode.NewDecoder(r).Decode()
	if err != nil {
		return nil, err
	}
	deps := dependencies(cfg)
	if err := cfg.Render(ctx); err != nil {
		return deps, fmt.Errorf("%s: %w", file, err)
	}
	slog.Info("chart rendered", slog.String("file", file), slog.String("output", cfg.Path))
	return deps, nil
}

func dependencies(cfg *dash.Config) []string {
	var list []string
	for _, el := range cfg.Elements {
		switch ds := el.Data.(type) {
		case dash.File:
			list = append(list, ds.Path)
		case dash.Sheet:
			list = append(list, ds.Path)
		}
	}
	return list
}

// watch renders a description file again each time it is written or one of
// the local data files it loads changes. It stops when ctx is cancelled.
func watch(ctx context.Context, files []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fail to create file watcher: %w", err)
	}
	defer w.Close()

	var (
		owners = make(map[string][]string)
		dirs   = make(map[string]struct{})
	)
	track := func(file, owner string) {
		abs, err := filepath.Abs(file)
		if err != nil {
			return
		}
		owners[abs] = appendOnce(owners[abs], owner)
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			return
		}
		if err := w.Add(dir); err != nil {
			slog.Warn("directory not watched", slog.String("dir", dir), slog.String("err", err.Error()))
			return
		}
		dirs[dir] = struct{}{}
	}
	for _, f := range files {
		track(f, f)
		r, err := os.Open(f)
		if err != nil {
			continue
		}
		if cfg, err := decode.NewDecoder(r).Decode(); err == nil {
			for _, dep := range dependencies(cfg) {
				track(dep, f)
			}
		}
		r.Close()
	}
	slog.Info("watching files", slog.Int("files", len(owners)))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			for _, f := range owners[abs] {
				deps, err := renderFile(ctx, f)
				if err != nil {
					slog.Error("render failed", slog.String("file", f), slog.String("err", err.Error()))
					continue
				}
				for _, dep := range deps {
					track(dep, f)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", slog.String("err", err.Error()))
		}
	}
}

func appendOnce(list []string, str string) []string {
	for _, s := range list {
		if s == str {
			return list
		}
	}
	return append(list, str)
}
