package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"github.com/vk/attrinspect/internal/ctxlog"
	"github.com/vk/attrinspect/internal/document"
	"github.com/vk/attrinspect/internal/notify"
	"github.com/vk/attrinspect/internal/render"
	"github.com/vk/attrinspect/internal/tui"
	"golang.org/x/term"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run executes the main application logic: it opens the configured document
// and hands the inspector window to the terminal UI, or prints a report when
// the output is not a terminal or a dump was requested.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer a.window.Detach()

	profile := termenv.Ascii
	if a.isTerminal(a.outW) {
		profile = termenv.EnvColorProfile()
	}
	report := render.NewReport(a.outW, profile)

	if a.cfg.Describe != "" {
		return report.Describe(a.schema, a.registry, a.cfg.Describe)
	}

	if path := a.config.DocumentPath; path != "" {
		doc, err := document.LoadDOT(path)
		if err != nil {
			return fmt.Errorf("failed to open document: %w", err)
		}
		a.ctrl.SetCurrent(doc)
		a.logger.Info("Document opened.", "document", doc.Name(), "path", path)
	}

	if a.cfg.Dump || !a.isTerminal(a.outW) {
		a.logger.Debug("Writing non-interactive report.")
		return report.Dump(a.window)
	}

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.startFeeds(ctx, &wg); err != nil {
		return err
	}

	screen, err := a.newScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	err = tui.New(ctx, screen, a.window).Run(ctx)
	a.logger.Debug("App.Run method finished.")
	return err
}

// startFeeds launches the document-change feeds. They stop when ctx is
// cancelled and are waited for through wg.
func (a *App) startFeeds(ctx context.Context, wg *sync.WaitGroup) error {
	if a.config.Window.Watch && a.config.DocumentPath != "" {
		watcher, err := document.NewWatcher(a.ctrl, a.config.DocumentPath, nil)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer watcher.Close()
			watcher.Run(ctx)
		}()
		a.logger.Debug("Document watcher started.", "path", watcher.Path())
	}

	if a.config.Notify.Enabled() {
		sub := notify.NewSubscriber(ctx, a.config.Notify, a.ctrl, nil)
		if err := sub.Connect(ctx); err != nil {
			// The inspector stays usable without the editor feed.
			a.logger.Warn("Document feed unavailable.", "error", err)
			return nil
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			sub.Close()
		}()
	}
	return nil
}
