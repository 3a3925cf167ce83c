package tui

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/tui/msg"
)

// App wraps the Bubbletea program
type App struct {
	program *tea.Program
	model   Model
	opts    Options
}

// Result describes how the dashboard was closed.
type Result struct {
	// Link is the view link at exit.
	Link string
	// Yanked is set when the user quit asking for the link to be printed.
	Yanked bool
}

// New creates a new TUI application
func New(opts Options) *App {
	return &App{
		model: NewModel(opts),
		opts:  opts,
	}
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() (Result, error) {
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
	)

	// Quit cleanly on termination so the terminal is restored.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		if _, ok := <-sigChan; ok {
			a.program.Send(tea.Quit())
		}
	}()
	defer func() {
		signal.Stop(sigChan)
		close(sigChan)
	}()

	if a.opts.WatchPath != "" {
		w, err := resource.NewWatcher(a.opts.WatchPath, func(s *resource.Snapshot, err error) {
			a.program.Send(msg.SnapshotMsg{Snapshot: s, Err: err})
		})
		if err != nil {
			a.model.logger.Warn("file watching disabled", "path", a.opts.WatchPath, "error", err)
		} else {
			w.SetLogger(a.opts.Logger)
			w.Start()
			defer w.Stop()
		}
	}

	final, err := a.program.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := final.(Model)
	if !ok {
		m = a.model
	}
	m.debouncer.Stop()
	if m.stopSync != nil {
		m.stopSync()
	}
	return Result{Link: m.Link(), Yanked: m.Yanked()}, nil
}
