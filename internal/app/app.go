package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atomicstack/pokedex/internal/feature/list"
	"github.com/atomicstack/pokedex/internal/logging/events"
	"github.com/atomicstack/pokedex/internal/pokeapi"
	"github.com/atomicstack/pokedex/internal/store"
	"github.com/atomicstack/pokedex/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	BaseURL         string
	PageSize        int
	HardLimit       int
	Concurrency     int
	RequestInterval time.Duration
	Timeout         time.Duration
	Preview         bool
	Width           int
	Height          int
	ShowFooter      bool
}

// Repository returns the entity source described by cfg.
func Repository(cfg Config) pokeapi.Repository {
	if cfg.Preview {
		return pokeapi.Preview()
	}
	return pokeapi.New(pokeapi.Config{
		BaseURL:         cfg.BaseURL,
		Concurrency:     cfg.Concurrency,
		Timeout:         cfg.Timeout,
		RequestInterval: cfg.RequestInterval,
	})
}

// NewStore builds the root list store. Callers own Close.
func NewStore(cfg Config, repo pokeapi.Repository, opts ...store.Option) *store.Store[list.State, list.Action] {
	initial := list.NewStateWithLimits(cfg.PageSize, cfg.HardLimit)
	return store.New(initial, list.Reducer(list.Env{Client: repo}), opts...)
}

// Run bootstraps and executes the Bubble Tea program. An interrupt or
// termination signal cancels outstanding fetches and ends the program.
func Run(cfg Config) (err error) {
	defer func() { events.App.Stop(err) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	st := NewStore(cfg, Repository(cfg), store.WithContext(ctx))
	defer st.Close()

	model := ui.NewModel(st, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
	})
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
