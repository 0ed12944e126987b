package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/todolist/internal/clock"
	"github.com/idilsaglam/todolist/internal/command"
	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/store/memstore"
	"github.com/idilsaglam/todolist/internal/store/sqlitestore"
	"github.com/idilsaglam/todolist/internal/todo"
)

// app is everything one command needs, opened from the config.
type app struct {
	kv       store.KV
	store    *todo.Store
	contract *command.Contract
}

func (a *app) Close() error {
	return a.kv.Close()
}

// open connects the configured backend. With autoInit the list is created
// when it does not exist yet and the config allows it.
func (o *RootOptions) open(ctx context.Context, autoInit bool) (*app, error) {
	kv, err := openKV(o.cfg)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "open "+o.cfg.Backend, err)
	}

	doc := todo.NewTaskList(kv)
	clk := newClock(ctx, o.cfg, doc)
	s := todo.New(doc, clk, todo.WithLogger(o.logger))
	a := &app{
		kv:    kv,
		store: s,
		contract: &command.Contract{
			Store:   s,
			KV:      kv,
			Version: o.Version,
			Logger:  o.logger,
		},
	}

	if autoInit && o.cfg.AutoInit {
		exists, err := doc.Exists(ctx)
		if err != nil {
			kv.Close()
			return nil, opError("open", err)
		}
		if !exists {
			o.logger.Info("creating list", "backend", o.cfg.Backend, "data", o.cfg.DataPath())
			if _, err := a.contract.Instantiate(ctx, command.InstantiateMsg{}); err != nil {
				kv.Close()
				return nil, opError("init", err)
			}
		}
	}
	return a, nil
}

func openKV(cfg *config.Config) (store.KV, error) {
	switch cfg.Backend {
	case "memory":
		return memstore.New(), nil
	case "sqlite":
		path := cfg.DataPath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		return sqlitestore.Open(path)
	case "json":
		return jsonstore.Open(cfg.DataPath())
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// newClock builds the configured clock. Both clocks resume from the highest
// height already in the list, so stamps stay non-decreasing across runs even
// if the wall clock steps back or the clock kind changes.
func newClock(ctx context.Context, cfg *config.Config, doc *todo.Item[model.TaskList]) todo.Clock {
	var floor uint64
	// A missing or unreadable list has no floor; the operation itself
	// reports the load error.
	if l, err := doc.Load(ctx); err == nil {
		floor = maxHeight(l.Items)
	}
	if cfg.Clock != "counter" {
		return clock.NewUnix(floor)
	}
	return clock.NewCounter(max(cfg.ClockStart, floor))
}

func maxHeight(tasks []model.Task) uint64 {
	var h uint64
	for _, t := range tasks {
		h = max(h, t.CreatedAt)
		if t.UpdatedAt != nil {
			h = max(h, *t.UpdatedAt)
		}
	}
	return h
}
