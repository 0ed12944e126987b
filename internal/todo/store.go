package todo

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
)

// MaxItems bounds the list. The check runs before appending and rejects only
// once the length is already above MaxItems, so a list can hold MaxItems+1
// tasks. Existing documents depend on that boundary.
const MaxItems = 1000

// Persistence loads and saves the whole task list.
type Persistence interface {
	Load(ctx context.Context) (model.TaskList, error)
	Save(ctx context.Context, l model.TaskList) error
}

// Clock supplies the height stamped on mutations. It must not decrease.
type Clock interface {
	Height() uint64
}

// Store applies todo operations to the persisted list. Callers serialize
// operations; Store does no locking of its own.
type Store struct {
	doc    Persistence
	clock  Clock
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger operations report to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(doc Persistence, clk Clock, opts ...Option) *Store {
	s := &Store{doc: doc, clock: clk}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Initialize saves an empty list, replacing whatever was stored.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.doc.Save(ctx, model.TaskList{Items: []model.Task{}}); err != nil {
		return err
	}
	s.logger.Debug("initialized", "op", "initialize")
	return nil
}

// Add appends a new pending task.
func (s *Store) Add(ctx context.Context, title string) error {
	if title == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidInput)
	}
	l, err := s.doc.Load(ctx)
	if err != nil {
		return err
	}
	if len(l.Items) > MaxItems {
		return fmt.Errorf("%w: %d items", ErrCapacityExceeded, len(l.Items))
	}

	h := s.clock.Height()
	l.Items = append(l.Items, model.Task{
		Title:     title,
		Done:      false,
		CreatedAt: h,
	})
	if err := s.doc.Save(ctx, l); err != nil {
		return err
	}
	s.logger.Debug("added", "op", "add", "id", len(l.Items), "height", h)
	return nil
}

// Toggle flips the done flag of task id and stamps it with the current
// height. Toggling twice restores the flag but not UpdatedAt. A height below
// the task's CreatedAt is raised to it so the stamp never precedes creation.
func (s *Store) Toggle(ctx context.Context, id int) error {
	if err := checkID(id); err != nil {
		return err
	}
	l, err := s.doc.Load(ctx)
	if err != nil {
		return err
	}
	idx, err := index(l, id)
	if err != nil {
		return err
	}

	h := max(s.clock.Height(), l.Items[idx].CreatedAt)
	l.Items[idx].Done = !l.Items[idx].Done
	l.Items[idx].UpdatedAt = model.Height(h)
	if err := s.doc.Save(ctx, l); err != nil {
		return err
	}
	s.logger.Debug("toggled", "op", "toggle", "id", id, "done", l.Items[idx].Done, "height", h)
	return nil
}

// Remove deletes task id. Tasks after it move up one position.
func (s *Store) Remove(ctx context.Context, id int) error {
	if err := checkID(id); err != nil {
		return err
	}
	l, err := s.doc.Load(ctx)
	if err != nil {
		return err
	}
	idx, err := index(l, id)
	if err != nil {
		return err
	}

	l.Items = append(l.Items[:idx], l.Items[idx+1:]...)
	if err := s.doc.Save(ctx, l); err != nil {
		return err
	}
	s.logger.Debug("removed", "op", "remove", "id", id)
	return nil
}

// List returns the tasks in stored order. Task i of the result has id i+1.
func (s *Store) List(ctx context.Context) ([]model.Task, error) {
	l, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, len(l.Items))
	copy(out, l.Items)
	return out, nil
}

func checkID(id int) error {
	if id < 1 {
		return fmt.Errorf("%w: invalid id %d", ErrInvalidInput, id)
	}
	return nil
}

func index(l model.TaskList, id int) (int, error) {
	if id > len(l.Items) {
		return 0, fmt.Errorf("%w: no task %d (have %d)", ErrNotFound, id, len(l.Items))
	}
	return id - 1, nil
}
