package todo

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

// ListKey is the well-known key the task list document lives under.
const ListKey = "todolist"

//go:embed todolist.schema.json
var taskListSchemaJSON string

var taskListSchema = jsonschema.MustCompileString("todolist.schema.json", taskListSchemaJSON)

// Item is one JSON document of type T stored under a fixed key.
type Item[T any] struct {
	kv     store.KV
	key    string
	schema *jsonschema.Schema
	check  func(T) error
}

// ItemOption configures an Item.
type ItemOption[T any] func(*Item[T])

// WithSchema validates the raw document against s on every Load.
func WithSchema[T any](s *jsonschema.Schema) ItemOption[T] {
	return func(it *Item[T]) { it.schema = s }
}

// WithCheck runs fn on every decoded document before Load returns it.
func WithCheck[T any](fn func(T) error) ItemOption[T] {
	return func(it *Item[T]) { it.check = fn }
}

func NewItem[T any](kv store.KV, key string, opts ...ItemOption[T]) *Item[T] {
	it := &Item[T]{kv: kv, key: key}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// NewTaskList returns the Persistence for the task list document in kv.
func NewTaskList(kv store.KV) *Item[model.TaskList] {
	return NewItem[model.TaskList](kv, ListKey,
		WithSchema[model.TaskList](taskListSchema),
		WithCheck(checkTaskList),
	)
}

// Key returns the storage key.
func (it *Item[T]) Key() string { return it.key }

// Load reads and decodes the document. A missing key yields
// ErrDocumentMissing; anything else that goes wrong is an ErrStorageFailure.
func (it *Item[T]) Load(ctx context.Context) (T, error) {
	var zero T
	b, err := it.kv.Get(ctx, it.key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return zero, fmt.Errorf("%w: %q", ErrDocumentMissing, it.key)
		}
		return zero, fmt.Errorf("%w: load %q: %w", ErrStorageFailure, it.key, err)
	}

	if it.schema != nil {
		if err := validateSchema(it.schema, b); err != nil {
			return zero, fmt.Errorf("%w: load %q: %w", ErrStorageFailure, it.key, err)
		}
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return zero, fmt.Errorf("%w: json unmarshal %q: %w", ErrStorageFailure, it.key, err)
	}
	if it.check != nil {
		if err := it.check(v); err != nil {
			return zero, fmt.Errorf("%w: load %q: %w", ErrStorageFailure, it.key, err)
		}
	}
	return v, nil
}

// Save encodes v with 2-space indentation and a trailing newline and
// replaces the stored document.
func (it *Item[T]) Save(ctx context.Context, v T) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: json marshal %q: %w", ErrStorageFailure, it.key, err)
	}
	b = append(b, '\n')
	if err := it.kv.Put(ctx, it.key, b); err != nil {
		return fmt.Errorf("%w: save %q: %w", ErrStorageFailure, it.key, err)
	}
	return nil
}

// Exists reports whether the document has been stored.
func (it *Item[T]) Exists(ctx context.Context) (bool, error) {
	_, err := it.kv.Get(ctx, it.key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return true, nil
}

// checkTaskList enforces what the schema cannot express.
func checkTaskList(l model.TaskList) error {
	for i, t := range l.Items {
		if t.UpdatedAt != nil && *t.UpdatedAt < t.CreatedAt {
			return &ValidationError{
				Path: fmt.Sprintf("items[%d].updated_at", i),
				Err:  fmt.Errorf("%d is before created_at %d", *t.UpdatedAt, t.CreatedAt),
			}
		}
	}
	return nil
}

func validateSchema(s *jsonschema.Schema, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	err := s.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	return firstSchemaError(ve)
}

// firstSchemaError descends to the first leaf cause, which names the
// offending field rather than the root.
func firstSchemaError(ve *jsonschema.ValidationError) error {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Path: jsonPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
