package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/todo"
)

// Store is the set of todo operations messages dispatch to.
type Store interface {
	Initialize(ctx context.Context) error
	Add(ctx context.Context, title string) error
	Toggle(ctx context.Context, id int) error
	Remove(ctx context.Context, id int) error
	List(ctx context.Context) ([]model.Task, error)
}

// Attribute is a key/value pair describing what a message did.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Response is returned by Instantiate and Execute.
type Response struct {
	Attributes []Attribute `json:"attributes"`
}

// Attr returns the value of the first attribute named key.
func (r Response) Attr(key string) string {
	for _, a := range r.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Contract routes decoded messages to a Store.
type Contract struct {
	Store   Store
	KV      store.KV // version stamp target; nil skips stamping
	Version string
	Logger  *log.Logger
}

func (c *Contract) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}

// Instantiate creates the empty list, then stamps the program version. A
// list that could not be saved leaves no stamp behind.
func (c *Contract) Instantiate(ctx context.Context, _ InstantiateMsg) (Response, error) {
	logger := c.logger().With("request_id", requestID(), "method", "instantiate")
	if err := c.Store.Initialize(ctx); err != nil {
		logger.Error("instantiate failed", "err", err)
		return Response{}, err
	}
	if c.KV != nil {
		if err := todo.Stamp(ctx, c.KV, c.Version); err != nil {
			logger.Error("stamp failed", "err", err)
			return Response{}, err
		}
	}
	logger.Debug("instantiated", "version", c.Version)
	return response("instantiate"), nil
}

// Execute applies one mutation.
func (c *Contract) Execute(ctx context.Context, msg ExecuteMsg) (Response, error) {
	method := msg.Method()
	logger := c.logger().With("request_id", requestID(), "method", method)

	var err error
	switch {
	case msg.Add != nil:
		err = c.Store.Add(ctx, msg.Add.Title)
	case msg.Update != nil:
		err = c.Store.Toggle(ctx, position(msg.Update.ID))
	case msg.Remove != nil:
		err = c.Store.Remove(ctx, position(msg.Remove.ID))
	default:
		err = fmt.Errorf("%w: empty execute message", ErrUnknownMessage)
	}
	if err != nil {
		logger.Debug("execute failed", "kind", todo.ErrorKind(err), "err", err)
		return Response{}, err
	}
	logger.Debug("executed")
	return response(method), nil
}

// Query answers a read-only message with its JSON encoding.
func (c *Contract) Query(ctx context.Context, msg QueryMsg) ([]byte, error) {
	if msg.List == nil {
		return nil, fmt.Errorf("%w: empty query message", ErrUnknownMessage)
	}
	tasks, err := c.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(tasks)
}

// position converts a wire id to a list position. Ids beyond int's range
// (32-bit platforms) saturate, so they are reported as not found.
func position(id uint32) int {
	return int(min(uint64(id), uint64(math.MaxInt)))
}

func response(method string) Response {
	return Response{Attributes: []Attribute{{Key: "method", Value: method}}}
}

func requestID() string {
	return uuid.Must(uuid.NewV7()).String()
}
