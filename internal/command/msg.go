// Package command decodes todo messages and applies them to a store.
//
// Messages are JSON objects with exactly one variant key:
//
//	{}                              instantiate
//	{"add": {"title": "buy milk"}}  execute
//	{"update": {"id": 2}}           execute (toggle done)
//	{"remove": {"id": 1}}           execute
//	{"list": {}}                    query
package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/idilsaglam/todolist/internal/todo"
)

// ErrUnknownMessage is returned for messages that don't decode to exactly one
// known variant. It matches todo.ErrInvalidInput.
var ErrUnknownMessage = fmt.Errorf("%w: unknown message", todo.ErrInvalidInput)

type InstantiateMsg struct{}

type ExecuteMsg struct {
	Add    *AddMsg    `json:"add,omitempty"`
	Update *UpdateMsg `json:"update,omitempty"`
	Remove *RemoveMsg `json:"remove,omitempty"`
}

type AddMsg struct {
	Title string `json:"title"`
}

type UpdateMsg struct {
	ID uint32 `json:"id"`
}

type RemoveMsg struct {
	ID uint32 `json:"id"`
}

type QueryMsg struct {
	List *ListMsg `json:"list,omitempty"`
}

type ListMsg struct{}

// Method names the variant, as reported in the response attributes.
func (m ExecuteMsg) Method() string {
	switch {
	case m.Add != nil:
		return "add"
	case m.Update != nil:
		return "update"
	case m.Remove != nil:
		return "remove"
	}
	return ""
}

func (m ExecuteMsg) variants() int {
	n := 0
	for _, set := range []bool{m.Add != nil, m.Update != nil, m.Remove != nil} {
		if set {
			n++
		}
	}
	return n
}

// DecodeInstantiate accepts an empty object.
func DecodeInstantiate(b []byte) (InstantiateMsg, error) {
	var msg InstantiateMsg
	if err := decodeStrict(b, &msg); err != nil {
		return msg, err
	}
	return msg, nil
}

func DecodeExecute(b []byte) (ExecuteMsg, error) {
	var msg ExecuteMsg
	if err := decodeStrict(b, &msg); err != nil {
		return msg, err
	}
	if msg.variants() != 1 {
		return msg, fmt.Errorf("%w: want exactly one of add, update, remove", ErrUnknownMessage)
	}
	return msg, nil
}

func DecodeQuery(b []byte) (QueryMsg, error) {
	var msg QueryMsg
	if err := decodeStrict(b, &msg); err != nil {
		return msg, err
	}
	if msg.List == nil {
		return msg, fmt.Errorf("%w: want list", ErrUnknownMessage)
	}
	return msg, nil
}

func decodeStrict(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownMessage, err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", ErrUnknownMessage)
	}
	return nil
}
