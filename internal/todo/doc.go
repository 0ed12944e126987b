// Package todo owns the single ordered task list and the four operations on
// it: add, toggle, remove and list.
//
// Every operation is a whole-document read-modify-write through a
// Persistence port. Validation happens before anything is saved, so a failed
// call leaves the stored document exactly as it was.
//
// # Identifiers
//
// Tasks carry no stored id. Task N is the Nth element of the list (1-based),
// so removing task K renumbers every task after it.
//
// # Document format
//
// The list is stored under the key "todolist":
//
//	{
//	  "items": [
//	    {"title": "call mom", "done": true, "created_at": 105, "updated_at": 110},
//	    {"title": "buy milk", "done": false, "created_at": 120}
//	  ]
//	}
//
// updated_at is omitted until the task is first toggled. Documents are written
// with 2-space indentation and a trailing newline, and checked against
// todolist.schema.json when loaded.
package todo
