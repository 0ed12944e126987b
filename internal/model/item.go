package model

// Task is one row of the todo list. Its identifier is not stored: a task is
// addressed by its 1-based position in TaskList.Items.
type Task struct {
	Title     string  `json:"title" yaml:"title"`
	Done      bool    `json:"done" yaml:"done"`
	CreatedAt uint64  `json:"created_at" yaml:"created_at"`
	UpdatedAt *uint64 `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// TaskList is the single persisted document.
type TaskList struct {
	Items []Task `json:"items" yaml:"items"`
}

// ContractInfo records which program and version initialized the document.
type ContractInfo struct {
	Contract string `json:"contract" yaml:"contract"`
	Version  string `json:"version" yaml:"version"`
}

// Height returns a pointer to h, for UpdatedAt.
func Height(h uint64) *uint64 { return &h }
