package todo

import (
	"context"
	"fmt"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

const (
	// ContractName identifies documents written by this program.
	ContractName = "todolist"
	// InfoKey is where the ContractInfo document lives.
	InfoKey = "contract_info"
)

func infoItem(kv store.KV) *Item[model.ContractInfo] {
	return NewItem[model.ContractInfo](kv, InfoKey, WithCheck(func(ci model.ContractInfo) error {
		if ci.Contract == "" {
			return &ValidationError{Path: "contract", Err: fmt.Errorf("missing required field")}
		}
		return nil
	}))
}

// Stamp records that version of this program initialized the data in kv.
func Stamp(ctx context.Context, kv store.KV, version string) error {
	return infoItem(kv).Save(ctx, model.ContractInfo{Contract: ContractName, Version: version})
}

// Version reads the stamp written by Stamp. It fails with ErrDocumentMissing
// on data that was never initialized.
func Version(ctx context.Context, kv store.KV) (model.ContractInfo, error) {
	return infoItem(kv).Load(ctx)
}
