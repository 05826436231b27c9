package memory

import "context"

// TxManager runs fn directly. Stores in this package apply each write
// atomically on its own and have nothing to roll back.
type TxManager struct{}

// NewTxManager creates a TxManager.
func NewTxManager() TxManager { return TxManager{} }

// RunInTx calls fn with ctx unchanged.
func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
