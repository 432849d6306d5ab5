package repositories

import "context"

// TxFn runs with a context that carries the open transaction.
// Repository calls made with that context join the transaction.
type TxFn func(txCtx context.Context) error

// TransactionManager commits when fn returns nil and rolls back otherwise.
// Document replace uses it so the row update and the old key lookup are atomic.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
