package database

import (
	"context"
	"sync"
)

// memTxKey is a context key type for storing in-memory transactions.
type memTxKey struct{}

// memTx collects the compensating actions of one in-memory transaction.
type memTx struct {
	owner *MemoryTxManager
	undo  []func()
}

// MemoryTxManager is the TxManager of the in-memory storage backend.
//
// It admits one writing transaction at a time for its whole duration, which gives
// every transition a strict global order. Repositories record an undo function
// for each mutation through Write; when the transaction function fails the undo
// journal is replayed in reverse so no partial effect survives. Readers outside a
// transaction share a read lock and observe only committed state.
type MemoryTxManager struct {
	mu sync.RWMutex
}

// NewMemoryTxManager creates a new in-memory transaction manager.
func NewMemoryTxManager() *MemoryTxManager {
	return &MemoryTxManager{}
}

// WithTx executes fn while holding the writer lock. A panic in fn reverts its
// writes before it propagates.
func (m *MemoryTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.current(ctx) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{owner: m}
	defer func() {
		if r := recover(); r != nil {
			tx.rollback()
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, memTxKey{}, tx)); err != nil {
		tx.rollback()
		return err
	}

	return nil
}

func (tx *memTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

// Read runs fn against a consistent view of the store.
func (m *MemoryTxManager) Read(ctx context.Context, fn func()) {
	if m.current(ctx) != nil {
		fn()
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	fn()
}

// Write applies a mutation. fn performs the change and returns the function that
// reverts it; the revert is kept until the surrounding transaction commits.
func (m *MemoryTxManager) Write(ctx context.Context, fn func() (undo func())) {
	if tx := m.current(ctx); tx != nil {
		if undo := fn(); undo != nil {
			tx.undo = append(tx.undo, undo)
		}
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

func (m *MemoryTxManager) current(ctx context.Context) *memTx {
	tx, ok := ctx.Value(memTxKey{}).(*memTx)
	if !ok || tx.owner != m {
		return nil
	}
	return tx
}

// PingContext lets the in-memory store stand in for a database in readiness checks.
func (m *MemoryTxManager) PingContext(context.Context) error {
	return nil
}
