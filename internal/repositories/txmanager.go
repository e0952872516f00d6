package repositories

import (
	"fmt"

	"gorm.io/gorm"
)

// TxManager hands out request-scoped database transactions. One transaction
// per request; nested begins are not supported.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager over the given database handle.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Begin starts a new transaction and returns its explicit handle.
func (m *TxManager) Begin() (*Tx, error) {
	tx := m.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &Tx{db: tx}, nil
}

// Tx is an open transaction. Exactly one of Commit or Rollback finishes it;
// further calls are no-ops, so a deferred Rollback after a successful Commit
// is safe.
type Tx struct {
	db       *gorm.DB
	finished bool
}

// DB returns the transactional handle for binding repositories.
func (t *Tx) DB() *gorm.DB {
	return t.db
}

// Commit finalizes all writes since Begin.
func (t *Tx) Commit() error {
	if t.finished {
		return nil
	}
	t.finished = true
	if err := t.db.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards all writes since Begin. Safe to call when nothing was
// written and after the transaction already finished.
func (t *Tx) Rollback() error {
	if t.finished {
		return nil
	}
	t.finished = true
	if err := t.db.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}
