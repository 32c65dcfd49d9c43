// Package db carries a gorm transaction through context so that grouped
// writes, such as a message append together with its ticket touch and unread
// bump, or one broadcast batch, commit or roll back as a unit. Repositories
// stay unaware of transaction boundaries; they pick whatever handle the
// context holds.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey keys the in-flight transaction in the context.
type txKey struct{}

// TransactionManager opens transactions and hands the tx handle to nested
// repository calls via context.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction runs fn inside a transaction. The transaction commits when
// fn returns nil and rolls back when it returns an error.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTx returns the in-flight transaction, or the base connection when the
// caller is not inside one.
func (tm *TransactionManager) GetTx(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return tm.db.WithContext(ctx)
}

// GetTxFromContext is the repository-side accessor: it resolves the context's
// transaction against the repository's own connection.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
