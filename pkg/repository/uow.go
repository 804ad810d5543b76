package repository

import (
	"context"
	"reflect"
)

// UnitOfWork is the transaction boundary every ledger-mutating operation runs
// inside. Repositories obtained through it share one DB session, so either
// all of {account update(s), transaction row(s)} commit or none do.
//
// Do runs fn in a transaction: commit on nil return, full rollback on error.
// The repository accessors on the value passed to fn are bound to that
// transaction; accessors on the outer UnitOfWork operate autocommit.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary, providing a UnitOfWork
	// whose repositories share the transaction session.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current session. Example:
	//
	//	repoAny, err := uow.GetRepository(reflect.TypeOf((*AccountRepository)(nil)).Elem())
	//	repo := repoAny.(AccountRepository)
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe convenience accessors.
	UserRepository() (UserRepository, error)
	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	BudgetRepository() (BudgetRepository, error)
}
