package inventory

import (
	"context"

	"github.com/restaurant/backend/internal/domain/inventory"
	"github.com/restaurant/backend/internal/domain/menuplan"
	"github.com/restaurant/backend/internal/domain/reception"
)

// TransactionScope provides transactional access to the repositories touched
// by multi-row write groups: the plan-commit triple (ledger append, plan
// delete, plan insert) and the reception group (header plus N batches).
// When a function is executed within a scope, all repository operations are
// part of the same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.InventoryBatchRepository
	// TransactionRepo returns the ledger repository scoped to the current transaction
	TransactionRepo() inventory.InventoryTransactionRepository
	// PlanRepo returns the menu plan repository scoped to the current transaction
	PlanRepo() menuplan.Repository
	// ReceptionRepo returns the reception repository scoped to the current transaction
	ReceptionRepo() reception.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	batchRepo       inventory.InventoryBatchRepository
	transactionRepo inventory.InventoryTransactionRepository
	planRepo        menuplan.Repository
	receptionRepo   reception.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	batchRepo inventory.InventoryBatchRepository,
	transactionRepo inventory.InventoryTransactionRepository,
	planRepo menuplan.Repository,
	receptionRepo reception.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		batchRepo:       batchRepo,
		transactionRepo: transactionRepo,
		planRepo:        planRepo,
		receptionRepo:   receptionRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() inventory.InventoryBatchRepository {
	return s.batchRepo
}

// TransactionRepo returns the ledger repository.
func (s *NoOpTransactionScope) TransactionRepo() inventory.InventoryTransactionRepository {
	return s.transactionRepo
}

// PlanRepo returns the menu plan repository.
func (s *NoOpTransactionScope) PlanRepo() menuplan.Repository {
	return s.planRepo
}

// ReceptionRepo returns the reception repository.
func (s *NoOpTransactionScope) ReceptionRepo() reception.Repository {
	return s.receptionRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
