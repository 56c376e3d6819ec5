package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"instrument-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repository can run
// against the shared pool or inside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.Repositories
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		Repositories: newRepositories(db),
	}
}

func newRepositories(db dbtx) repository.Repositories {
	return repository.Repositories{
		Users:       NewUserRepository(db),
		Instruments: NewInstrumentRepository(db),
		Ownerships:  NewOwnershipRepository(db),
		Rentals:     NewRentalRepository(db),
		Payments:    NewPaymentRepository(db),
		Reviews:     NewReviewRepository(db),
		Surveys:     NewSurveyRepository(db),
		Chats:       NewChatRepository(db),
	}
}

// RunInTx executes fn against a repository set bound to a single
// transaction, committing on success and rolling back on any error.
func (s *Store) RunInTx(ctx context.Context, fn func(r *repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := newRepositories(tx)
	if err := fn(&repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
