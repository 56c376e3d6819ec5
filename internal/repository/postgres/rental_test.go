package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"instrument-rental-backend/internal/domain"
)

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rental := &domain.Rental{
			RenterID:    3,
			OwnershipID: 5,
			StartDate:   "2026-03-01",
			EndDate:     "2026-03-03",
			TotalCost:   60,
			Status:      domain.RentalStatusPending,
		}

		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.RenterID, rental.OwnershipID, rental.StartDate, rental.EndDate, rental.TotalCost, rental.Status, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

		err := repo.Create(ctx, rental)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rental.ID)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		start, _ := time.Parse("2006-01-02", "2026-03-01")
		end, _ := time.Parse("2006-01-02", "2026-03-03")
		rows := sqlmock.NewRows([]string{"id", "renter_id", "ownership_id", "start_date", "end_date", "actual_return_date", "total_cost", "status", "created_on"}).
			AddRow(1, 3, 5, start, end, nil, 60.0, "pending", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		rental, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rental.ID)
		assert.Equal(t, "2026-03-01", rental.StartDate)
		assert.Equal(t, "2026-03-03", rental.EndDate)
		assert.Nil(t, rental.ActualReturnDate)
		assert.Equal(t, domain.RentalStatusPending, rental.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM rentals WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestRentalRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("WithReturnDate", func(t *testing.T) {
		returned := "2026-03-02"
		rental := &domain.Rental{ID: 1, Status: domain.RentalStatusCompleted, ActualReturnDate: &returned}

		mock.ExpectExec("UPDATE rentals SET").
			WithArgs(rental.Status, returned, rental.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, rental))
	})

	t.Run("WithoutReturnDate", func(t *testing.T) {
		rental := &domain.Rental{ID: 1, Status: domain.RentalStatusCancelled}

		mock.ExpectExec("UPDATE rentals SET").
			WithArgs(rental.Status, nil, rental.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(ctx, rental))
	})
}

func TestRentalRepository_HasActiveByOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	active, err := repo.HasActiveByOwnership(ctx, 5)
	assert.NoError(t, err)
	assert.True(t, active)
}

func TestRentalRepository_CategoriesByRenter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT DISTINCT i.category").
		WithArgs(int32(3)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("guitar").AddRow("piano"))

	categories, err := repo.CategoriesByRenter(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"guitar", "piano"}, categories)
}
