package postgres

import (
	"context"
	"database/sql"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type rentalRepository struct {
	db dbtx
}

func NewRentalRepository(db dbtx) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, renter_id, ownership_id, start_date, end_date, actual_return_date, total_cost, status, created_on`

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (renter_id, ownership_id, start_date, end_date, total_cost, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	rt.CreatedOn = now.Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, rt.RenterID, rt.OwnershipID, rt.StartDate, rt.EndDate, rt.TotalCost, rt.Status, now).Scan(&rt.ID)
}

func scanRental(scan func(...any) error) (*domain.Rental, error) {
	rt := &domain.Rental{}
	var start, end time.Time
	var actualReturn sql.NullTime
	var createdOn time.Time
	err := scan(&rt.ID, &rt.RenterID, &rt.OwnershipID, &start, &end, &actualReturn, &rt.TotalCost, &rt.Status, &createdOn)
	if err != nil {
		return nil, err
	}
	rt.StartDate = start.Format("2006-01-02")
	rt.EndDate = end.Format("2006-01-02")
	if actualReturn.Valid {
		d := actualReturn.Time.Format("2006-01-02")
		rt.ActualReturnDate = &d
	}
	rt.CreatedOn = createdOn.Format("2006-01-02")
	return rt, nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	return scanRental(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, actual_return_date=$2 WHERE id=$3`
	var actualReturn any
	if rt.ActualReturnDate != nil {
		actualReturn = *rt.ActualReturnDate
	}
	_, err := r.db.ExecContext(ctx, query, rt.Status, actualReturn, rt.ID)
	return err
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows.Scan)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ListByRenter(ctx context.Context, renterID int32) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE renter_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, renterID)
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Rental, error) {
	query := `SELECT r.id, r.renter_id, r.ownership_id, r.start_date, r.end_date, r.actual_return_date, r.total_cost, r.status, r.created_on
	          FROM rentals r
	          JOIN ownerships o ON o.id = r.ownership_id
	          WHERE o.user_id = $1 ORDER BY r.created_on DESC`
	return r.list(ctx, query, ownerID)
}

func (r *rentalRepository) HasActiveByOwnership(ctx context.Context, ownershipID int32) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM rentals WHERE ownership_id = $1 AND status IN ('pending', 'active'))`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, ownershipID).Scan(&exists)
	return exists, err
}

func (r *rentalRepository) CategoriesByRenter(ctx context.Context, renterID int32) ([]string, error) {
	query := `SELECT DISTINCT i.category
	          FROM rentals r
	          JOIN ownerships o ON o.id = r.ownership_id
	          JOIN instruments i ON i.id = o.instrument_id
	          WHERE r.renter_id = $1`
	rows, err := r.db.QueryContext(ctx, query, renterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
