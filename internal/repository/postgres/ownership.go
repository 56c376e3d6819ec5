package postgres

import (
	"context"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type ownershipRepository struct {
	db dbtx
}

func NewOwnershipRepository(db dbtx) repository.OwnershipRepository {
	return &ownershipRepository{db: db}
}

const ownershipColumns = `id, user_id, instrument_id, condition, daily_rate, COALESCE(image_url, ''), COALESCE(location, ''), is_available, created_on`

func (r *ownershipRepository) Create(ctx context.Context, o *domain.Ownership) error {
	query := `INSERT INTO ownerships (user_id, instrument_id, condition, daily_rate, image_url, location, is_available, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	o.IsAvailable = true
	o.CreatedOn = now.Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, o.UserID, o.InstrumentID, o.Condition, o.DailyRate, o.ImageURL, o.Location, o.IsAvailable, now).Scan(&o.ID)
}

func (r *ownershipRepository) scanOne(row interface{ Scan(...any) error }) (*domain.Ownership, error) {
	o := &domain.Ownership{}
	var createdOn time.Time
	err := row.Scan(&o.ID, &o.UserID, &o.InstrumentID, &o.Condition, &o.DailyRate, &o.ImageURL, &o.Location, &o.IsAvailable, &createdOn)
	if err != nil {
		return nil, err
	}
	o.CreatedOn = createdOn.Format("2006-01-02")
	return o, nil
}

func (r *ownershipRepository) GetByID(ctx context.Context, id int32) (*domain.Ownership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM ownerships WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *ownershipRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Ownership, error) {
	query := `SELECT ` + ownershipColumns + ` FROM ownerships WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *ownershipRepository) list(ctx context.Context, query string, args ...any) ([]domain.Ownership, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ownerships []domain.Ownership
	for rows.Next() {
		var o domain.Ownership
		var createdOn time.Time
		if err := rows.Scan(&o.ID, &o.UserID, &o.InstrumentID, &o.Condition, &o.DailyRate, &o.ImageURL, &o.Location, &o.IsAvailable, &createdOn); err != nil {
			return nil, err
		}
		o.CreatedOn = createdOn.Format("2006-01-02")
		ownerships = append(ownerships, o)
	}
	return ownerships, rows.Err()
}

func (r *ownershipRepository) ListAvailable(ctx context.Context) ([]domain.Ownership, error) {
	return r.list(ctx, `SELECT `+ownershipColumns+` FROM ownerships WHERE is_available = TRUE ORDER BY id`)
}

func (r *ownershipRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Ownership, error) {
	return r.list(ctx, `SELECT `+ownershipColumns+` FROM ownerships WHERE user_id = $1 ORDER BY id`, ownerID)
}

func (r *ownershipRepository) ListAvailableListings(ctx context.Context) ([]domain.Listing, error) {
	query := `SELECT o.id, o.user_id, o.condition, o.daily_rate, COALESCE(o.location, ''),
	                 i.id, i.name, i.category, COALESCE(i.brand, ''), COALESCE(i.model, ''), COALESCE(i.description, ''),
	                 COALESCE(AVG(r.rating), 0), COUNT(r.id)
	          FROM ownerships o
	          JOIN instruments i ON i.id = o.instrument_id
	          LEFT JOIN reviews r ON r.ownership_id = o.id
	          WHERE o.is_available = TRUE
	          GROUP BY o.id, o.user_id, o.condition, o.daily_rate, o.location, i.id, i.name, i.category, i.brand, i.model, i.description
	          ORDER BY o.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.OwnershipID, &l.OwnerID, &l.Condition, &l.DailyRate, &l.Location,
			&l.Instrument.ID, &l.Instrument.Name, &l.Instrument.Category, &l.Instrument.Brand, &l.Instrument.Model, &l.Instrument.Description,
			&l.AvgRating, &l.ReviewCount); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *ownershipRepository) Update(ctx context.Context, o *domain.Ownership) error {
	query := `UPDATE ownerships SET condition=$1, daily_rate=$2, image_url=$3, location=$4, is_available=$5 WHERE id=$6`
	_, err := r.db.ExecContext(ctx, query, o.Condition, o.DailyRate, o.ImageURL, o.Location, o.IsAvailable, o.ID)
	return err
}

func (r *ownershipRepository) SetAvailability(ctx context.Context, id int32, available bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE ownerships SET is_available=$1 WHERE id=$2`, available, id)
	return err
}

func (r *ownershipRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ownerships WHERE id=$1`, id)
	return err
}
