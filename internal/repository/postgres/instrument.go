package postgres

import (
	"context"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type instrumentRepository struct {
	db dbtx
}

func NewInstrumentRepository(db dbtx) repository.InstrumentRepository {
	return &instrumentRepository{db: db}
}

func (r *instrumentRepository) Create(ctx context.Context, in *domain.Instrument) error {
	query := `INSERT INTO instruments (name, category, brand, model, description, image_url, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	in.CreatedOn = now.Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, in.Name, in.Category, in.Brand, in.Model, in.Description, in.ImageURL, now).Scan(&in.ID)
}

func (r *instrumentRepository) GetByID(ctx context.Context, id int32) (*domain.Instrument, error) {
	in := &domain.Instrument{}
	query := `SELECT id, name, category, COALESCE(brand, ''), COALESCE(model, ''), COALESCE(description, ''), COALESCE(image_url, ''), created_on
	          FROM instruments WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&in.ID, &in.Name, &in.Category, &in.Brand, &in.Model, &in.Description, &in.ImageURL, &createdOn)
	if err != nil {
		return nil, err
	}
	in.CreatedOn = createdOn.Format("2006-01-02")
	return in, nil
}

func (r *instrumentRepository) List(ctx context.Context, category string) ([]domain.Instrument, error) {
	query := `SELECT id, name, category, COALESCE(brand, ''), COALESCE(model, ''), COALESCE(description, ''), COALESCE(image_url, ''), created_on
	          FROM instruments`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instruments []domain.Instrument
	for rows.Next() {
		var in domain.Instrument
		var createdOn time.Time
		if err := rows.Scan(&in.ID, &in.Name, &in.Category, &in.Brand, &in.Model, &in.Description, &in.ImageURL, &createdOn); err != nil {
			return nil, err
		}
		in.CreatedOn = createdOn.Format("2006-01-02")
		instruments = append(instruments, in)
	}
	return instruments, rows.Err()
}
