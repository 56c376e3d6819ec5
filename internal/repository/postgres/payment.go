package postgres

import (
	"context"
	"database/sql"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
)

type paymentRepository struct {
	db dbtx
}

func NewPaymentRepository(db dbtx) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, rental_id, renter_id, owner_id, amount, platform_fee, owner_payout, status, COALESCE(payment_method, ''), COALESCE(processor_intent_id, ''), COALESCE(processor_charge_id, ''), COALESCE(error_message, ''), created_on, updated_on, completed_on`

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rental_id, renter_id, owner_id, amount, platform_fee, owner_payout, status, payment_method, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	p.CreatedOn = now
	p.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, p.RentalID, p.RenterID, p.OwnerID, p.Amount, p.PlatformFee, p.OwnerPayout, p.Status, p.PaymentMethod, now, now).Scan(&p.ID)
}

func scanPayment(scan func(...any) error) (*domain.Payment, error) {
	p := &domain.Payment{}
	var completedOn sql.NullTime
	err := scan(&p.ID, &p.RentalID, &p.RenterID, &p.OwnerID, &p.Amount, &p.PlatformFee, &p.OwnerPayout, &p.Status,
		&p.PaymentMethod, &p.ProcessorIntent, &p.ProcessorCharge, &p.ErrorMessage, &p.CreatedOn, &p.UpdatedOn, &completedOn)
	if err != nil {
		return nil, err
	}
	if completedOn.Valid {
		t := completedOn.Time
		p.CompletedOn = &t
	}
	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *paymentRepository) GetByRental(ctx context.Context, rentalID int32) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 ORDER BY created_on DESC LIMIT 1`
	return scanPayment(r.db.QueryRowContext(ctx, query, rentalID).Scan)
}

func (r *paymentRepository) GetByRentalAndStatus(ctx context.Context, rentalID int32, status domain.PaymentStatus) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE rental_id = $1 AND status = $2 ORDER BY created_on DESC LIMIT 1`
	return scanPayment(r.db.QueryRowContext(ctx, query, rentalID, status).Scan)
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE renter_id = $1 OR owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET status=$1, processor_intent_id=$2, processor_charge_id=$3, error_message=$4, completed_on=$5, updated_on=$6 WHERE id=$7`
	p.UpdatedOn = time.Now()
	var completedOn any
	if p.CompletedOn != nil {
		completedOn = *p.CompletedOn
	}
	_, err := r.db.ExecContext(ctx, query, p.Status, p.ProcessorIntent, p.ProcessorCharge, p.ErrorMessage, completedOn, p.UpdatedOn, p.ID)
	return err
}
