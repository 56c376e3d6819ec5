package postgres

import (
	"context"
	"fmt"
	"time"

	"instrument-rental-backend/internal/domain"
	"instrument-rental-backend/internal/repository"
	"instrument-rental-backend/internal/utils"
)

type reviewRepository struct {
	db dbtx
}

func NewReviewRepository(db dbtx) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (rental_id, ownership_id, renter_id, rating, comment, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	rv.CreatedOn = utils.FormatDate(now)
	rv.UpdatedOn = rv.CreatedOn
	return r.db.QueryRowContext(ctx, query, rv.RentalID, rv.OwnershipID, rv.RenterID, rv.Rating, rv.Comment, now, now).Scan(&rv.ID)
}

const reviewSelect = `SELECT r.id, r.rental_id, r.ownership_id, r.renter_id, r.rating, COALESCE(r.comment, ''), u.name, r.created_on, r.updated_on
	FROM reviews r
	JOIN users u ON u.id = r.renter_id`

func scanReview(scan func(...any) error) (*domain.Review, error) {
	rv := &domain.Review{}
	var createdOn, updatedOn time.Time
	err := scan(&rv.ID, &rv.RentalID, &rv.OwnershipID, &rv.RenterID, &rv.Rating, &rv.Comment, &rv.RenterName, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	rv.CreatedOn = utils.FormatDate(createdOn)
	rv.UpdatedOn = utils.FormatDate(updatedOn)
	return rv, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int32) (*domain.Review, error) {
	query := reviewSelect + ` WHERE r.id = $1`
	return scanReview(r.db.QueryRowContext(ctx, query, id).Scan)
}

func (r *reviewRepository) GetByRental(ctx context.Context, rentalID int32) (*domain.Review, error) {
	query := reviewSelect + ` WHERE r.rental_id = $1`
	return scanReview(r.db.QueryRowContext(ctx, query, rentalID).Scan)
}

func (r *reviewRepository) List(ctx context.Context, ownershipID, rating int32) ([]domain.Review, error) {
	query := reviewSelect
	args := []any{}
	where := ""
	if ownershipID > 0 {
		args = append(args, ownershipID)
		where = fmt.Sprintf(" WHERE r.ownership_id = $%d", len(args))
	}
	if rating > 0 {
		args = append(args, rating)
		if where == "" {
			where = fmt.Sprintf(" WHERE r.rating = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND r.rating = $%d", len(args))
		}
	}
	query += where + ` ORDER BY r.created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows.Scan)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) Update(ctx context.Context, rv *domain.Review) error {
	query := `UPDATE reviews SET rating=$1, comment=$2, updated_on=$3 WHERE id=$4`
	now := time.Now()
	rv.UpdatedOn = utils.FormatDate(now)
	_, err := r.db.ExecContext(ctx, query, rv.Rating, rv.Comment, now, rv.ID)
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	return err
}

func (r *reviewRepository) StatsByOwnership(ctx context.Context, ownershipID int32) (*domain.ReviewStats, error) {
	stats := &domain.ReviewStats{
		Distribution: map[int32]int32{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	query := `SELECT rating, COUNT(*) FROM reviews WHERE ownership_id = $1 GROUP BY rating`
	rows, err := r.db.QueryContext(ctx, query, ownershipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var total, ratingSum int32
	for rows.Next() {
		var rating, count int32
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		stats.Distribution[rating] = count
		total += count
		ratingSum += rating * count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.TotalReviews = total
	if total > 0 {
		avg := utils.Round2(float64(ratingSum) / float64(total))
		stats.AverageRating = &avg
	}
	return stats, nil
}
