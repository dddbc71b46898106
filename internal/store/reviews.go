package store

import (
	"context"
	"fmt"

	"github.com/rpggio/gigboard/internal/domain/review"
)

// ReviewRepository implements review.Repository.
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review. A second review by the same reviewer on the same
// project yields repository.ErrConflict.
func (r *ReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	_, err := r.db.conn().exec(ctx, `
		INSERT INTO reviews (id, project_id, reviewer_id, reviewee_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rv.ID, rv.ProjectID, rv.ReviewerID, rv.RevieweeID, rv.Rating, rv.Comment, rv.CreatedAt,
	)
	if err != nil {
		return writeErr(err, "create review")
	}
	return nil
}

// ListForReviewee returns the reviews a user received, newest first.
func (r *ReviewRepository) ListForReviewee(ctx context.Context, userID string) ([]review.Review, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT rv.id, rv.project_id, rv.reviewer_id, u.name, rv.reviewee_id, rv.rating, rv.comment, rv.created_at
		FROM reviews rv
		JOIN users u ON u.id = rv.reviewer_id
		WHERE rv.reviewee_id = ?
		ORDER BY rv.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []review.Review{}
	for rows.Next() {
		var rv review.Review
		err := rows.Scan(&rv.ID, &rv.ProjectID, &rv.ReviewerID, &rv.ReviewerName, &rv.RevieweeID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
