package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	models "github.com/tayotravel/tourbook/internal"
)

type ReviewRepository struct {
	db DBConn
}

func NewReviewRepository(db DBConn) *ReviewRepository {
	return &ReviewRepository{db: db}
}

const reviewSelect = `
        SELECT id, tour_id, user_id, rating, COALESCE(title, ''), content, approved, created_at, updated_at
        FROM reviews
    `

func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	query := `
        INSERT INTO reviews (id, tour_id, user_id, rating, title, content, approved, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.db.Exec(ctx, query,
		review.ID, review.TourID, review.UserID, review.Rating,
		review.Title, review.Content, review.Approved, review.CreatedAt, review.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return models.ErrDuplicateReview
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	row := r.db.QueryRow(ctx, reviewSelect+" WHERE id = $1", id)
	review, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (r *ReviewRepository) HasReview(ctx context.Context, userID, tourID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE user_id = $1 AND tour_id = $2)`,
		userID, tourID,
	).Scan(&exists)
	return exists, err
}

func (r *ReviewRepository) GetApprovedReviews(ctx context.Context, tourID uuid.UUID) ([]models.Review, error) {
	rows, err := r.db.Query(ctx, reviewSelect+" WHERE tour_id = $1 AND approved ORDER BY created_at DESC", tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) GetApprovedRatings(ctx context.Context, tourID uuid.UUID) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT rating FROM reviews WHERE tour_id = $1 AND approved`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ReviewRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE reviews SET approved = $1, updated_at = NOW() WHERE id = $2`, approved, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, id uuid.UUID, update models.ReviewUpdate) error {
	var sets []string
	var args []interface{}

	if update.Rating != nil {
		args = append(args, *update.Rating)
		sets = append(sets, fmt.Sprintf("rating = $%d", len(args)))
	}
	if update.Title != nil {
		args = append(args, *update.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if update.Content != nil {
		args = append(args, *update.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE reviews SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrReviewNotFound
	}
	return nil
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ID, &review.TourID, &review.UserID, &review.Rating,
		&review.Title, &review.Content, &review.Approved,
		&review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
