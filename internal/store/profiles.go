package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/gigboard/internal/domain/profile"
	"github.com/rpggio/gigboard/internal/domain/user"
	"github.com/rpggio/gigboard/internal/repository"
)

// ProfileRepository implements profile.Repository.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `user_id, bio, skills, hourly_rate, portfolio_url, location, updated_at`

// Get retrieves a user's profile.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	return getProfile(ctx, r.db.conn(), userID)
}

// Upsert creates the profile row if needed, locks it, applies fn, and
// writes the result back. An unknown user yields
// repository.ErrForeignKeyViolation.
func (r *ProfileRepository) Upsert(ctx context.Context, userID string, fn func(*profile.Profile) error) (*profile.Profile, error) {
	var out *profile.Profile
	err := r.db.withTx(ctx, func(tx conn) error {
		_, err := tx.exec(ctx,
			`INSERT INTO profiles (user_id, updated_at) VALUES (?, ?) ON CONFLICT (user_id) DO NOTHING`,
			userID, now())
		if err != nil {
			return writeErr(err, "create profile")
		}
		if _, err := tx.exec(ctx, `UPDATE profiles SET version = version + 1 WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("failed to lock profiles row: %w", err)
		}

		p, err := getProfile(ctx, tx, userID)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}

		skills, err := encodeSkills(p.Skills)
		if err != nil {
			return err
		}
		_, err = tx.exec(ctx, `
			UPDATE profiles
			SET bio = ?, skills = ?, hourly_rate = ?, portfolio_url = ?, location = ?, updated_at = ?
			WHERE user_id = ?`,
			p.Bio, skills, p.HourlyRate, p.PortfolioURL, p.Location, p.UpdatedAt, userID,
		)
		if err != nil {
			return writeErr(err, "update profile")
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListFreelancers returns every freelancer with their profile and review
// totals. Freelancers without a profile get empty fields.
func (r *ProfileRepository) ListFreelancers(ctx context.Context) ([]profile.Listing, error) {
	rows, err := r.db.conn().query(ctx, `
		SELECT u.id, u.email, u.name, u.role, u.created_at,
		       COALESCE(p.bio, ''), COALESCE(p.skills, '[]'), p.hourly_rate,
		       COALESCE(p.portfolio_url, ''), COALESCE(p.location, ''),
		       COALESCE(SUM(rv.rating), 0), COUNT(rv.id)
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		LEFT JOIN reviews rv ON rv.reviewee_id = u.id
		WHERE u.role = ?
		GROUP BY u.id, u.email, u.name, u.role, u.created_at,
		         p.bio, p.skills, p.hourly_rate, p.portfolio_url, p.location
		ORDER BY u.name, u.id`, string(user.RoleFreelancer))
	if err != nil {
		return nil, fmt.Errorf("failed to list freelancers: %w", err)
	}
	defer rows.Close()

	listings := []profile.Listing{}
	for rows.Next() {
		var (
			l      profile.Listing
			skills string
		)
		err := rows.Scan(
			&l.User.ID, &l.User.Email, &l.User.Name, &l.User.Role, &l.User.CreatedAt,
			&l.Profile.Bio, &skills, &l.Profile.HourlyRate,
			&l.Profile.PortfolioURL, &l.Profile.Location,
			&l.RatingTotal, &l.ReviewsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan freelancer: %w", err)
		}
		if err := json.Unmarshal([]byte(skills), &l.Profile.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode profile skills: %w", err)
		}
		l.Profile.UserID = l.User.ID
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list freelancers: %w", err)
	}
	return listings, nil
}

func getProfile(ctx context.Context, c conn, userID string) (*profile.Profile, error) {
	var (
		p      profile.Profile
		skills string
	)
	err := c.queryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID).Scan(
		&p.UserID, &p.Bio, &skills, &p.HourlyRate, &p.PortfolioURL, &p.Location, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &p.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode profile skills: %w", err)
	}
	return &p, nil
}
