package profile

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpggio/gigboard/internal/domain/user"
)

// DefaultRating is reported for freelancers nobody has reviewed yet.
var DefaultRating = decimal.NewFromInt(5)

// Profile is the public self-description a user maintains.
type Profile struct {
	UserID       string              `json:"user_id"`
	Bio          string              `json:"bio"`
	Skills       []string            `json:"skills"`
	HourlyRate   decimal.NullDecimal `json:"hourly_rate"`
	PortfolioURL string              `json:"portfolio_url"`
	Location     string              `json:"location"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// View pairs an account with its profile.
type View struct {
	User    *user.User `json:"user"`
	Profile *Profile   `json:"profile"`
}

// Listing is a freelancer row as the repository reads it, with the
// raw review totals the directory rating is derived from.
type Listing struct {
	User         user.User
	Profile      Profile
	RatingTotal  int
	ReviewsCount int
}

// Freelancer is one entry of the freelancer directory.
type Freelancer struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Bio          string              `json:"bio"`
	Skills       []string            `json:"skills"`
	HourlyRate   decimal.NullDecimal `json:"hourly_rate"`
	PortfolioURL string              `json:"portfolio_url"`
	Location     string              `json:"location"`
	Rating       decimal.Decimal     `json:"rating"`
	ReviewsCount int                 `json:"reviews_count"`
}

// Rating returns the mean of total over count rounded to one decimal, or
// DefaultRating when there are no reviews.
func Rating(total, count int) decimal.Decimal {
	if count == 0 {
		return DefaultRating
	}
	return decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(count))).Round(1)
}
