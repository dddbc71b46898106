package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle stage of a project.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Project is a unit of work posted by a client seeking a freelancer.
type Project struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"client_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
	Skills      []string        `json:"skills_required"`
	Duration    string          `json:"duration,omitempty"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ListOptions filters project listings.
type ListOptions struct {
	Status   Status
	ClientID string
	Limit    int
	Offset   int
}
