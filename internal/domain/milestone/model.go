package milestone

import "time"

// Status represents the progress stage of a milestone.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Milestone is a named phase of contract execution.
type Milestone struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Progress    int        `json:"progress"`
	Order       int        `json:"order"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// UpdatesCount is filled by listings.
	UpdatesCount int `json:"updates_count"`
}

// Update is an append-only progress note on a milestone.
type Update struct {
	ID            string    `json:"id"`
	MilestoneID   string    `json:"milestone_id"`
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name,omitempty"`
	Content       string    `json:"content"`
	Progress      *int      `json:"progress"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Write is what a locked mutation persists. Nil fields are skipped.
type Write struct {
	Milestone *Milestone
	Update    *Update
}

type stage struct {
	name        string
	description string
}

// stages is the fixed sequence every project is initialized with.
var stages = []stage{
	{"Planning", "Project planning and requirements gathering"},
	{"Design", "UI/UX design and architecture"},
	{"Development", "Core development and implementation"},
	{"Testing", "Testing and quality assurance"},
	{"Deployment", "Deployment and launch"},
}
