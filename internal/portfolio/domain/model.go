package domain

import "time"

// Project is a portfolio entry as returned by the portfolio API.
type Project struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Link        string     `json:"link"`
	Image       string     `json:"image"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ExperienceEntry is a work-history record. A nil EndDate marks a current role.
type ExperienceEntry struct {
	ID          int64  `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	Description string `json:"description"`
	StartDate   Date   `json:"start_date"`
	EndDate     *Date  `json:"end_date"`
}

// Current reports whether the role has no end date.
func (e ExperienceEntry) Current() bool {
	return e.EndDate == nil
}

// Upload is an image file waiting to be attached to the next project submit.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Tab identifies the active view.
type Tab string

const (
	TabProjects   Tab = "projects"
	TabExperience Tab = "experience"
	TabAdd        Tab = "add"
)

func (t Tab) Valid() bool {
	switch t {
	case TabProjects, TabExperience, TabAdd:
		return true
	}
	return false
}
