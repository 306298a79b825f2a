package views

import (
	"fmt"
	"time"

	"github.com/portfolio-console/console/internal/portfolio/domain"
)

// Fixed-length approximations used by every duration shown to the user.
// They are not calendar arithmetic and must stay that way.
const (
	daysPerYear  = 365
	daysPerMonth = 30
)

const day = 24 * time.Hour

// DurationDays is ceil(|end - start|) in days, with now standing in for a
// missing end date.
func DurationDays(e domain.ExperienceEntry, now time.Time) int {
	end := now
	if e.EndDate != nil {
		end = e.EndDate.Time
	}
	d := end.Sub(e.StartDate.Time)
	if d < 0 {
		d = -d
	}
	days := d / day
	if d%day != 0 {
		days++
	}
	return int(days)
}

// Tenure is a duration broken into 365-day years and 30-day months.
type Tenure struct {
	Days   int `json:"days"`
	Years  int `json:"years"`
	Months int `json:"months"`
}

func ComputeTenure(e domain.ExperienceEntry, now time.Time) Tenure {
	days := DurationDays(e, now)
	return Tenure{
		Days:   days,
		Years:  days / daysPerYear,
		Months: (days % daysPerYear) / daysPerMonth,
	}
}

// Label renders the tenure the way the console shows it, e.g. "1 año y 1 mes".
func (t Tenure) Label() string {
	switch {
	case t.Years > 0:
		label := plural(t.Years, "año", "años")
		if t.Months > 0 {
			label += " y " + plural(t.Months, "mes", "meses")
		}
		return label
	case t.Months > 0:
		return plural(t.Months, "mes", "meses")
	default:
		return "Menos de 1 mes"
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Stats are the aggregate figures of the statistics panel.
type Stats struct {
	ProjectCount     int `json:"project_count" yaml:"project_count"`
	ExperienceCount  int `json:"experience_count" yaml:"experience_count"`
	CurrentRoleCount int `json:"current_role_count" yaml:"current_role_count"`
	TotalYears       int `json:"total_years" yaml:"total_years"`
}

func ComputeStats(projects []domain.Project, experience []domain.ExperienceEntry, now time.Time) Stats {
	st := Stats{
		ProjectCount:    len(projects),
		ExperienceCount: len(experience),
	}
	totalDays := 0
	for _, e := range experience {
		if e.Current() {
			st.CurrentRoleCount++
		}
		totalDays += DurationDays(e, now)
	}
	st.TotalYears = totalDays / daysPerYear
	return st
}
