// Package views computes what the console shows from the current store
// contents. Everything here is a pure function of its inputs; nothing is cached.
package views

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/portfolio-console/console/internal/portfolio/domain"
)

// matcher does case-insensitive substring matching against one search term.
type matcher struct {
	fold   cases.Caser
	needle string
}

func newMatcher(term string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.needle = m.fold.String(term)
	return m
}

func (m *matcher) any(fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(m.fold.String(f), m.needle) {
			return true
		}
	}
	return false
}

// FilterProjects keeps projects whose title or description contains term.
// An empty term returns the whole list. Order is preserved.
func FilterProjects(projects []domain.Project, term string) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	if term == "" {
		return append(out, projects...)
	}
	m := newMatcher(term)
	for _, p := range projects {
		if m.any(p.Title, p.Description) {
			out = append(out, p)
		}
	}
	return out
}

// FilterExperience matches against position, company and description.
func FilterExperience(entries []domain.ExperienceEntry, term string) []domain.ExperienceEntry {
	out := make([]domain.ExperienceEntry, 0, len(entries))
	if term == "" {
		return append(out, entries...)
	}
	m := newMatcher(term)
	for _, e := range entries {
		if m.any(e.Position, e.Company, e.Description) {
			out = append(out, e)
		}
	}
	return out
}
