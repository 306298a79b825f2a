package views

import (
	"fmt"
	"time"

	"github.com/portfolio-console/console/internal/portfolio/domain"
	"github.com/portfolio-console/console/internal/portfolio/store"
)

// Form modes of the add/edit view.
const (
	ModeCreate = "create"
	ModeEdit   = "edit"
)

const (
	StatusCurrent = "Trabajo actual"
	StatusPast    = "Experiencia pasada"
	presentLabel  = "Actualidad"
)

// ExperienceItem is one rendered experience row.
type ExperienceItem struct {
	domain.ExperienceEntry
	Period string `json:"period"`
	Tenure Tenure `json:"tenure"`
	Label  string `json:"tenure_label"`
	Status string `json:"status"`
}

// FormView is the add/edit form of one resource type.
type FormView[F any] struct {
	Mode    string `json:"mode"`
	Editing *int64 `json:"editing_id"`
	Fields  F      `json:"fields"`
}

// ViewModel is everything a client needs to draw the console.
type ViewModel struct {
	UI             store.UIState                   `json:"ui"`
	Projects       []domain.Project                `json:"projects"`
	Experience     []ExperienceItem                `json:"experience"`
	ProjectForm    FormView[domain.ProjectForm]    `json:"project_form"`
	ExperienceForm FormView[domain.ExperienceForm] `json:"experience_form"`
	PendingFile    *store.FileInfo                 `json:"pending_file"`
	Stats          Stats                           `json:"stats"`
	GeneratedAt    time.Time                       `json:"generated_at"`
}

// Build derives the view model from a store snapshot. Filters use the
// snapshot's search term; stats always cover the full collections.
func Build(snap store.Snapshot, now time.Time) ViewModel {
	vm := ViewModel{
		UI:             snap.UI,
		Projects:       FilterProjects(snap.Projects, snap.UI.SearchTerm),
		ProjectForm:    formView(snap.EditingProject, snap.ProjectForm),
		ExperienceForm: formView(snap.EditingExperience, snap.ExperienceForm),
		PendingFile:    snap.PendingFile,
		Stats:          ComputeStats(snap.Projects, snap.Experience, now),
		GeneratedAt:    now,
	}

	filtered := FilterExperience(snap.Experience, snap.UI.SearchTerm)
	vm.Experience = make([]ExperienceItem, 0, len(filtered))
	for _, e := range filtered {
		t := ComputeTenure(e, now)
		item := ExperienceItem{
			ExperienceEntry: e,
			Period:          Period(e),
			Tenure:          t,
			Label:           t.Label(),
			Status:          StatusPast,
		}
		if e.Current() {
			item.Status = StatusCurrent
		}
		vm.Experience = append(vm.Experience, item)
	}
	return vm
}

func formView[F any](target domain.EditTarget, fields F) FormView[F] {
	fv := FormView[F]{Mode: ModeCreate, Fields: fields}
	if target.IsEditing() {
		id := target.ID()
		fv.Mode = ModeEdit
		fv.Editing = &id
	}
	return fv
}

var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// MonthYear formats a date as short Spanish month and year, e.g. "ene 2020".
func MonthYear(d domain.Date) string {
	return fmt.Sprintf("%s %d", shortMonths[d.Month()-1], d.Year())
}

// Period renders "ene 2020 - Actualidad" or "ene 2020 - dic 2021".
func Period(e domain.ExperienceEntry) string {
	end := presentLabel
	if e.EndDate != nil {
		end = MonthYear(*e.EndDate)
	}
	return MonthYear(e.StartDate) + " - " + end
}
