package domain

import "fmt"

// ProjectForm is the uncommitted buffer behind the add/edit project form.
type ProjectForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image"`
}

// Set updates one field by its wire name.
func (f *ProjectForm) Set(field, value string) error {
	switch field {
	case "title":
		f.Title = value
	case "description":
		f.Description = value
	case "link":
		f.Link = value
	case "image":
		f.Image = value
	default:
		return fmt.Errorf("project form field %q: %w", field, ErrUnknownField)
	}
	return nil
}

// ProjectFormFrom copies a record into a form buffer.
func ProjectFormFrom(p Project) ProjectForm {
	return ProjectForm{
		Title:       p.Title,
		Description: p.Description,
		Link:        p.Link,
		Image:       p.Image,
	}
}

// ExperienceForm keeps dates as raw YYYY-MM-DD strings while editing.
type ExperienceForm struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func (f *ExperienceForm) Set(field, value string) error {
	switch field {
	case "position":
		f.Position = value
	case "company":
		f.Company = value
	case "description":
		f.Description = value
	case "start_date":
		f.StartDate = value
	case "end_date":
		f.EndDate = value
	default:
		return fmt.Errorf("experience form field %q: %w", field, ErrUnknownField)
	}
	return nil
}

func ExperienceFormFrom(e ExperienceEntry) ExperienceForm {
	form := ExperienceForm{
		Position:    e.Position,
		Company:     e.Company,
		Description: e.Description,
		StartDate:   e.StartDate.String(),
	}
	if e.EndDate != nil {
		form.EndDate = e.EndDate.String()
	}
	return form
}
