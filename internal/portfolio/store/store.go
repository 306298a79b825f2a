// Package store holds the local view state of the portfolio console: the
// two collections, the two form buffers, the edit targets and the
// transient UI flags. It is the only place mutated by user actions and
// gateway responses.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/portfolio-console/console/internal/portfolio/domain"
	"github.com/portfolio-console/console/internal/portfolio/gateway"
	"github.com/portfolio-console/console/internal/portfolio/validation"
)

// DefaultMessageTTL is how long error and success messages stay visible.
const DefaultMessageTTL = 3 * time.Second

// Gateway is the subset of the portfolio API client the store needs.
type Gateway interface {
	FetchAll(ctx context.Context) gateway.FetchResult
	SaveProject(ctx context.Context, form domain.ProjectForm, file *domain.Upload, target domain.EditTarget) (domain.Project, error)
	SaveExperience(ctx context.Context, form domain.ExperienceForm, target domain.EditTarget) (domain.ExperienceEntry, error)
	DeleteProject(ctx context.Context, id int64) error
	DeleteExperience(ctx context.Context, id int64) error
}

// UIState is the transient, process-wide UI state.
type UIState struct {
	ActiveTab      domain.Tab `json:"active_tab"`
	SearchTerm     string     `json:"search_term"`
	Loading        bool       `json:"loading"`
	ErrorMessage   string     `json:"error_message"`
	SuccessMessage string     `json:"success_message"`
}

// FileInfo describes the pending upload without its bytes.
type FileInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Snapshot is a deep copy of the store, safe to read without locking.
type Snapshot struct {
	Projects          []domain.Project         `json:"projects"`
	Experience        []domain.ExperienceEntry `json:"experience"`
	ProjectForm       domain.ProjectForm       `json:"project_form"`
	ExperienceForm    domain.ExperienceForm    `json:"experience_form"`
	PendingFile       *FileInfo                `json:"pending_file"`
	EditingProject    domain.EditTarget        `json:"editing_project"`
	EditingExperience domain.EditTarget        `json:"editing_experience"`
	UI                UIState                  `json:"ui"`
}

type Option func(*Store)

func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

func WithMessageTTL(d time.Duration) Option {
	return func(s *Store) { s.messageTTL = d }
}

func WithMaxUploadBytes(n int64) Option {
	return func(s *Store) { s.maxUpload = n }
}

// Store is the single state object of the console.
type Store struct {
	gw         Gateway
	clock      Clock
	messageTTL time.Duration
	maxUpload  int64

	mu                sync.Mutex
	projects          []domain.Project
	experience        []domain.ExperienceEntry
	projectForm       domain.ProjectForm
	experienceForm    domain.ExperienceForm
	file              *domain.Upload
	editingProject    domain.EditTarget
	editingExperience domain.EditTarget
	ui                UIState
	inFlight          int
	msgGen            uint64
	msgTimer          Timer

	// at most one submit per resource type
	projectSubmit    sync.Mutex
	experienceSubmit sync.Mutex
}

func New(gw Gateway, opts ...Option) *Store {
	s := &Store{
		gw:         gw,
		clock:      realClock{},
		messageTTL: DefaultMessageTTL,
		maxUpload:  validation.MaxUploadBytes,
		projects:   []domain.Project{},
		experience: []domain.ExperienceEntry{},
		ui:         UIState{ActiveTab: domain.TabProjects},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store clock's current time, for derived views.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Load fetches both collections. A collection whose fetch failed keeps its
// previous contents; any failure sets the generic load error.
func (s *Store) Load(ctx context.Context) error {
	res := s.gw.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if res.ProjectsErr == nil {
		s.projects = nonNil(res.Projects)
	} else {
		errs = append(errs, &domain.LoadError{Collection: "projects", Err: res.ProjectsErr})
	}
	if res.ExperienceErr == nil {
		s.experience = nonNil(res.Experience)
	} else {
		errs = append(errs, &domain.LoadError{Collection: "experience", Err: res.ExperienceErr})
	}
	if len(errs) > 0 {
		s.setErrorLocked(gateway.MsgLoad)
	}
	return errors.Join(errs...)
}

func (s *Store) SetTab(tab domain.Tab) error {
	if !tab.Valid() {
		return fmt.Errorf("tab %q: %w", tab, domain.ErrInvalidTab)
	}
	s.mu.Lock()
	s.ui.ActiveTab = tab
	s.mu.Unlock()
	return nil
}

func (s *Store) SetSearch(term string) {
	s.mu.Lock()
	s.ui.SearchTerm = term
	s.mu.Unlock()
}

// SetProjectField updates one buffer field. Validation waits for submit.
func (s *Store) SetProjectField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectForm.Set(field, value)
}

func (s *Store) SetExperienceField(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.experienceForm.Set(field, value)
}

// SelectFile stores u for the next project submit. A rejected file sets
// the error message and leaves the previous pending file in place.
func (s *Store) SelectFile(u domain.Upload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if verr := validation.CheckUpload(&u, s.maxUpload); verr != nil {
		s.setErrorLocked(verr.Message)
		return verr
	}
	if u.Size == 0 {
		u.Size = int64(len(u.Data))
	}
	s.file = &u
	return nil
}

func (s *Store) ClearFile() {
	s.mu.Lock()
	s.file = nil
	s.mu.Unlock()
}

// SubmitProject validates the project buffer and creates or updates the
// record depending on the edit target.
func (s *Store) SubmitProject(ctx context.Context) (domain.Project, error) {
	if !s.projectSubmit.TryLock() {
		return domain.Project{}, domain.ErrSubmitInFlight
	}
	defer s.projectSubmit.Unlock()

	s.mu.Lock()
	form, file, target := s.projectForm, s.file, s.editingProject
	if verr := validation.ValidateProjectForm(form); verr != nil {
		s.setErrorLocked(verr.Message)
		s.mu.Unlock()
		return domain.Project{}, verr
	}
	s.beginRequestLocked()
	s.mu.Unlock()

	saved, err := s.gw.SaveProject(ctx, form, file, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.endRequestLocked()
	if err != nil {
		s.setErrorLocked(domain.UserMessage(err, gateway.MsgSaveProject))
		return domain.Project{}, err
	}

	if target.IsEditing() {
		for i := range s.projects {
			if s.projects[i].ID == target.ID() {
				s.projects[i] = saved
				break
			}
		}
		s.setSuccessLocked(MsgProjectUpdated)
	} else {
		s.projects = append([]domain.Project{saved}, s.projects...)
		s.setSuccessLocked(MsgProjectCreated)
	}
	s.editingProject = domain.NoTarget()
	s.projectForm = domain.ProjectForm{}
	s.file = nil
	return saved, nil
}

// SubmitExperience is the experience counterpart of SubmitProject.
func (s *Store) SubmitExperience(ctx context.Context) (domain.ExperienceEntry, error) {
	if !s.experienceSubmit.TryLock() {
		return domain.ExperienceEntry{}, domain.ErrSubmitInFlight
	}
	defer s.experienceSubmit.Unlock()

	s.mu.Lock()
	form, target := s.experienceForm, s.editingExperience
	if verr := validation.ValidateExperienceForm(form); verr != nil {
		s.setErrorLocked(verr.Message)
		s.mu.Unlock()
		return domain.ExperienceEntry{}, verr
	}
	s.beginRequestLocked()
	s.mu.Unlock()

	saved, err := s.gw.SaveExperience(ctx, form, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.endRequestLocked()
	if err != nil {
		s.setErrorLocked(domain.UserMessage(err, gateway.MsgSaveExperience))
		return domain.ExperienceEntry{}, err
	}

	if target.IsEditing() {
		for i := range s.experience {
			if s.experience[i].ID == target.ID() {
				s.experience[i] = saved
				break
			}
		}
		s.setSuccessLocked(MsgExperienceUpdated)
	} else {
		s.experience = append([]domain.ExperienceEntry{saved}, s.experience...)
		s.setSuccessLocked(MsgExperienceCreated)
	}
	s.editingExperience = domain.NoTarget()
	s.experienceForm = domain.ExperienceForm{}
	return saved, nil
}

// BeginEditProject loads the record into the buffer and switches to the add tab.
func (s *Store) BeginEditProject(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.projects {
		if p.ID == id {
			s.projectForm = domain.ProjectFormFrom(p)
			s.editingProject = domain.Editing(id)
			s.ui.ActiveTab = domain.TabAdd
			return nil
		}
	}
	return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
}

func (s *Store) BeginEditExperience(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.experience {
		if e.ID == id {
			s.experienceForm = domain.ExperienceFormFrom(e)
			s.editingExperience = domain.Editing(id)
			s.ui.ActiveTab = domain.TabAdd
			return nil
		}
	}
	return fmt.Errorf("experience %d: %w", id, domain.ErrNotFound)
}

// CancelEdit drops both edit targets, both buffers and the pending file.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingProject = domain.NoTarget()
	s.editingExperience = domain.NoTarget()
	s.projectForm = domain.ProjectForm{}
	s.experienceForm = domain.ExperienceForm{}
	s.file = nil
}

// DeleteProject removes a project. Callers are expected to have asked the
// user for confirmation. Deletes do not toggle loading.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	err := s.gw.DeleteProject(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.setErrorLocked(domain.UserMessage(err, gateway.MsgDeleteProject))
		return err
	}
	kept := s.projects[:0:0]
	for _, p := range s.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.projects = kept
	s.setSuccessLocked(MsgProjectDeleted)
	return nil
}

func (s *Store) DeleteExperience(ctx context.Context, id int64) error {
	err := s.gw.DeleteExperience(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.setErrorLocked(domain.UserMessage(err, gateway.MsgDeleteExperience))
		return err
	}
	kept := s.experience[:0:0]
	for _, e := range s.experience {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.experience = kept
	s.setSuccessLocked(MsgExperienceDeleted)
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Projects:          append([]domain.Project{}, s.projects...),
		Experience:        make([]domain.ExperienceEntry, len(s.experience)),
		ProjectForm:       s.projectForm,
		ExperienceForm:    s.experienceForm,
		EditingProject:    s.editingProject,
		EditingExperience: s.editingExperience,
		UI:                s.ui,
	}
	for i, e := range s.experience {
		if e.EndDate != nil {
			end := *e.EndDate
			e.EndDate = &end
		}
		snap.Experience[i] = e
	}
	if s.file != nil {
		snap.PendingFile = &FileInfo{Name: s.file.Name, ContentType: s.file.ContentType, Size: s.file.Size}
	}
	return snap
}

func (s *Store) beginRequestLocked() {
	s.inFlight++
	s.ui.Loading = true
	s.ui.ErrorMessage = ""
}

func (s *Store) endRequestLocked() {
	if s.inFlight > 0 {
		s.inFlight--
	}
	s.ui.Loading = s.inFlight > 0
}

func (s *Store) setErrorLocked(msg string) {
	s.ui.ErrorMessage = msg
	s.armMessageTimerLocked()
}

func (s *Store) setSuccessLocked(msg string) {
	s.ui.SuccessMessage = msg
	s.armMessageTimerLocked()
}

// armMessageTimerLocked restarts the expiry countdown. Only the timer of the
// latest message clears anything.
func (s *Store) armMessageTimerLocked() {
	s.msgGen++
	gen := s.msgGen
	if s.msgTimer != nil {
		s.msgTimer.Stop()
	}
	s.msgTimer = s.clock.AfterFunc(s.messageTTL, func() {
		s.expireMessages(gen)
	})
}

func (s *Store) expireMessages(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.msgGen {
		return
	}
	s.ui.ErrorMessage = ""
	s.ui.SuccessMessage = ""
	s.msgTimer = nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
