package store

import (
	"context"
	"sync"
	"time"

	"github.com/portfolio-console/console/internal/portfolio/domain"
	"github.com/portfolio-console/console/internal/portfolio/gateway"
)

type fakeGateway struct {
	mu sync.Mutex

	fetch gateway.FetchResult

	saveProjectFn    func(domain.ProjectForm, *domain.Upload, domain.EditTarget) (domain.Project, error)
	saveExperienceFn func(domain.ExperienceForm, domain.EditTarget) (domain.ExperienceEntry, error)
	deleteErr        error

	saveCalls   int
	deleteCalls int
}

func (f *fakeGateway) FetchAll(ctx context.Context) gateway.FetchResult {
	return f.fetch
}

func (f *fakeGateway) SaveProject(ctx context.Context, form domain.ProjectForm, file *domain.Upload, target domain.EditTarget) (domain.Project, error) {
	f.mu.Lock()
	f.saveCalls++
	f.mu.Unlock()
	return f.saveProjectFn(form, file, target)
}

func (f *fakeGateway) SaveExperience(ctx context.Context, form domain.ExperienceForm, target domain.EditTarget) (domain.ExperienceEntry, error) {
	f.mu.Lock()
	f.saveCalls++
	f.mu.Unlock()
	return f.saveExperienceFn(form, target)
}

func (f *fakeGateway) DeleteProject(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeGateway) DeleteExperience(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs due timers outside the clock lock.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}
