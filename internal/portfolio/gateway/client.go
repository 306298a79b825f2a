package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/portfolio-console/console/internal/platform/logx"
	"github.com/portfolio-console/console/internal/portfolio/domain"
)

// Client talks to the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient = &http.Client{Timeout: d} }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for the API rooted at baseURL (e.g. http://localhost:8000).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchResult carries both collections of the initial load. Each side
// succeeds or fails on its own.
type FetchResult struct {
	Projects      []domain.Project
	Experience    []domain.ExperienceEntry
	ProjectsErr   error
	ExperienceErr error
}

// FetchAll reads both collections concurrently and waits for both.
func (c *Client) FetchAll(ctx context.Context) FetchResult {
	var (
		res FetchResult
		wg  sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		res.Projects, res.ProjectsErr = c.ListProjects(ctx)
	}()
	go func() {
		defer wg.Done()
		res.Experience, res.ExperienceErr = c.ListExperience(ctx)
	}()
	wg.Wait()
	return res
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	if err := c.do(ctx, call{op: OpListProjects, msg: MsgLoad, method: http.MethodGet, path: projectsPath}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Project{}
	}
	return out, nil
}

func (c *Client) ListExperience(ctx context.Context) ([]domain.ExperienceEntry, error) {
	var out []domain.ExperienceEntry
	if err := c.do(ctx, call{op: OpListExperience, msg: MsgLoad, method: http.MethodGet, path: experiencePath}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.ExperienceEntry{}
	}
	return out, nil
}

// SaveProject creates (no target) or updates (target set) a project with
// a multipart body. The optional file goes in the "image" part.
func (c *Client) SaveProject(ctx context.Context, form domain.ProjectForm, file *domain.Upload, target domain.EditTarget) (domain.Project, error) {
	body, contentType, err := encodeProjectForm(form, file)
	if err != nil {
		return domain.Project{}, &domain.RequestError{Op: OpSaveProject, Message: MsgSaveProject, Err: err}
	}

	method, path := http.MethodPost, projectsPath
	if target.IsEditing() {
		method, path = http.MethodPut, itemPath(projectsPath, target.ID())
	}

	var out domain.Project
	err = c.do(ctx, call{op: OpSaveProject, msg: MsgSaveProject, method: method, path: path, body: body, contentType: contentType}, &out)
	return out, err
}

type experiencePayload struct {
	Position    string  `json:"position"`
	Company     string  `json:"company"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// SaveExperience creates or updates an experience entry with a JSON body.
// An empty end date is sent as null.
func (c *Client) SaveExperience(ctx context.Context, form domain.ExperienceForm, target domain.EditTarget) (domain.ExperienceEntry, error) {
	payload := experiencePayload{
		Position:    strings.TrimSpace(form.Position),
		Company:     strings.TrimSpace(form.Company),
		Description: strings.TrimSpace(form.Description),
		StartDate:   form.StartDate,
	}
	if form.EndDate != "" {
		end := form.EndDate
		payload.EndDate = &end
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return domain.ExperienceEntry{}, &domain.RequestError{Op: OpSaveExperience, Message: MsgSaveExperience, Err: err}
	}

	method, path := http.MethodPost, experiencePath
	if target.IsEditing() {
		method, path = http.MethodPut, itemPath(experiencePath, target.ID())
	}

	var out domain.ExperienceEntry
	err = c.do(ctx, call{op: OpSaveExperience, msg: MsgSaveExperience, method: method, path: path, body: bytes.NewReader(data), contentType: "application/json"}, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: OpDeleteProject, msg: MsgDeleteProject, method: http.MethodDelete, path: itemPath(projectsPath, id)}, nil)
}

func (c *Client) DeleteExperience(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: OpDeleteExperience, msg: MsgDeleteExperience, method: http.MethodDelete, path: itemPath(experiencePath, id)}, nil)
}

type call struct {
	op          string
	msg         string
	method      string
	path        string
	body        io.Reader
	contentType string
}

// do issues the request and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(ctx context.Context, cl call, out any) (err error) {
	logger := logx.New(ctx)
	start := time.Now()
	defer func() {
		c.metrics.record(cl.op, time.Since(start), err)
		if err != nil {
			logger.LogError(cl.op, err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, cl.body)
	if err != nil {
		return &domain.RequestError{Op: cl.op, Message: cl.msg, Err: fmt.Errorf("create request: %w", err)}
	}
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if rid := logx.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.RequestError{Op: cl.op, Message: cl.msg, Err: fmt.Errorf("portfolio api request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &domain.RequestError{Op: cl.op, Status: resp.StatusCode, Message: cl.msg}
	}

	logger.LogDebugf(cl.op, "method=%s path=%s status=%d", cl.method, cl.path, resp.StatusCode)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RequestError{Op: cl.op, Status: resp.StatusCode, Message: cl.msg, Err: fmt.Errorf("decode JSON: %w", err)}
	}
	return nil
}

func itemPath(collection string, id int64) string {
	return collection + strconv.FormatInt(id, 10) + "/"
}

func encodeProjectForm(form domain.ProjectForm, file *domain.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"title", strings.TrimSpace(form.Title)},
		{"description", strings.TrimSpace(form.Description)},
		{"link", strings.TrimSpace(form.Link)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, file.Name))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
