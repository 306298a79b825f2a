package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-console/console/internal/platform/logx"
	"github.com/portfolio-console/console/internal/portfolio/domain"
)

func TestListProjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"title":"Demo","description":"d","link":null,"image":"/media/a.png","created_at":"2024-05-01T10:00:00Z"},{"id":1,"title":"Old","description":"o"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")
	items, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, "", items[0].Link)
	assert.Equal(t, "/media/a.png", items[0].Image)
	require.NotNil(t, items[0].CreatedAt)
	assert.Nil(t, items[1].CreatedAt)
}

func TestListExperienceDecodesDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/experience/", r.URL.Path)
		w.Write([]byte(`[{"id":1,"position":"Dev","company":"Acme","description":"x","start_date":"2020-01-15","end_date":null},
			{"id":2,"position":"Lead","company":"Foo","description":"y","start_date":"2018-03-01","end_date":"2019-12-31"}]`))
	}))
	defer server.Close()

	items, err := NewClient(server.URL).ListExperience(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Current())
	assert.Equal(t, "2020-01-15", items[0].StartDate.String())
	require.NotNil(t, items[1].EndDate)
	assert.Equal(t, "2019-12-31", items[1].EndDate.String())
}

func TestFetchAllIndependentFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/projects/":
			w.Write([]byte(`[{"id":1,"title":"A","description":"B"}]`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	res := NewClient(server.URL).FetchAll(context.Background())
	require.NoError(t, res.ProjectsErr)
	assert.Len(t, res.Projects, 1)

	var rerr *domain.RequestError
	require.ErrorAs(t, res.ExperienceErr, &rerr)
	assert.Equal(t, http.StatusInternalServerError, rerr.Status)
	assert.Equal(t, MsgLoad, rerr.Message)
	assert.Nil(t, res.Experience)
}

func TestSaveProjectCreateMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Demo", r.FormValue("title"))
		assert.Equal(t, "Desc", r.FormValue("description"))
		assert.Equal(t, "https://example.com", r.FormValue("link"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "shot.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte("png-bytes"), data)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"title":"Demo","description":"Desc","link":"https://example.com","image":"/media/shot.png"}`))
	}))
	defer server.Close()

	form := domain.ProjectForm{Title: "  Demo ", Description: "Desc\n", Link: " https://example.com "}
	file := &domain.Upload{Name: "shot.png", ContentType: "image/png", Size: 9, Data: []byte("png-bytes")}

	p, err := NewClient(server.URL).SaveProject(context.Background(), form, file, domain.NoTarget())
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "/media/shot.png", p.Image)
}

func TestSaveProjectUpdateWithoutFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/projects/42/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, _, err := r.FormFile("image")
		assert.ErrorIs(t, err, http.ErrMissingFile)
		w.Write([]byte(`{"id":42,"title":"T","description":"D"}`))
	}))
	defer server.Close()

	p, err := NewClient(server.URL).SaveProject(context.Background(), domain.ProjectForm{Title: "T", Description: "D"}, nil, domain.Editing(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)
}

func TestSaveProjectNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title":["This field is required."]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).SaveProject(context.Background(), domain.ProjectForm{Title: "T", Description: "D"}, nil, domain.NoTarget())
	var rerr *domain.RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, OpSaveProject, rerr.Op)
	assert.Equal(t, MsgSaveProject, rerr.Message)
	assert.Equal(t, http.StatusBadRequest, rerr.Status)
}

func TestSaveExperiencePayload(t *testing.T) {
	tests := []struct {
		name       string
		target     domain.EditTarget
		endDate    string
		wantMethod string
		wantPath   string
		wantEnd    any
	}{
		{"create current role", domain.NoTarget(), "", http.MethodPost, "/api/experience/", nil},
		{"update finished role", domain.Editing(3), "2021-06-30", http.MethodPut, "/api/experience/3/", "2021-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantMethod, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "Dev", body["position"])
				assert.Equal(t, "Acme", body["company"])
				assert.Equal(t, "Built things", body["description"])
				assert.Equal(t, "2020-01-01", body["start_date"])
				v, ok := body["end_date"]
				assert.True(t, ok, "end_date must always be present")
				assert.Equal(t, tt.wantEnd, v)

				w.Write([]byte(`{"id":3,"position":"Dev","company":"Acme","description":"Built things","start_date":"2020-01-01","end_date":null}`))
			}))
			defer server.Close()

			form := domain.ExperienceForm{Position: " Dev", Company: "Acme ", Description: " Built things ", StartDate: "2020-01-01", EndDate: tt.endDate}
			e, err := NewClient(server.URL).SaveExperience(context.Background(), form, tt.target)
			require.NoError(t, err)
			assert.Equal(t, int64(3), e.ID)
		})
	}
}

func TestDeleteCalls(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/experience/9/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.DeleteProject(context.Background(), 5))

	err := client.DeleteExperience(context.Background(), 9)
	var rerr *domain.RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, MsgDeleteExperience, rerr.Message)
	assert.Equal(t, []string{"/api/projects/5/", "/api/experience/9/"}, paths)
}

func TestTransportFailureIsRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(url).DeleteProject(context.Background(), 1)
	var rerr *domain.RequestError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 0, rerr.Status)
	assert.Equal(t, MsgDeleteProject, rerr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestRequestIDForwarded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rid-77", r.Header.Get("X-Request-Id"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	ctx := logx.WithRequestID(context.Background(), "rid-77")
	items, err := NewClient(server.URL).ListProjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestMetricsRecorded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	client := NewClient(server.URL, WithMetrics(m))

	_, _ = client.ListProjects(context.Background())
	_ = client.DeleteProject(context.Background(), 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues(OpListProjects, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues(OpDeleteProject, "error")))
}
