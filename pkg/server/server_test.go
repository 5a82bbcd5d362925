package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio/pkg/contact"
	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/pkg/errors"
)

type failingSubmitter struct{}

func (failingSubmitter) Submit(ctx context.Context, msg contact.Message) (receipt contact.Receipt, err error) {
	err = msg.Validate()
	if err != nil {
		return receipt, err
	}
	err = errors.New("mail relay down")
	return receipt, err
}

func newTestServer(t *testing.T, submitter contact.Submitter) (s *Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	data, err := content.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load default content: %v", err)
	}

	if submitter == nil {
		submitter = contact.NewSimulatedSubmitter(0)
	}

	s, err = New(Options{Data: data, Submitter: submitter})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	return s
}

func doRequest(s *Server, method, path string, body []byte) (rec *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec = httptest.NewRecorder()
	s.Engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	err := json.Unmarshal(rec.Body.Bytes(), v)
	if err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/healthcheck", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestProfileAndCategories(t *testing.T) {
	s := newTestServer(t, nil)

	var profile content.PersonalInfo
	decode(t, doRequest(s, http.MethodGet, "/api/profile", nil), &profile)
	if profile.Name != "Alex Morgan" {
		t.Errorf("Expected Alex Morgan, got %s", profile.Name)
	}

	var categories []string
	decode(t, doRequest(s, http.MethodGet, "/api/categories", nil), &categories)
	if len(categories) != 4 {
		t.Errorf("Expected 4 categories, got %d", len(categories))
	}

	var skills []content.SkillCategory
	decode(t, doRequest(s, http.MethodGet, "/api/skills", nil), &skills)
	if len(skills) == 0 {
		t.Error("Expected skill categories")
	}
}

func TestListProjects(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name    string
		query   string
		wantIDs []string
		check   func(p ProjectView) bool
	}{
		{
			name:    "all",
			query:   "",
			wantIDs: []string{"generative-ai-suite", "kubernetes-platform", "portfolio-site"},
		},
		{
			name:    "category",
			query:   "?category=Artificial+Intelligence+%26+Machine+Learning",
			wantIDs: []string{"generative-ai-suite", "ai-agents-platform"},
			check: func(p ProjectView) bool {
				return p.Category == "Artificial Intelligence & Machine Learning"
			},
		},
		{
			name:  "unknown category",
			query: "?category=Gardening",
			check: func(p ProjectView) bool { return false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, "/api/projects"+tt.query, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rec.Code)
			}

			var projects []ProjectView
			decode(t, rec, &projects)

			seen := map[string]bool{}
			for _, p := range projects {
				seen[p.ID] = true
				if tt.check != nil && !tt.check(p) {
					t.Errorf("Unexpected project %s (%s)", p.ID, p.Category)
				}
				if p.Scores.Complexity < 0 || p.Scores.Complexity > 100 || p.Scores.Impact < 0 || p.Scores.Impact > 100 {
					t.Errorf("Scores out of range for %s: %+v", p.ID, p.Scores)
				}
			}
			for _, id := range tt.wantIDs {
				if !seen[id] {
					t.Errorf("Expected %s in results", id)
				}
			}
		})
	}
}

func TestGetProject(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/projects/generative-ai-suite", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var detail ProjectDetail
	decode(t, rec, &detail)
	if detail.Project.Title != "Generative AI Suite" {
		t.Errorf("Expected Generative AI Suite, got %s", detail.Project.Title)
	}
	if len(detail.Related) == 0 || len(detail.Related) > relatedLimit {
		t.Errorf("Expected 1..%d related projects, got %d", relatedLimit, len(detail.Related))
	}
	for _, r := range detail.Related {
		if r.ID == detail.Project.ID {
			t.Error("Project listed as related to itself")
		}
	}

	rec = doRequest(s, http.MethodGet, "/api/projects/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}

	var env ErrorEnvelope
	decode(t, rec, &env)
	if env.Error.Code != CodeNotFound {
		t.Errorf("Expected not_found code, got %q", env.Error.Code)
	}
}

func TestRolesAndResume(t *testing.T) {
	s := newTestServer(t, nil)

	var roles []RoleSummary
	decode(t, doRequest(s, http.MethodGet, "/api/roles", nil), &roles)
	if len(roles) != 2 {
		t.Fatalf("Expected 2 roles, got %d", len(roles))
	}

	tests := []struct {
		name        string
		path        string
		wantStatus  int
		wantType    string
		wantPrefix  string
		wantAttach  string
		wantErrCode string
	}{
		{
			name:       "pdf default",
			path:       "/api/resume/ai-engineer",
			wantStatus: http.StatusOK,
			wantType:   "application/pdf",
			wantPrefix: "%PDF",
			wantAttach: "alex-morgan-ai-engineer.pdf",
		},
		{
			name:       "markdown",
			path:       "/api/resume/platform-engineer?format=md",
			wantStatus: http.StatusOK,
			wantType:   "text/markdown; charset=utf-8",
			wantPrefix: "# Alex Morgan",
			wantAttach: "alex-morgan-platform-engineer.md",
		},
		{
			name:       "png preview",
			path:       "/api/resume/platform-engineer?format=png",
			wantStatus: http.StatusOK,
			wantType:   "image/png",
			wantPrefix: "\x89PNG",
		},
		{
			name:        "bad format",
			path:        "/api/resume/ai-engineer?format=docx",
			wantStatus:  http.StatusBadRequest,
			wantErrCode: CodeBadRequest,
		},
		{
			name:        "unknown role",
			path:        "/api/resume/astronaut",
			wantStatus:  http.StatusNotFound,
			wantErrCode: CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tt.path, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			if tt.wantErrCode != "" {
				var env ErrorEnvelope
				decode(t, rec, &env)
				if env.Error.Code != tt.wantErrCode {
					t.Errorf("Expected code %s, got %s", tt.wantErrCode, env.Error.Code)
				}
				return
			}

			if got := rec.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Expected content type %s, got %s", tt.wantType, got)
			}
			if !strings.HasPrefix(rec.Body.String(), tt.wantPrefix) {
				t.Errorf("Expected body to start with %q", tt.wantPrefix)
			}
			if tt.wantAttach != "" && !strings.Contains(rec.Header().Get("Content-Disposition"), tt.wantAttach) {
				t.Errorf("Expected attachment %s, got %s", tt.wantAttach, rec.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestGetGraph(t *testing.T) {
	s := newTestServer(t, nil)

	for _, kind := range graph.Kinds {
		for _, layout := range graph.LayoutNames {
			t.Run(kind+"/"+layout, func(t *testing.T) {
				rec := doRequest(s, http.MethodGet, "/api/graphs/"+kind+"?layout="+layout, nil)
				if rec.Code != http.StatusOK {
					t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
				}

				var view GraphView
				decode(t, rec, &view)
				if view.Layout.Layout != layout {
					t.Errorf("Expected layout %s, got %s", layout, view.Layout.Layout)
				}
				if len(view.Layout.Positions) != len(view.Nodes) {
					t.Errorf("Expected %d positions, got %d", len(view.Nodes), len(view.Layout.Positions))
				}
				if len(view.Dangling) != 0 {
					t.Errorf("Expected no dangling links in default content, got %v", view.Dangling)
				}
				if len(view.Legend) != len(view.Categories) {
					t.Errorf("Expected one legend row per category, got %d/%d", len(view.Legend), len(view.Categories))
				}
			})
		}
	}
}

func TestGetGraphCachesLayout(t *testing.T) {
	s := newTestServer(t, nil)

	var first, second GraphView
	decode(t, doRequest(s, http.MethodGet, "/api/graphs/ecosystem", nil), &first)
	decode(t, doRequest(s, http.MethodGet, "/api/graphs/ecosystem?layout=force", nil), &second)

	if len(s.layouts) != 1 {
		t.Errorf("Expected one cached layout, got %d", len(s.layouts))
	}
	for id, p := range first.Layout.Positions {
		if second.Layout.Positions[id] != p {
			t.Errorf("Position of %s changed between requests", id)
		}
	}
}

func TestGetGraphErrors(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{name: "unknown kind", path: "/api/graphs/galaxy", wantStatus: http.StatusNotFound},
		{name: "unknown layout", path: "/api/graphs/skills?layout=spiral", wantStatus: http.StatusBadRequest},
		{name: "unknown node", path: "/api/graphs/ecosystem/nodes/ghost", wantStatus: http.StatusNotFound},
		{name: "unknown kind image", path: "/api/graphs/galaxy/image", wantStatus: http.StatusNotFound},
		{name: "unknown kind live", path: "/api/graphs/galaxy/live", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tt.path, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var env ErrorEnvelope
			decode(t, rec, &env)
			if env.Error.Message == "" {
				t.Error("Expected error message")
			}
		})
	}
}

func TestGetNode(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/graphs/ecosystem/nodes/go", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var detail graph.Detail
	decode(t, rec, &detail)
	if detail.Node.Name != "Go" {
		t.Errorf("Expected Go, got %s", detail.Node.Name)
	}
	if detail.Degree == 0 || detail.Degree != len(detail.Neighbors) {
		t.Errorf("Expected matching non-zero degree and neighbours, got %d/%d", detail.Degree, len(detail.Neighbors))
	}
}

func TestGetGraphImage(t *testing.T) {
	s := newTestServer(t, nil)

	rec := doRequest(s, http.MethodGet, "/api/graphs/skills/image?layout=radial", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Expected image/png, got %s", rec.Header().Get("Content-Type"))
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != int(graph.DefaultCanvas.Width) || img.Bounds().Dy() != int(graph.DefaultCanvas.Height) {
		t.Errorf("Unexpected image size %v", img.Bounds())
	}
}

func TestSubmitContact(t *testing.T) {
	valid := `{"name":"Jordan Lee","email":"jordan@example.com","message":"Hello there"}`

	tests := []struct {
		name       string
		submitter  contact.Submitter
		body       string
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name:       "success",
			body:       valid,
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid email",
			body:       `{"name":"Jordan","email":"nope","message":"Hi"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalid,
			wantField:  "email",
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeBadRequest,
		},
		{
			name:       "backend failure",
			submitter:  failingSubmitter{},
			body:       valid,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   CodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.submitter)

			rec := doRequest(s, http.MethodPost, "/api/contact", []byte(tt.body))
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			if tt.wantCode == "" {
				var resp ContactResponse
				decode(t, rec, &resp)
				if resp.Status != "sent" || resp.Receipt.ID == "" {
					t.Errorf("Unexpected response %+v", resp)
				}
				return
			}

			var env ErrorEnvelope
			decode(t, rec, &env)
			if env.Error.Message != contact.GenericFailure {
				t.Errorf("Expected generic failure message, got %q", env.Error.Message)
			}
			if env.Error.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, env.Error.Code)
			}
			if env.Error.Field != tt.wantField {
				t.Errorf("Expected field %q, got %q", tt.wantField, env.Error.Field)
			}
		})
	}
}

func TestNewWithEmptyDataset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s, err := New(Options{})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	rec := doRequest(s, http.MethodGet, "/api/graphs/ecosystem/image", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected empty-state image, got %d", rec.Code)
	}

	var projects []ProjectView
	decode(t, doRequest(s, http.MethodGet, "/api/projects", nil), &projects)
	if len(projects) != 0 {
		t.Errorf("Expected no projects, got %d", len(projects))
	}
}

func TestNewWithSkillInTwoCategories(t *testing.T) {
	gin.SetMode(gin.TestMode)

	data, err := content.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load default content: %v", err)
	}
	if len(data.SkillCategories) < 2 {
		t.Fatalf("Expected at least 2 skill categories, got %d", len(data.SkillCategories))
	}

	skills := 0
	for _, sc := range data.SkillCategories {
		skills += len(sc.Skills)
	}

	shared := data.SkillCategories[0].Skills[0]
	data.SkillCategories[1].Skills = append(data.SkillCategories[1].Skills, shared)

	err = data.Validate()
	if err != nil {
		t.Fatalf("Expected shared skill to validate: %v", err)
	}

	s, err := New(Options{Data: data})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	rec := doRequest(s, http.MethodGet, "/api/graphs/skills?layout=radial", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var view GraphView
	decode(t, rec, &view)
	if len(view.Nodes) != skills {
		t.Errorf("Expected %d skill nodes, got %d", skills, len(view.Nodes))
	}
}
