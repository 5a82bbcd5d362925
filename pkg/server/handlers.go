package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/portfolio/pkg/contact"
	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/metrics"
	"github.com/nikogura/portfolio/pkg/resume"
	"github.com/nikogura/portfolio/pkg/visual"
	"github.com/pkg/errors"
)

// relatedLimit is how many related projects a project page lists.
const relatedLimit = 3

// ProjectView is a project with its derived scores.
type ProjectView struct {
	content.Project
	Scores metrics.ProjectScores `json:"scores"`
}

// ProjectDetail is the project page payload.
type ProjectDetail struct {
	Project ProjectView   `json:"project"`
	Related []ProjectView `json:"related"`
}

// RoleSummary describes an available résumé.
type RoleSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	SecondPage bool   `json:"second_page"`
}

// GraphView is a graph with one of its layouts.
type GraphView struct {
	Kind       string               `json:"kind"`
	Title      string               `json:"title"`
	Nodes      []graph.Node         `json:"nodes"`
	Links      []graph.Link         `json:"links"`
	Dangling   []graph.Dangling     `json:"dangling"`
	Categories []string             `json:"categories"`
	Legend     []visual.LegendEntry `json:"legend"`
	Layout     graph.Result         `json:"layout"`
}

// ContactResponse acknowledges a contact submission.
type ContactResponse struct {
	Status  string          `json:"status"`
	Receipt contact.Receipt `json:"receipt"`
}

func viewOf(p content.Project) (v ProjectView) {
	v = ProjectView{Project: p, Scores: metrics.Score(p)}
	return v
}

func viewsOf(projects []content.Project) (views []ProjectView) {
	views = make([]ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, viewOf(p))
	}
	return views
}

// HealthCheck reports liveness.
func (s *Server) HealthCheck(c *gin.Context) {
	RespondOK(c, gin.H{"status": "ok"})
}

// GetProfile returns the personal info.
func (s *Server) GetProfile(c *gin.Context) {
	RespondOK(c, s.data.Personal)
}

// ListCategories returns the project category names.
func (s *Server) ListCategories(c *gin.Context) {
	RespondOK(c, s.data.ProjectCategories)
}

// ListSkills returns the skill categories.
func (s *Server) ListSkills(c *gin.Context) {
	RespondOK(c, s.data.SkillCategories)
}

// ListProjects applies the category, tag and q filters in that order.
func (s *Server) ListProjects(c *gin.Context) {
	projects := s.data.Projects

	if category := c.Query("category"); category != "" {
		projects = content.FilterByCategory(projects, category)
	}
	if tag := c.Query("tag"); tag != "" {
		projects = content.FilterByTag(projects, tag)
	}
	if q := c.Query("q"); q != "" {
		projects = content.Search(projects, q)
	}
	if c.Query("featured") == "true" {
		projects = content.Featured(projects)
	}

	RespondOK(c, viewsOf(projects))
}

// GetProject returns one project with its scores and related projects.
func (s *Server) GetProject(c *gin.Context) {
	id := c.Param("id")
	p, found := content.ProjectByID(s.data.Projects, id)
	if !found {
		RespondError(c, http.StatusNotFound, CodeNotFound, errors.Errorf("project %q not found", id))
		return
	}

	RespondOK(c, ProjectDetail{
		Project: viewOf(p),
		Related: viewsOf(content.Related(p, s.data.Projects, relatedLimit)),
	})
}

// ListRoles summarises the résumé roles.
func (s *Server) ListRoles(c *gin.Context) {
	roles := make([]RoleSummary, 0, len(s.data.Roles))
	for i := range s.data.Roles {
		r := &s.data.Roles[i]
		roles = append(roles, RoleSummary{ID: r.ID, Title: r.Title, SecondPage: r.HasSecondPage()})
	}
	RespondOK(c, roles)
}

// GetResume renders the résumé for :role as pdf (default), md or png.
func (s *Server) GetResume(c *gin.Context) {
	roleID := c.Param("role")
	role, found := s.data.RoleByID(roleID)
	if !found {
		RespondError(c, http.StatusNotFound, CodeNotFound, errors.Errorf("role %q not found", roleID))
		return
	}

	format := c.DefaultQuery("format", resume.FormatPDF)
	mime, err := resume.ContentType(format)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}

	var buf bytes.Buffer
	err = resume.Write(&buf, format, s.data.Personal, role, s.data.Projects, s.resumeOptions())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, errors.Wrapf(err, "failed to render %s résumé", roleID))
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", slug(s.data.Personal.Name), role.ID, format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, mime, buf.Bytes())
}

// SubmitContact runs the simulated submission. Every failure answers with
// contact.GenericFailure; validation failures also name the field.
func (s *Server) SubmitContact(c *gin.Context) {
	var msg contact.Message
	err := c.ShouldBindJSON(&msg)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{
			Error: APIError{Message: contact.GenericFailure, Code: CodeBadRequest},
		})
		return
	}

	receipt, err := s.submitter.Submit(c.Request.Context(), msg)
	if err != nil {
		_ = c.Error(err)

		var fe *contact.FieldError
		if errors.As(err, &fe) {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorEnvelope{
				Error: APIError{Message: contact.GenericFailure, Code: CodeInvalid, Field: fe.Field},
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorEnvelope{
			Error: APIError{Message: contact.GenericFailure, Code: CodeUnavailable},
		})
		return
	}

	s.log.Info("contact message received", "receipt", receipt.ID)
	RespondOK(c, ContactResponse{Status: "sent", Receipt: receipt})
}

// GetGraph returns the nodes, links and layout of :kind.
func (s *Server) GetGraph(c *gin.Context) {
	kind := c.Param("kind")
	g, result, err := s.layoutFor(c.Request.Context(), kind, c.Query("layout"))
	if err != nil {
		respondGraphError(c, err)
		return
	}

	scene := visual.NewScene(g, result, visual.Options{})
	RespondOK(c, GraphView{
		Kind:       kind,
		Title:      s.graphTitle(kind),
		Nodes:      g.Nodes(),
		Links:      g.Links(),
		Dangling:   g.Dangling(),
		Categories: g.Categories(),
		Legend:     scene.Legend(),
		Layout:     result,
	})
}

// GetNode returns the tooltip detail for one node.
func (s *Server) GetNode(c *gin.Context) {
	g, err := s.graphFor(c.Param("kind"))
	if err != nil {
		respondGraphError(c, err)
		return
	}

	detail, err := g.Detail(c.Param("id"))
	if err != nil {
		respondGraphError(c, err)
		return
	}

	RespondOK(c, detail)
}

// GetGraphImage renders :kind as PNG.
func (s *Server) GetGraphImage(c *gin.Context) {
	kind := c.Param("kind")
	g, result, err := s.layoutFor(c.Request.Context(), kind, c.Query("layout"))
	if err != nil {
		respondGraphError(c, err)
		return
	}

	scene := visual.NewScene(g, result, visual.Options{
		Title:  s.graphTitle(kind),
		Labels: true,
		Legend: true,
		Glyphs: true,
	})

	var buf bytes.Buffer
	err = scene.EncodePNG(&buf)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) graphTitle(kind string) (title string) {
	switch kind {
	case graph.KindEcosystem:
		title = s.data.Ecosystem.Name
		if title == "" {
			title = "Technology Ecosystem"
		}
	case graph.KindSkills:
		title = "Skills"
	case graph.KindProjects:
		title = "Projects"
	}
	return title
}

// slug lower-cases name and joins its words with dashes.
func slug(name string) (s string) {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	s = strings.Join(fields, "-")
	if s == "" {
		s = "resume"
	}
	return s
}
