package content

import (
	"bytes"
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // Embedded content
//
//go:embed portfolio.yaml
var defaultDocument []byte

// LoadDefault returns the dataset compiled into the binary.
func LoadDefault() (data Dataset, err error) {
	data, err = Parse(defaultDocument)
	if err != nil {
		err = errors.Wrap(err, "failed to load embedded portfolio content")
		return data, err
	}
	return data, err
}

// Parse decodes and validates a content document. JSON documents are accepted
// since they are valid YAML.
func Parse(raw []byte) (data Dataset, err error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		err = errors.New("content document is empty")
		return data, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	err = decoder.Decode(&data)
	if err != nil {
		err = errors.Wrap(err, "failed to parse content document")
		return data, err
	}

	err = data.Validate()
	if err != nil {
		err = errors.Wrap(err, "content validation failed")
		return data, err
	}

	return data, err
}

// Validate checks that the dataset is well-formed.
func (d *Dataset) Validate() (err error) {
	if d.Personal.Name == "" {
		err = errors.New("personal name is required")
		return err
	}

	if len(d.ProjectCategories) == 0 {
		err = errors.New("no project categories defined")
		return err
	}

	categories := make(map[string]bool, len(d.ProjectCategories))
	for _, c := range d.ProjectCategories {
		categories[c] = true
	}

	projectIDs := make(map[string]bool, len(d.Projects))
	for i, p := range d.Projects {
		if p.ID == "" {
			err = errors.Errorf("project at index %d missing ID", i)
			return err
		}
		if projectIDs[p.ID] {
			err = errors.Errorf("duplicate project ID: %s", p.ID)
			return err
		}
		projectIDs[p.ID] = true

		if p.Title == "" {
			err = errors.Errorf("project %s missing title", p.ID)
			return err
		}
		if !categories[p.Category] {
			err = errors.Errorf("project %s has unknown category %q", p.ID, p.Category)
			return err
		}
	}

	for _, sc := range d.SkillCategories {
		for i, s := range sc.Skills {
			if strings.TrimSpace(s.Name) == "" {
				err = errors.Errorf("skill at index %d of %s missing name", i, sc.Name)
				return err
			}
			if s.Level < 0 || s.Level > 100 {
				err = errors.Errorf("skill %s level %d out of range 0-100", s.Name, s.Level)
				return err
			}
		}
	}

	err = d.Ecosystem.Validate()
	if err != nil {
		return err
	}

	roleIDs := make(map[string]bool, len(d.Roles))
	for i, r := range d.Roles {
		if r.ID == "" {
			err = errors.Errorf("role at index %d missing ID", i)
			return err
		}
		if roleIDs[r.ID] {
			err = errors.Errorf("duplicate role ID: %s", r.ID)
			return err
		}
		roleIDs[r.ID] = true

		for _, rp := range r.Projects {
			if !projectIDs[rp.ID] {
				err = errors.Errorf("role %s references unknown project %s", r.ID, rp.ID)
				return err
			}
		}
	}

	return err
}

// Validate checks node ids, levels, statuses and proficiency ranges. Connection
// targets are not checked here; graph construction reports dangling ones.
func (e *TechEcosystem) Validate() (err error) {
	levels := map[string]bool{}
	for _, l := range Levels {
		levels[l] = true
	}
	statuses := map[string]bool{StatusActive: true, StatusLearning: true, StatusPlanned: true}

	ids := make(map[string]bool, len(e.Nodes))
	for i, n := range e.Nodes {
		if n.ID == "" {
			err = errors.Errorf("tech node at index %d missing ID", i)
			return err
		}
		if ids[n.ID] {
			err = errors.Errorf("duplicate tech node ID: %s", n.ID)
			return err
		}
		ids[n.ID] = true

		if !levels[n.Level] {
			err = errors.Errorf("tech node %s has unknown level %q", n.ID, n.Level)
			return err
		}
		if !statuses[n.Status] {
			err = errors.Errorf("tech node %s has unknown status %q", n.ID, n.Status)
			return err
		}
		if n.Proficiency < 0 || n.Proficiency > 100 {
			err = errors.Errorf("tech node %s proficiency %d out of range 0-100", n.ID, n.Proficiency)
			return err
		}
	}

	return err
}

// RoleByID returns the role with the given id.
func (d *Dataset) RoleByID(id string) (role JobRole, found bool) {
	for _, r := range d.Roles {
		if r.ID == id {
			role = r
			found = true
			return role, found
		}
	}
	return role, found
}
