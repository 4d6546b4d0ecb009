// Package content holds the static portfolio catalog: the profile, the
// project gallery and the skill categories. A Catalog is built once at
// startup and is never mutated afterwards.
package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a project id is not part of the catalog.
var ErrNotFound = errors.New("content: not found")

// Project is one entry of the project gallery.
type Project struct {
	ID          int      `yaml:"id" json:"id" validate:"gt=0"`
	Title       string   `yaml:"title" json:"title" validate:"required"`
	Tech        []string `yaml:"tech" json:"tech"`
	Description string   `yaml:"description" json:"description"`
	Images      []string `yaml:"images" json:"images" validate:"dive,required"`
	Demo        string   `yaml:"demo" json:"demo"`
}

// ImageCount returns the number of carousel images of the project.
func (p Project) ImageCount() int {
	return len(p.Images)
}

// Skill is a single skill bar. Icon is a symbolic reference resolved by the views.
type Skill struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Icon  string `yaml:"icon" json:"icon"`
	Level int    `yaml:"level" json:"level" validate:"min=0,max=100"`
}

// SkillCategory groups skills under a title and an accent style token.
type SkillCategory struct {
	Title  string  `yaml:"title" json:"title" validate:"required"`
	Accent string  `yaml:"accent" json:"accent"`
	Skills []Skill `yaml:"skills" json:"skills" validate:"dive"`
}

// ContactLink is an outbound link shown in the about and contact sections.
// URL is opaque and handed to the browser unchanged.
type ContactLink struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	URL   string `yaml:"url" json:"url" validate:"required"`
	Icon  string `yaml:"icon" json:"icon"`
}

// Profile is the person the site presents.
type Profile struct {
	Name    string        `yaml:"name" json:"name" validate:"required"`
	Role    string        `yaml:"role" json:"role"`
	Tagline string        `yaml:"tagline" json:"tagline"`
	Stack   []string      `yaml:"stack" json:"stack"`
	Bio     []string      `yaml:"bio" json:"bio"`
	Pitch   string        `yaml:"pitch" json:"pitch"`
	Links   []ContactLink `yaml:"links" json:"links" validate:"dive"`
}

// Catalog is the complete content registry.
type Catalog struct {
	Profile  Profile         `yaml:"profile" json:"profile"`
	Projects []Project       `yaml:"projects" json:"projects" validate:"unique=ID,dive"`
	Skills   []SkillCategory `yaml:"skills" json:"skills" validate:"dive"`
}

// Project returns the project with the given id.
func (c *Catalog) Project(id int) (Project, error) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
}

// ImageCounts maps every project id to its number of images.
func (c *Catalog) ImageCounts() map[int]int {
	counts := make(map[int]int, len(c.Projects))
	for _, p := range c.Projects {
		counts[p.ID] = p.ImageCount()
	}
	return counts
}
