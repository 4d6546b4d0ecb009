package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Imam Rizky Pratama", c.Profile.Name)
	assert.Len(t, c.Projects, 7)
	assert.Len(t, c.Skills, 4)

	counts := c.ImageCounts()
	assert.Equal(t, 3, counts[1])
	assert.Equal(t, 1, counts[5])
	assert.Equal(t, 2, counts[7])
}

func TestCatalogProjectLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	p, err := c.Project(4)
	require.NoError(t, err)
	assert.Equal(t, "Villa Berastagimas", p.Title)
	assert.Equal(t, []string{"Laravel", "REST API", "Tailwind CSS", "Xendit"}, p.Tech)

	_, err = c.Project(99)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "duplicate ids",
			yaml: `
profile: {name: A}
projects:
  - {id: 1, title: One, images: [a.png]}
  - {id: 1, title: Two, images: [b.png]}
`,
		},
		{
			name: "level above 100",
			yaml: `
profile: {name: A}
skills:
  - title: Tools
    skills:
      - {name: Git, level: 101}
`,
		},
		{
			name: "negative level",
			yaml: `
profile: {name: A}
skills:
  - title: Tools
    skills:
      - {name: Git, level: -1}
`,
		},
		{
			name: "missing project title",
			yaml: `
profile: {name: A}
projects:
  - {id: 3, images: [a.png]}
`,
		},
		{
			name: "non-positive id",
			yaml: `
profile: {name: A}
projects:
  - {id: 0, title: Zero}
`,
		},
		{
			name: "malformed yaml",
			yaml: "profile: [",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParseAcceptsProjectWithoutImages(t *testing.T) {
	c, err := Parse([]byte(`
profile: {name: A}
projects:
  - {id: 9, title: Empty}
`))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Projects[0].ImageCount())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile: {name: Someone, role: Engineer}
projects:
  - {id: 2, title: Two, images: [x.png, y.png], demo: "https://example.com"}
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", c.Profile.Role)
	assert.Equal(t, 2, c.ImageCounts()[2])

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
