package folio

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/imamrpratama/folio/content"
)

func testCatalog() *content.Catalog {
	return &content.Catalog{
		Profile: content.Profile{
			Name:    "Test Person",
			Role:    "Developer",
			Tagline: "Builds things",
			Stack:   []string{"Go", "SQLite"},
			Bio:     []string{"I write **Go**.", "Second paragraph."},
			Pitch:   "Say hello.",
			Links: []content.ContactLink{
				{Label: "GitHub", URL: "https://github.com/test", Icon: "github"},
				{Label: "Email", URL: "mailto:test@example.com", Icon: "mail"},
			},
		},
		Projects: []content.Project{
			{
				ID:          1,
				Title:       "Gallery",
				Tech:        []string{"Go", "templ"},
				Description: "A project with **three** images.",
				Images:      []string{"images/a.png", "images/b.png", "images/c.png"},
				Demo:        "https://example.com/gallery",
			},
			{
				ID:          2,
				Title:       "Blank",
				Tech:        []string{"Echo"},
				Description: "No screenshots yet.",
			},
		},
		Skills: []content.SkillCategory{
			{
				Title:  "Backend",
				Accent: "from-purple-400 to-pink-400",
				Skills: []content.Skill{
					{Name: "Go", Icon: "code", Level: 90},
					{Name: "SQL", Icon: "database", Level: 75},
				},
			},
			{Title: "Empty", Accent: "from-blue-400 to-cyan-400"},
		},
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "folio.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
	empty, err := s.Empty()
	if err != nil {
		t.Fatalf("Empty failed: %v", err)
	}
	if !empty {
		t.Fatal("new store should be empty")
	}
}

func TestSeedAndLoadCatalog(t *testing.T) {
	s := setupTestStore(t)
	want := testCatalog()

	if err := s.Seed(want); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	got, err := s.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if !reflect.DeepEqual(got.Profile, want.Profile) {
		t.Errorf("profile = %+v, want %+v", got.Profile, want.Profile)
	}
	if len(got.Projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(got.Projects))
	}
	if !reflect.DeepEqual(got.Projects[0], want.Projects[0]) {
		t.Errorf("project 1 = %+v, want %+v", got.Projects[0], want.Projects[0])
	}
	if got.Projects[1].Images != nil {
		t.Errorf("expected no images for project 2, got %v", got.Projects[1].Images)
	}
	if len(got.Skills) != 2 {
		t.Fatalf("expected 2 skill categories, got %d", len(got.Skills))
	}
	if !reflect.DeepEqual(got.Skills[0], want.Skills[0]) {
		t.Errorf("skills[0] = %+v, want %+v", got.Skills[0], want.Skills[0])
	}
	if len(got.Skills[1].Skills) != 0 {
		t.Errorf("expected empty category to stay empty, got %v", got.Skills[1].Skills)
	}
}

func TestSeedReplacesCatalog(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Seed(testCatalog()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	next := testCatalog()
	next.Projects = next.Projects[:1]
	next.Projects[0].Title = "Renamed"
	if err := s.Seed(next); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Title != "Renamed" {
		t.Fatalf("expected only the renamed project, got %+v", projects)
	}
}

func TestSeedRejectsInvalidCatalog(t *testing.T) {
	s := setupTestStore(t)
	cat := testCatalog()
	cat.Projects[1].ID = cat.Projects[0].ID

	if err := s.Seed(cat); err == nil {
		t.Fatal("expected duplicate project ids to be rejected")
	}
	empty, _ := s.Empty()
	if !empty {
		t.Fatal("rejected seed must not write anything")
	}
}

func TestGetProject(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Seed(testCatalog()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	p, err := s.GetProject(1)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p.Title != "Gallery" || len(p.Images) != 3 {
		t.Errorf("unexpected project: %+v", p)
	}

	if _, err := s.GetProject(99); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadCatalogUnseeded(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.LoadCatalog(); !errors.Is(err, content.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from unseeded store, got %v", err)
	}
}

func TestCatalogCacheReloadsAfterInvalidate(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Seed(testCatalog()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	c := NewCatalogCache(s, time.Hour)

	first, err := c.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	again, _ := c.Catalog()
	if first != again {
		t.Fatal("expected cached catalog to be reused within the TTL")
	}

	next := testCatalog()
	next.Profile.Name = "Someone Else"
	if err := s.Seed(next); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	c.Invalidate()

	fresh, err := c.Catalog()
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if fresh.Profile.Name != "Someone Else" {
		t.Errorf("expected reloaded profile, got %q", fresh.Profile.Name)
	}

	if _, err := c.Project(42); !errors.Is(err, content.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListEncoding(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, "[]"},
		{[]string{"go"}, `["go"]`},
		{[]string{"REST API, GraphQL", " padded "}, `["REST API, GraphQL"," padded "]`},
	}
	for _, tt := range tests {
		got, err := encodeList(tt.in)
		if err != nil {
			t.Fatalf("encodeList(%v) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("encodeList(%v) = %q, want %q", tt.in, got, tt.want)
		}
		back, err := decodeList(got)
		if err != nil {
			t.Fatalf("decodeList(%q) failed: %v", got, err)
		}
		if !reflect.DeepEqual(back, tt.in) {
			t.Errorf("decodeList(%q) = %v, want %v", got, back, tt.in)
		}
	}

	if _, err := decodeList("not json"); err == nil {
		t.Error("expected an error for a malformed list")
	}
}

func TestSeedKeepsCommasInLists(t *testing.T) {
	s := setupTestStore(t)
	cat := testCatalog()
	cat.Projects[0].Images = []string{"shots/a,b.png", "shots/c.png"}
	cat.Projects[0].Tech = []string{"REST API, GraphQL"}
	if err := s.Seed(cat); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	p, err := s.GetProject(cat.Projects[0].ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if !reflect.DeepEqual(p.Images, []string{"shots/a,b.png", "shots/c.png"}) {
		t.Errorf("images = %q", p.Images)
	}
	if p.ImageCount() != 2 {
		t.Errorf("expected 2 images, got %d", p.ImageCount())
	}
	if !reflect.DeepEqual(p.Tech, []string{"REST API, GraphQL"}) {
		t.Errorf("tech = %q", p.Tech)
	}
}
