package folio

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/imamrpratama/folio/content"
)

// Store wraps a SQLite database holding the content catalog.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA foreign_keys=ON;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    tech TEXT NOT NULL,
    description TEXT NOT NULL,
    images TEXT NOT NULL,
    demo TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS skill_categories (
    position INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    accent TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS skills (
    category INTEGER NOT NULL REFERENCES skill_categories(position) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    icon TEXT NOT NULL,
    level INTEGER NOT NULL,
    PRIMARY KEY (category, position)
);
`)
	return err
}

// Seed replaces the stored catalog with c in a single transaction.
func (s *Store) Seed(c *content.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	profile, err := json.Marshal(c.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM skills`, `DELETE FROM skill_categories`, `DELETE FROM projects`} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES ('profile', ?)`, string(profile)); err != nil {
		return err
	}
	for i, p := range c.Projects {
		tech, err := encodeList(p.Tech)
		if err != nil {
			return fmt.Errorf("encode tech of project %d: %w", p.ID, err)
		}
		images, err := encodeList(p.Images)
		if err != nil {
			return fmt.Errorf("encode images of project %d: %w", p.ID, err)
		}
		if _, err := tx.Exec(`INSERT INTO projects (id, position, title, tech, description, images, demo) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, i, p.Title, tech, p.Description, images, p.Demo); err != nil {
			return fmt.Errorf("insert project %d: %w", p.ID, err)
		}
	}
	for i, cat := range c.Skills {
		if _, err := tx.Exec(`INSERT INTO skill_categories (position, title, accent) VALUES (?, ?, ?)`, i, cat.Title, cat.Accent); err != nil {
			return fmt.Errorf("insert skill category %q: %w", cat.Title, err)
		}
		for j, sk := range cat.Skills {
			if _, err := tx.Exec(`INSERT INTO skills (category, position, name, icon, level) VALUES (?, ?, ?, ?, ?)`,
				i, j, sk.Name, sk.Icon, sk.Level); err != nil {
				return fmt.Errorf("insert skill %q: %w", sk.Name, err)
			}
		}
	}
	return tx.Commit()
}

// Empty reports whether the store has never been seeded.
func (s *Store) Empty() (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM settings WHERE key = 'profile'`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

// LoadCatalog reads the full catalog in display order.
func (s *Store) LoadCatalog() (*content.Catalog, error) {
	var c content.Catalog

	var profile string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = 'profile'`).Scan(&profile)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog not seeded: %w", content.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(profile), &c.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		return nil, err
	}
	c.Projects = projects

	skills, err := s.ListSkills()
	if err != nil {
		return nil, err
	}
	c.Skills = skills
	return &c, nil
}

// ListProjects returns all projects in display order.
func (s *Store) ListProjects() ([]content.Project, error) {
	rows, err := s.db.Query(`SELECT id, title, tech, description, images, demo FROM projects ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []content.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetProject returns a single project by id.
func (s *Store) GetProject(id int) (content.Project, error) {
	row := s.db.QueryRow(`SELECT id, title, tech, description, images, demo FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return content.Project{}, fmt.Errorf("project %d: %w", id, content.ErrNotFound)
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(sc scanner) (content.Project, error) {
	var p content.Project
	var tech, images string
	if err := sc.Scan(&p.ID, &p.Title, &tech, &p.Description, &images, &p.Demo); err != nil {
		return content.Project{}, err
	}
	var err error
	if p.Tech, err = decodeList(tech); err != nil {
		return content.Project{}, fmt.Errorf("decode tech of project %d: %w", p.ID, err)
	}
	if p.Images, err = decodeList(images); err != nil {
		return content.Project{}, fmt.Errorf("decode images of project %d: %w", p.ID, err)
	}
	return p, nil
}

// encodeList stores a string list as a JSON array.
func encodeList(vals []string) (string, error) {
	if len(vals) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(vals)
	return string(b), err
}

func decodeList(s string) ([]string, error) {
	var vals []string
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &vals); err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	return vals, nil
}

// ListSkills returns all skill categories with their skills in display order.
func (s *Store) ListSkills() ([]content.SkillCategory, error) {
	rows, err := s.db.Query(`
SELECT c.position, c.title, c.accent, k.name, k.icon, k.level
FROM skill_categories c
LEFT JOIN skills k ON k.category = c.position
ORDER BY c.position, k.position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []content.SkillCategory
	last := -1
	for rows.Next() {
		var pos int
		var title, accent string
		var name, icon sql.NullString
		var level sql.NullInt64
		if err := rows.Scan(&pos, &title, &accent, &name, &icon, &level); err != nil {
			return nil, err
		}
		if pos != last {
			cats = append(cats, content.SkillCategory{Title: title, Accent: accent})
			last = pos
		}
		if name.Valid {
			cur := &cats[len(cats)-1]
			cur.Skills = append(cur.Skills, content.Skill{Name: name.String, Icon: icon.String, Level: int(level.Int64)})
		}
	}
	return cats, rows.Err()
}
