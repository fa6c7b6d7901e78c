package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

//go:embed schema_postgres.sql
var postgresSchema string

var ErrMissingURL = errors.New("profile has no profile_url")

const (
	dialectSQLite   = "sqlite"
	dialectPostgres = "postgres"
)

type Store struct {
	db      *sql.DB
	dialect string
}

// Profile is one faculty member as persisted in the faculty table.
type Profile struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Designation    string `json:"designation"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	Research       string `json:"research"`
	Publications   string `json:"publications"`
	Teaching       string `json:"teaching"`
	Specialization string `json:"specialization"`
	ProfileURL     string `json:"profile_url"`
}

// NewStore opens a postgres database for postgres:// DSNs and a SQLite file
// for anything else.
func NewStore(dsn string) (*Store, error) {
	dialect := dialectFor(dsn)

	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if dialect == dialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db, dialect: dialect}, nil
}

func dialectFor(dsn string) string {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return dialectPostgres
	}
	return dialectSQLite
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the faculty table if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	schema := sqliteSchema
	if s.dialect == dialectPostgres {
		schema = postgresSchema
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Store) RunMigrations(schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Upsert inserts a new profile or refreshes the content columns of an existing
// one. name and designation keep the values from the first insert.
func (s *Store) Upsert(ctx context.Context, p Profile) error {
	if strings.TrimSpace(p.ProfileURL) == "" {
		return ErrMissingURL
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO faculty (name, designation, email, bio, research, publications, teaching, specialization, profile_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (profile_url) DO UPDATE SET
    bio = EXCLUDED.bio,
    research = EXCLUDED.research,
    publications = EXCLUDED.publications,
    teaching = EXCLUDED.teaching,
    specialization = EXCLUDED.specialization,
    email = EXCLUDED.email
`, p.Name, p.Designation, p.Email, p.Bio, p.Research, p.Publications, p.Teaching, p.Specialization, p.ProfileURL)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", p.ProfileURL, err)
	}
	return nil
}

const selectProfiles = `
SELECT
    id,
    COALESCE(name, ''),
    COALESCE(designation, ''),
    COALESCE(email, ''),
    COALESCE(bio, ''),
    COALESCE(research, ''),
    COALESCE(publications, ''),
    COALESCE(teaching, ''),
    COALESCE(specialization, ''),
    COALESCE(profile_url, '')
FROM faculty
`

func (s *Store) GetAll(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, selectProfiles+`ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	return scanProfiles(rows)
}

// likeEscaper makes LIKE wildcards in a query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Search matches q case-insensitively as a substring of name, bio or research.
func (s *Store) Search(ctx context.Context, q string) ([]Profile, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
	rows, err := s.db.QueryContext(ctx, selectProfiles+`
WHERE LOWER(name) LIKE $1 ESCAPE '\' OR LOWER(bio) LIKE $1 ESCAPE '\' OR LOWER(research) LIKE $1 ESCAPE '\'
ORDER BY id`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search faculty: %w", err)
	}
	return scanProfiles(rows)
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faculty`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count faculty: %w", err)
	}
	return n, nil
}

func scanProfiles(rows *sql.Rows) ([]Profile, error) {
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Designation,
			&p.Email,
			&p.Bio,
			&p.Research,
			&p.Publications,
			&p.Teaching,
			&p.Specialization,
			&p.ProfileURL,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
