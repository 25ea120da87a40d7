package modulestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a Store backed by a local SQLite mirror of course
// descriptors. The mirror is populated out of band by the content
// pipeline; this service only reads it, plus UpsertCourse for seeding.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("modulestore database path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open modulestore database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping modulestore database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate modulestore database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS course_runs (
		key TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		instructor_info TEXT NOT NULL DEFAULT '{}'
	)`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create course_runs table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetCourse returns the descriptor for a course-run key, or (nil, nil)
// when no such course exists.
func (s *SQLiteStore) GetCourse(ctx context.Context, key string) (*CourseDescriptor, error) {
	descriptor := &CourseDescriptor{}
	var info string

	err := s.db.QueryRowContext(ctx,
		`SELECT key, display_name, instructor_info FROM course_runs WHERE key = ?`, key,
	).Scan(&descriptor.Key, &descriptor.DisplayName, &info)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query course %q: %w", key, err)
	}

	descriptor.InstructorInfo = json.RawMessage(info)
	return descriptor, nil
}

// UpsertCourse inserts or replaces a course descriptor.
func (s *SQLiteStore) UpsertCourse(ctx context.Context, descriptor *CourseDescriptor) error {
	info := string(descriptor.InstructorInfo)
	if info == "" {
		info = "{}"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO course_runs (key, display_name, instructor_info) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET display_name = excluded.display_name,
		 instructor_info = excluded.instructor_info`,
		descriptor.Key, descriptor.DisplayName, info,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert course %q: %w", descriptor.Key, err)
	}
	return nil
}
