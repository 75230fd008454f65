// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"contenthub/internal/models"
)

// MediaStore handles all media-related database operations.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// mediaColumns lists the media columns plus the joined uploader name.
const mediaColumns = `m.id, m.filename, m.original_name, m.mime_type, m.size,
	m.url, m.uploaded_by, m.created_at, u.name AS uploaded_by_name`

// scanMedia scans a joined media row.
func scanMedia(scanner interface{ Scan(...any) error }) (*models.Media, error) {
	var m models.Media
	err := scanner.Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size,
		&m.URL, &m.UploadedBy, &m.CreatedAt, &m.UploadedByName,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns media newest first. search filters on the original filename
// substring; mimePrefix filters on the MIME type prefix (e.g. "image").
// Both filters combine.
func (s *MediaStore) List(search, mimePrefix string) ([]models.Media, error) {
	query := `SELECT ` + mediaColumns + `
		FROM media m
		LEFT JOIN users u ON m.uploaded_by = u.id
		WHERE 1=1`
	var args []any

	if search != "" {
		query += ` AND m.original_name LIKE ?`
		args = append(args, "%"+search+"%")
	}
	if mimePrefix != "" {
		query += ` AND m.mime_type LIKE ?`
		args = append(args, mimePrefix+"%")
	}
	query += ` ORDER BY m.created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// FindByID retrieves a single media record. Returns nil if not found.
func (s *MediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	row := s.db.QueryRow(`SELECT `+mediaColumns+`
		FROM media m
		LEFT JOIN users u ON m.uploaded_by = u.id
		WHERE m.id = ?`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// Create inserts a new media record and returns it with the uploader joined.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	id := uuid.New()
	_, err := s.db.Exec(`
		INSERT INTO media (id, filename, original_name, mime_type, size, url, uploaded_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, m.Filename, m.OriginalName, m.MimeType, m.Size, m.URL, m.UploadedBy)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return s.FindByID(id)
}

// Delete removes a media record by ID.
func (s *MediaStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	return nil
}
