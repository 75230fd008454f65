// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"contenthub/internal/models"
)

// PostStore handles all post-related database operations, including the
// denormalized category post_count counter.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// postColumns lists the post columns plus the joined author and category
// display fields.
const postColumns = `p.id, p.title, p.slug, p.content, p.excerpt, p.cover_image,
	p.status, p.author_id, p.category_id, p.views,
	p.created_at, p.updated_at, p.published_at,
	u.name AS author_name, u.avatar AS author_avatar,
	c.name AS category_name, c.color AS category_color`

const postJoins = `
	FROM posts p
	LEFT JOIN users u ON p.author_id = u.id
	LEFT JOIN categories c ON p.category_id = c.id`

// scanPost scans a joined post row.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.CoverImage,
		&p.Status, &p.AuthorID, &p.CategoryID, &p.Views,
		&p.CreatedAt, &p.UpdatedAt, &p.PublishedAt,
		&p.AuthorName, &p.AuthorAvatar,
		&p.CategoryName, &p.CategoryColor,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListFilter describes the dynamic filter for listing posts.
type ListFilter struct {
	Page     int
	Limit    int
	Status   string     // "" or "all" disables the filter
	Category *uuid.UUID // nil disables the filter
	Search   string     // substring match on title or excerpt
	Sort     string     // restricted to the allow-list below
	Order    string     // "asc" or "desc"
}

// allowedSorts is the allow-list of sortable columns. Sort fields are
// interpolated into SQL, so anything outside this map falls back to created_at.
var allowedSorts = map[string]bool{
	"created_at": true,
	"title":      true,
	"views":      true,
	"updated_at": true,
}

// Pagination describes a page slice of a filtered result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// List returns the filtered, sorted page of posts plus pagination totals.
// The total count runs under the same filter as the page query.
func (s *PostStore) List(f ListFilter) ([]models.Post, *Pagination, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	where := ` WHERE 1=1`
	var args []any

	if f.Status != "" && f.Status != "all" {
		where += ` AND p.status = ?`
		args = append(args, f.Status)
	}
	if f.Category != nil {
		where += ` AND p.category_id = ?`
		args = append(args, *f.Category)
	}
	if f.Search != "" {
		where += ` AND (p.title LIKE ? OR p.excerpt LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	sortField := "created_at"
	if allowedSorts[f.Sort] {
		sortField = f.Sort
	}
	sortOrder := "DESC"
	if f.Order == "asc" {
		sortOrder = "ASC"
	}

	var total int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM posts p`+where, args...).Scan(&total)
	if err != nil {
		return nil, nil, fmt.Errorf("count posts: %w", err)
	}

	offset := (f.Page - 1) * f.Limit
	query := `SELECT ` + postColumns + postJoins + where +
		` ORDER BY p.` + sortField + ` ` + sortOrder + ` LIMIT ? OFFSET ?`
	rows, err := s.db.Query(query, append(args, f.Limit, offset)...)
	if err != nil {
		return nil, nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return posts, &Pagination{
		Page:       f.Page,
		Limit:      f.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

// FindByID retrieves a post with its author and category display fields.
// Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+postJoins+` WHERE p.id = ?`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// SlugTaken reports whether another post (excluding the given id) already
// uses the slug.
func (s *PostStore) SlugTaken(slug string, exclude uuid.UUID) (bool, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts WHERE slug = ? AND id != ?
	`, slug, exclude).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check post slug: %w", err)
	}
	return n > 0, nil
}

// Create inserts a new post and, when it is filed under a category,
// increments that category's post_count in the same transaction.
// published_at is set iff the initial status is published.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	if p.Status == models.PostStatusPublished && p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}

	id := uuid.New()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO posts (id, title, slug, content, excerpt, cover_image,
			status, author_id, category_id, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage,
		p.Status, p.AuthorID, p.CategoryID, p.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if p.CategoryID != nil {
		if err := adjustPostCount(tx, *p.CategoryID, 1); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.FindByID(id)
}

// Update writes the post and reconciles the category counters when the
// category changed, all in one transaction. prev must be the stored row the
// update is based on: published_at is refreshed only on a transition from a
// non-published status into published and is preserved otherwise.
func (s *PostStore) Update(p *models.Post, prev *models.Post) error {
	if p.Status == models.PostStatusPublished && prev.Status != models.PostStatusPublished {
		now := time.Now().UTC()
		p.PublishedAt = &now
	} else {
		p.PublishedAt = prev.PublishedAt
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE posts SET
			title = ?, slug = ?, content = ?, excerpt = ?, cover_image = ?,
			status = ?, category_id = ?, published_at = ?,
			updated_at = datetime('now')
		WHERE id = ?
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage,
		p.Status, p.CategoryID, p.PublishedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	if !uuidPtrEqual(p.CategoryID, prev.CategoryID) {
		if prev.CategoryID != nil {
			if err := adjustPostCount(tx, *prev.CategoryID, -1); err != nil {
				return err
			}
		}
		if p.CategoryID != nil {
			if err := adjustPostCount(tx, *p.CategoryID, 1); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Delete removes a post and decrements the owning category's post_count in
// the same transaction.
func (s *PostStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var categoryID *uuid.UUID
	err = tx.QueryRow(`SELECT category_id FROM posts WHERE id = ?`, id).Scan(&categoryID)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	if err != nil {
		return fmt.Errorf("find post category: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM posts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if categoryID != nil {
		if err := adjustPostCount(tx, *categoryID, -1); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// adjustPostCount is the single mutation point for the denormalized
// category counter. Every code path that changes which category a post
// belongs to goes through here; decrements are floored at zero.
func adjustPostCount(tx *sql.Tx, id uuid.UUID, delta int) error {
	_, err := tx.Exec(`
		UPDATE categories SET post_count = MAX(0, post_count + ?) WHERE id = ?
	`, delta, id)
	if err != nil {
		return fmt.Errorf("adjust post count: %w", err)
	}
	return nil
}

// uuidPtrEqual compares two *uuid.UUID for equality (both nil or same value).
func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
