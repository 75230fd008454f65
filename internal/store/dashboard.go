// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"contenthub/internal/models"
)

// DashboardStore runs the read-only aggregate queries behind the dashboard.
// No caching layer sits in front of it; every call hits the database.
type DashboardStore struct {
	db *sql.DB
}

// NewDashboardStore returns a new DashboardStore.
func NewDashboardStore(db *sql.DB) *DashboardStore {
	return &DashboardStore{db: db}
}

// Stats assembles the full dashboard summary: headline totals, chart
// breakdowns, and the five most recent posts and users.
func (s *DashboardStore) Stats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	totals := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM posts`, &stats.Stats.TotalPosts},
		{`SELECT COUNT(*) FROM posts WHERE status = 'published'`, &stats.Stats.PublishedPosts},
		{`SELECT COUNT(*) FROM posts WHERE status = 'draft'`, &stats.Stats.DraftPosts},
		{`SELECT COUNT(*) FROM categories`, &stats.Stats.TotalCategories},
		{`SELECT COUNT(*) FROM users`, &stats.Stats.TotalUsers},
		{`SELECT COUNT(*) FROM media`, &stats.Stats.TotalMedia},
		{`SELECT COALESCE(SUM(views), 0) FROM posts`, &stats.Stats.TotalViews},
	}
	for _, t := range totals {
		if err := s.db.QueryRow(t.query).Scan(t.dest); err != nil {
			return nil, fmt.Errorf("dashboard totals: %w", err)
		}
	}

	var err error
	if stats.Charts.PostsOverTime, err = s.postsOverTime(); err != nil {
		return nil, err
	}
	if stats.Charts.PostsByCategory, err = s.postsByCategory(); err != nil {
		return nil, err
	}
	if stats.Charts.PostsByStatus, err = s.postsByStatus(); err != nil {
		return nil, err
	}
	if stats.Recent.Posts, err = s.recentPosts(); err != nil {
		return nil, err
	}
	if stats.Recent.Users, err = s.recentUsers(); err != nil {
		return nil, err
	}

	return stats, nil
}

// postsOverTime buckets posts by year-month for the trailing six months.
func (s *DashboardStore) postsOverTime() ([]models.MonthCount, error) {
	rows, err := s.db.Query(`
		SELECT strftime('%Y-%m', created_at) AS month, COUNT(*) AS count
		FROM posts
		WHERE created_at >= datetime('now', '-6 months')
		GROUP BY strftime('%Y-%m', created_at)
		ORDER BY month ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("posts over time: %w", err)
	}
	defer rows.Close()

	items := []models.MonthCount{}
	for rows.Next() {
		var mc models.MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, fmt.Errorf("scan month count: %w", err)
		}
		items = append(items, mc)
	}
	return items, rows.Err()
}

// postsByCategory counts posts per category, skipping empty categories.
func (s *DashboardStore) postsByCategory() ([]models.CategoryCount, error) {
	rows, err := s.db.Query(`
		SELECT c.name, c.color, COUNT(p.id) AS count
		FROM categories c
		LEFT JOIN posts p ON p.category_id = c.id
		GROUP BY c.id
		HAVING count > 0
		ORDER BY count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("posts by category: %w", err)
	}
	defer rows.Close()

	items := []models.CategoryCount{}
	for rows.Next() {
		var cc models.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Color, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		items = append(items, cc)
	}
	return items, rows.Err()
}

// postsByStatus counts posts grouped by status.
func (s *DashboardStore) postsByStatus() ([]models.StatusCount, error) {
	rows, err := s.db.Query(`
		SELECT status, COUNT(*) AS count FROM posts GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("posts by status: %w", err)
	}
	defer rows.Close()

	items := []models.StatusCount{}
	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		items = append(items, sc)
	}
	return items, rows.Err()
}

// recentPosts returns the five newest posts with their author names.
func (s *DashboardStore) recentPosts() ([]models.RecentPost, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.status, p.views, p.created_at, u.name AS author_name
		FROM posts p
		LEFT JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	defer rows.Close()

	items := []models.RecentPost{}
	for rows.Next() {
		var rp models.RecentPost
		if err := rows.Scan(&rp.ID, &rp.Title, &rp.Status, &rp.Views, &rp.CreatedAt, &rp.AuthorName); err != nil {
			return nil, fmt.Errorf("scan recent post: %w", err)
		}
		items = append(items, rp)
	}
	return items, rows.Err()
}

// recentUsers returns the five newest users.
func (s *DashboardStore) recentUsers() ([]models.RecentUser, error) {
	rows, err := s.db.Query(`
		SELECT id, name, email, role, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("recent users: %w", err)
	}
	defer rows.Close()

	items := []models.RecentUser{}
	for rows.Next() {
		var ru models.RecentUser
		if err := rows.Scan(&ru.ID, &ru.Name, &ru.Email, &ru.Role, &ru.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent user: %w", err)
		}
		items = append(items, ru)
	}
	return items, rows.Err()
}
