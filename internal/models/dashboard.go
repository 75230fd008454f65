package models

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats is the aggregate summary returned by /api/dashboard/stats.
type DashboardStats struct {
	Stats  StatTotals      `json:"stats"`
	Charts DashboardCharts `json:"charts"`
	Recent DashboardRecent `json:"recent"`
}

// StatTotals holds the headline counters.
type StatTotals struct {
	TotalPosts      int `json:"totalPosts"`
	PublishedPosts  int `json:"publishedPosts"`
	DraftPosts      int `json:"draftPosts"`
	TotalCategories int `json:"totalCategories"`
	TotalUsers      int `json:"totalUsers"`
	TotalMedia      int `json:"totalMedia"`
	TotalViews      int `json:"totalViews"`
}

// DashboardCharts holds the breakdowns used for charting.
type DashboardCharts struct {
	PostsOverTime   []MonthCount    `json:"postsOverTime"`
	PostsByCategory []CategoryCount `json:"postsByCategory"`
	PostsByStatus   []StatusCount   `json:"postsByStatus"`
}

// MonthCount is a posts-per-month bucket (month formatted as YYYY-MM).
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// CategoryCount is a posts-per-category bucket with the category color.
type CategoryCount struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// StatusCount is a posts-per-status bucket.
type StatusCount struct {
	Status PostStatus `json:"status"`
	Count  int        `json:"count"`
}

// DashboardRecent holds the five most recent posts and users.
type DashboardRecent struct {
	Posts []RecentPost `json:"posts"`
	Users []RecentUser `json:"users"`
}

// RecentPost is the trimmed post view shown on the dashboard.
type RecentPost struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Status     PostStatus `json:"status"`
	Views      int        `json:"views"`
	CreatedAt  time.Time  `json:"created_at"`
	AuthorName *string    `json:"author_name"`
}

// RecentUser is the trimmed user view shown on the dashboard.
type RecentUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
