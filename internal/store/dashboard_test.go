// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"contenthub/internal/models"
)

func TestDashboardStatsEmpty(t *testing.T) {
	db := testDB(t)
	s := NewDashboardStore(db)

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.Stats.TotalPosts != 0 || stats.Stats.TotalUsers != 0 {
		t.Errorf("expected zero totals, got %+v", stats.Stats)
	}

	// Empty datasets come back as empty slices, never nil, so the JSON
	// payload always carries arrays.
	if stats.Charts.PostsOverTime == nil {
		t.Error("postsOverTime must be an empty slice, not nil")
	}
	if stats.Charts.PostsByCategory == nil {
		t.Error("postsByCategory must be an empty slice, not nil")
	}
	if stats.Charts.PostsByStatus == nil {
		t.Error("postsByStatus must be an empty slice, not nil")
	}
	if stats.Recent.Posts == nil || stats.Recent.Users == nil {
		t.Error("recent lists must be empty slices, not nil")
	}
}

func TestDashboardStatsTotals(t *testing.T) {
	db := testDB(t)
	s := NewDashboardStore(db)

	author := seedUser(t, db, "author@test.local", models.RoleAuthor)
	tech := seedCategory(t, db, "Tech", "tech")
	seedCategory(t, db, "Empty", "empty")

	seedPost(t, db, "Pub", "pub", models.PostStatusPublished, author.ID, &tech.ID)
	seedPost(t, db, "Draft", "draft", models.PostStatusDraft, author.ID, &tech.ID)
	p := seedPost(t, db, "Viewed", "viewed", models.PostStatusPublished, author.ID, nil)
	if _, err := db.Exec(`UPDATE posts SET views = 42 WHERE id = ?`, p.ID); err != nil {
		t.Fatalf("set views: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.Stats.TotalPosts != 3 {
		t.Errorf("totalPosts: got %d, want 3", stats.Stats.TotalPosts)
	}
	if stats.Stats.PublishedPosts != 2 {
		t.Errorf("publishedPosts: got %d, want 2", stats.Stats.PublishedPosts)
	}
	if stats.Stats.DraftPosts != 1 {
		t.Errorf("draftPosts: got %d, want 1", stats.Stats.DraftPosts)
	}
	if stats.Stats.TotalCategories != 2 {
		t.Errorf("totalCategories: got %d, want 2", stats.Stats.TotalCategories)
	}
	if stats.Stats.TotalUsers != 1 {
		t.Errorf("totalUsers: got %d, want 1", stats.Stats.TotalUsers)
	}
	if stats.Stats.TotalViews != 42 {
		t.Errorf("totalViews: got %d, want 42", stats.Stats.TotalViews)
	}

	// Empty categories stay out of the chart.
	if len(stats.Charts.PostsByCategory) != 1 {
		t.Fatalf("postsByCategory: got %d buckets, want 1", len(stats.Charts.PostsByCategory))
	}
	if stats.Charts.PostsByCategory[0].Name != "Tech" || stats.Charts.PostsByCategory[0].Count != 2 {
		t.Errorf("postsByCategory: got %+v", stats.Charts.PostsByCategory[0])
	}

	if len(stats.Charts.PostsByStatus) != 2 {
		t.Errorf("postsByStatus: got %d buckets, want 2", len(stats.Charts.PostsByStatus))
	}

	// All three posts were created just now, so they fall in one month bucket.
	if len(stats.Charts.PostsOverTime) != 1 || stats.Charts.PostsOverTime[0].Count != 3 {
		t.Errorf("postsOverTime: got %+v", stats.Charts.PostsOverTime)
	}
}

func TestDashboardStatsRecentLimit(t *testing.T) {
	db := testDB(t)
	s := NewDashboardStore(db)

	author := seedUser(t, db, "author@test.local", models.RoleAuthor)
	for i := 0; i < 7; i++ {
		seedPost(t, db, "Post", "post-"+string(rune('a'+i)), models.PostStatusDraft, author.ID, nil)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if len(stats.Recent.Posts) != 5 {
		t.Errorf("recent posts: got %d, want 5", len(stats.Recent.Posts))
	}
	if len(stats.Recent.Users) != 1 {
		t.Errorf("recent users: got %d, want 1", len(stats.Recent.Users))
	}
	if stats.Recent.Posts[0].AuthorName == nil {
		t.Error("expected author_name on recent posts")
	}
}
