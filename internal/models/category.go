// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is assigned when a category is created without one.
const DefaultCategoryColor = "#6366f1"

// Category groups posts. PostCount is the denormalized counter maintained
// on every post mutation; ActualCount is the live join count exposed by the
// list endpoint for sanity-checking against it.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Color       string    `json:"color"`
	PostCount   int       `json:"post_count"`
	ActualCount int       `json:"actual_count,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
