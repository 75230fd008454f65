// Package store provides database access methods for all ContentHub
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods; every statement is parameterized, and mutations that touch more
// than one row run inside an explicit transaction.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"contenthub/internal/models"
)

// bcryptCost is the work factor for password hashing.
const bcryptCost = 12

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// userColumns lists the columns selected in user queries. The correlated
// subquery exposes how many posts the user has authored.
const userColumns = `id, name, email, password, role, avatar, bio, is_active,
	(SELECT COUNT(*) FROM posts WHERE posts.author_id = users.id) AS post_count,
	created_at, updated_at`

// scanUser scans a user row from the result set.
func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Avatar, &u.Bio, &u.IsActive, &u.PostCount,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves a user by their email address. Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// List returns users newest first. search filters on name or email
// substring; role filters on an exact role ("" or "all" disables it).
func (s *UserStore) List(search, role string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	var args []any

	if search != "" {
		query += ` AND (name LIKE ? OR email LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if role != "" && role != "all" {
		query += ` AND role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password and returns it.
func (s *UserStore) Create(name, email, password string, role models.Role, bio *string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id := uuid.New()
	_, err = s.db.Exec(`
		INSERT INTO users (id, name, email, password, role, bio)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, email, string(hash), role, bio)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.FindByID(id)
}

// Update writes the mutable profile fields of an existing user.
func (s *UserStore) Update(u *models.User) error {
	_, err := s.db.Exec(`
		UPDATE users SET
			name = ?, email = ?, role = ?, bio = ?, is_active = ?,
			updated_at = datetime('now')
		WHERE id = ?
	`, u.Name, u.Email, u.Role, u.Bio, u.IsActive, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdatePassword rehashes and stores a new password for the user.
func (s *UserStore) UpdatePassword(id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE users SET password = ?, updated_at = datetime('now') WHERE id = ?
	`, string(hash), id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateProfile applies the caller's own name/bio changes. Nil fields are
// left untouched.
func (s *UserStore) UpdateProfile(id uuid.UUID, name, bio *string) error {
	_, err := s.db.Exec(`
		UPDATE users SET
			name = COALESCE(?, name),
			bio = COALESCE(?, bio),
			updated_at = datetime('now')
		WHERE id = ?
	`, name, bio, id)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// EmailTaken reports whether another user (excluding the given id) already
// uses the email address.
func (s *UserStore) EmailTaken(email string, exclude uuid.UUID) (bool, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? AND id != ?
	`, email, exclude).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check email taken: %w", err)
	}
	return n > 0, nil
}

// Delete removes a user by ID. Owned posts and uploaded media rows are
// removed by the ON DELETE CASCADE referential actions.
func (s *UserStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash
// using bcrypt's constant-time comparison.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
