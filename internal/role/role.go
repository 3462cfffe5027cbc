// Package role manages the roles users are assigned to.
package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/pulselink-core/internal/domain"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
	"github.com/nerrad567/pulselink-core/internal/validate"
)

// maxNameLength bounds role_name.
const maxNameLength = 50

// Role is a named permission group referenced by users.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"role_name"`
}

// NewRole holds the fields for Create.
type NewRole struct {
	Name string `json:"role_name"`
}

// Patch holds the fields for Update. Nil fields are left unchanged.
type Patch struct {
	Name *string `json:"role_name"`
}

// Repository defines the interface for role persistence operations.
type Repository interface {
	Create(ctx context.Context, in NewRole) (*Role, error)
	GetByID(ctx context.Context, id int64) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context, page domain.Page) ([]Role, error)
	Update(ctx context.Context, id int64, p Patch) (domain.Result, error)
	Delete(ctx context.Context, id int64) (domain.Result, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository creates a role repository.
func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func validateName(name string) error {
	return validate.Check("role_name", name, validate.Required, validate.MaxLen(maxNameLength))
}

// Create validates and inserts a role.
func (r *SQLRepository) Create(ctx context.Context, in NewRole) (*Role, error) {
	if err := validateName(in.Name); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, "INSERT INTO roles (role_name) VALUES (?)", in.Name)
	if err != nil {
		return nil, database.NormalizeError("inserting role", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, database.NormalizeError("reading role id", err)
	}
	return &Role{ID: id, Name: in.Name}, nil
}

// GetByID returns the role or nil when it does not exist.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*Role, error) {
	if id <= 0 {
		return nil, nil
	}
	return r.getRole(ctx, "SELECT id, role_name FROM roles WHERE id = ?", id)
}

// GetByName returns the role or nil when it does not exist.
func (r *SQLRepository) GetByName(ctx context.Context, name string) (*Role, error) {
	if name == "" {
		return nil, nil
	}
	return r.getRole(ctx, "SELECT id, role_name FROM roles WHERE role_name = ?", name)
}

func (r *SQLRepository) getRole(ctx context.Context, query string, arg any) (*Role, error) {
	var role Role
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NormalizeError("querying role", err)
	}
	return &role, nil
}

// List returns a page of roles ordered by id.
func (r *SQLRepository) List(ctx context.Context, page domain.Page) ([]Role, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, role_name FROM roles ORDER BY id ASC LIMIT ? OFFSET ?",
		page.Limit, page.Offset)
	if err != nil {
		return nil, database.NormalizeError("listing roles", err)
	}
	defer rows.Close()

	roles := make([]Role, 0)
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, database.NormalizeError("scanning role", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NormalizeError("iterating roles", err)
	}
	return roles, nil
}

// Update renames a role.
func (r *SQLRepository) Update(ctx context.Context, id int64, p Patch) (domain.Result, error) {
	if p.Name == nil {
		return domain.Result{}, domain.ErrNoFieldsProvided
	}
	if err := validateName(*p.Name); err != nil {
		return domain.Result{}, err
	}

	res, err := r.db.ExecContext(ctx, "UPDATE roles SET role_name = ? WHERE id = ?", *p.Name, id)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("updating role %d", id), err)
	}
	return database.Affected(res)
}

// Delete removes a role. Users still referencing it make the store refuse.
func (r *SQLRepository) Delete(ctx context.Context, id int64) (domain.Result, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM roles WHERE id = ?", id)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("deleting role %d", id), err)
	}
	return database.Affected(res)
}

// Exists reports whether a role with id exists.
func (r *SQLRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return database.RowExists(ctx, r.db, "SELECT 1 FROM roles WHERE id = ?", id)
}
