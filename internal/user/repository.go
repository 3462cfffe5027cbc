package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/pulselink-core/internal/domain"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
)

const userColumns = "id, subscriber_id, email, role_id, username, password_hash"

// Repository defines the interface for user persistence operations.
type Repository interface {
	Create(ctx context.Context, in NewUser) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page domain.Page) ([]User, error)
	Update(ctx context.Context, id int64, p Patch) (domain.Result, error)
	Delete(ctx context.Context, id int64) (domain.Result, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db          *sql.DB
	subscribers domain.Lookup
	roles       domain.Lookup
}

// NewSQLRepository creates a user repository that checks references
// through the given subscriber and role lookups.
func NewSQLRepository(db *sql.DB, subscribers, roles domain.Lookup) *SQLRepository {
	return &SQLRepository{db: db, subscribers: subscribers, roles: roles}
}

// Create validates the fields, checks that the subscriber and role
// exist, then inserts the user.
//
// The reference checks and the insert are separate statements. A
// reference deleted in between is caught by the store's foreign key
// and surfaces as domain.ErrStorage.
func (r *SQLRepository) Create(ctx context.Context, in NewUser) (*User, error) {
	if err := validateNew(in); err != nil {
		return nil, err
	}
	if err := r.checkReferences(ctx, &in.SubscriberID, &in.RoleID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (subscriber_id, email, role_id, username, password_hash) VALUES (?, ?, ?, ?, ?)",
		in.SubscriberID, in.Email, in.RoleID, in.Username, nullString(in.PasswordHash))
	if err != nil {
		return nil, database.NormalizeError("inserting user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, database.NormalizeError("reading user id", err)
	}

	return &User{
		ID:           id,
		SubscriberID: in.SubscriberID,
		Email:        in.Email,
		RoleID:       in.RoleID,
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
	}, nil
}

func (r *SQLRepository) checkReferences(ctx context.Context, subscriberID, roleID *int64) error {
	if subscriberID != nil {
		if err := checkExists(ctx, r.subscribers, *subscriberID, "subscriber_id", "subscriber"); err != nil {
			return err
		}
	}
	if roleID != nil {
		if err := checkExists(ctx, r.roles, *roleID, "role_id", "role"); err != nil {
			return err
		}
	}
	return nil
}

func checkExists(ctx context.Context, lookup domain.Lookup, id int64, field, entity string) error {
	ok, err := lookup.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking %s: %w", field, err)
	}
	if !ok {
		return domain.NewReferenceError(field, entity)
	}
	return nil
}

// GetByID returns the user or nil when it does not exist.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// GetByUsername returns the user with username or nil.
func (r *SQLRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	if username == "" {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
}

// GetByEmail returns the user with email or nil.
func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NormalizeError("querying user", err)
	}
	return u, nil
}

// List returns a page of users ordered by id.
func (r *SQLRepository) List(ctx context.Context, page domain.Page) ([]User, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id ASC LIMIT ? OFFSET ?",
		page.Limit, page.Offset)
	if err != nil {
		return nil, database.NormalizeError("listing users", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, database.NormalizeError("scanning user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NormalizeError("iterating users", err)
	}
	return users, nil
}

// Update applies the supplied fields. Supplied references are checked
// the same way Create checks them.
func (r *SQLRepository) Update(ctx context.Context, id int64, p Patch) (domain.Result, error) {
	if p.empty() {
		return domain.Result{}, domain.ErrNoFieldsProvided
	}
	if err := validatePatch(p); err != nil {
		return domain.Result{}, err
	}
	if err := r.checkReferences(ctx, p.SubscriberID, p.RoleID); err != nil {
		return domain.Result{}, err
	}

	var b database.UpdateBuilder
	if p.SubscriberID != nil {
		b.Set("subscriber_id", *p.SubscriberID)
	}
	if p.Email != nil {
		b.Set("email", *p.Email)
	}
	if p.RoleID != nil {
		b.Set("role_id", *p.RoleID)
	}
	if p.Username != nil {
		b.Set("username", *p.Username)
	}
	if p.PasswordHash != nil {
		b.Set("password_hash", nullString(*p.PasswordHash))
	}

	query, args := b.Build("users", "id = ?", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("updating user %d", id), err)
	}
	return database.Affected(res)
}

// Delete removes a user. Assignments still referencing it make the
// store refuse.
func (r *SQLRepository) Delete(ctx context.Context, id int64) (domain.Result, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("deleting user %d", id), err)
	}
	return database.Affected(res)
}

// Exists reports whether a user with id exists.
func (r *SQLRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return database.RowExists(ctx, r.db, "SELECT 1 FROM users WHERE id = ?", id)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*User, error) {
	var (
		u    User
		hash sql.NullString
	)
	if err := row.Scan(&u.ID, &u.SubscriberID, &u.Email, &u.RoleID, &u.Username, &hash); err != nil {
		return nil, err
	}
	u.PasswordHash = hash.String
	return &u, nil
}
