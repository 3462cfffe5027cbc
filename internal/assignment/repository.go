package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/pulselink-core/internal/domain"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
	"github.com/nerrad567/pulselink-core/internal/validate"
)

// Repository defines the interface for assignment persistence operations.
type Repository interface {
	Create(ctx context.Context, in NewAssignment) (*Assignment, error)
	Exists(ctx context.Context, userID, deviceID int64) (bool, error)
	Get(ctx context.Context, userID, deviceID int64) (*Assignment, error)
	ListByUser(ctx context.Context, userID int64) ([]DeviceLink, error)
	ListByDevice(ctx context.Context, deviceID int64) ([]UserLink, error)
	List(ctx context.Context, page domain.Page) ([]Assignment, error)
	Delete(ctx context.Context, userID, deviceID int64) (domain.Result, error)
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db      *sql.DB
	users   domain.Lookup
	devices domain.Lookup
}

// NewSQLRepository creates an assignment repository that checks both
// ends of the link through users and devices.
func NewSQLRepository(db *sql.DB, users, devices domain.Lookup) *SQLRepository {
	return &SQLRepository{db: db, users: users, devices: devices}
}

// Create checks that the user and the device exist, inserts the link
// and reads it back for assigned_at. An existing pair is domain.ErrDuplicate.
func (r *SQLRepository) Create(ctx context.Context, in NewAssignment) (*Assignment, error) {
	if err := validate.PositiveID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := validate.PositiveID("device_id", in.DeviceID); err != nil {
		return nil, err
	}
	if err := checkExists(ctx, r.users, in.UserID, "user_id", "user"); err != nil {
		return nil, err
	}
	if err := checkExists(ctx, r.devices, in.DeviceID, "device_id", "device"); err != nil {
		return nil, err
	}

	var err error
	if in.AssignedAt != nil {
		_, err = r.db.ExecContext(ctx,
			"INSERT INTO user_device_assignments (user_id, device_id, assigned_at) VALUES (?, ?, ?)",
			in.UserID, in.DeviceID, database.FormatTime(*in.AssignedAt))
	} else {
		_, err = r.db.ExecContext(ctx,
			"INSERT INTO user_device_assignments (user_id, device_id) VALUES (?, ?)",
			in.UserID, in.DeviceID)
	}
	if err != nil {
		return nil, database.NormalizeError("inserting assignment", err)
	}

	created, err := r.Get(ctx, in.UserID, in.DeviceID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: assignment %d/%d vanished after insert", domain.ErrStorage, in.UserID, in.DeviceID)
	}
	return created, nil
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

// Exists reports whether the user-device pair is linked.
func (r *SQLRepository) Exists(ctx context.Context, userID, deviceID int64) (bool, error) {
	if userID <= 0 || deviceID <= 0 {
		return false, nil
	}
	return database.RowExists(ctx, r.db,
		"SELECT 1 FROM user_device_assignments WHERE user_id = ? AND device_id = ?",
		userID, deviceID)
}

// Get returns the link or nil when the pair is not linked.
func (r *SQLRepository) Get(ctx context.Context, userID, deviceID int64) (*Assignment, error) {
	if userID <= 0 || deviceID <= 0 {
		return nil, nil
	}
	var (
		a  = Assignment{UserID: userID, DeviceID: deviceID}
		ts database.Timestamp
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT assigned_at FROM user_device_assignments WHERE user_id = ? AND device_id = ?",
		userID, deviceID).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NormalizeError("querying assignment", err)
	}
	a.AssignedAt = ts.Time
	return &a, nil
}

// ListByUser returns the devices assigned to userID, oldest first.
func (r *SQLRepository) ListByUser(ctx context.Context, userID int64) ([]DeviceLink, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT device_id, assigned_at FROM user_device_assignments WHERE user_id = ? ORDER BY assigned_at ASC, device_id ASC",
		userID)
	if err != nil {
		return nil, database.NormalizeError("listing assignments by user", err)
	}
	defer rows.Close()

	links := make([]DeviceLink, 0)
	for rows.Next() {
		var (
			l  DeviceLink
			ts database.Timestamp
		)
		if err := rows.Scan(&l.DeviceID, &ts); err != nil {
			return nil, database.NormalizeError("scanning assignment", err)
		}
		l.AssignedAt = ts.Time
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NormalizeError("iterating assignments", err)
	}
	return links, nil
}

// ListByDevice returns the users deviceID is assigned to, oldest first.
func (r *SQLRepository) ListByDevice(ctx context.Context, deviceID int64) ([]UserLink, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id, assigned_at FROM user_device_assignments WHERE device_id = ? ORDER BY assigned_at ASC, user_id ASC",
		deviceID)
	if err != nil {
		return nil, database.NormalizeError("listing assignments by device", err)
	}
	defer rows.Close()

	links := make([]UserLink, 0)
	for rows.Next() {
		var (
			l  UserLink
			ts database.Timestamp
		)
		if err := rows.Scan(&l.UserID, &ts); err != nil {
			return nil, database.NormalizeError("scanning assignment", err)
		}
		l.AssignedAt = ts.Time
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NormalizeError("iterating assignments", err)
	}
	return links, nil
}

// List returns a page of assignments ordered by (user_id, device_id).
func (r *SQLRepository) List(ctx context.Context, page domain.Page) ([]Assignment, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id, device_id, assigned_at FROM user_device_assignments ORDER BY user_id ASC, device_id ASC LIMIT ? OFFSET ?",
		page.Limit, page.Offset)
	if err != nil {
		return nil, database.NormalizeError("listing assignments", err)
	}
	defer rows.Close()

	out := make([]Assignment, 0)
	for rows.Next() {
		var (
			a  Assignment
			ts database.Timestamp
		)
		if err := rows.Scan(&a.UserID, &a.DeviceID, &ts); err != nil {
			return nil, database.NormalizeError("scanning assignment", err)
		}
		a.AssignedAt = ts.Time
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NormalizeError("iterating assignments", err)
	}
	return out, nil
}

// Delete removes the link between userID and deviceID.
func (r *SQLRepository) Delete(ctx context.Context, userID, deviceID int64) (domain.Result, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM user_device_assignments WHERE user_id = ? AND device_id = ?",
		userID, deviceID)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("deleting assignment %d/%d", userID, deviceID), err)
	}
	return database.Affected(res)
}
