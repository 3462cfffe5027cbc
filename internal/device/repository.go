package device

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/pulselink-core/internal/domain"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
)

const deviceColumns = "id, subscriber_id, mac_id, model_name"

// Repository defines the interface for device persistence operations.
type Repository interface {
	Create(ctx context.Context, in NewDevice) (*Device, error)
	GetByID(ctx context.Context, id int64) (*Device, error)
	GetByMac(ctx context.Context, mac string) (*Device, error)
	List(ctx context.Context, page domain.Page) ([]Device, error)
	Update(ctx context.Context, id int64, p Patch) (domain.Result, error)
	Delete(ctx context.Context, id int64) (domain.Result, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db          *sql.DB
	subscribers domain.Lookup
}

// NewSQLRepository creates a device repository that checks the owning
// subscriber through subscribers.
func NewSQLRepository(db *sql.DB, subscribers domain.Lookup) *SQLRepository {
	return &SQLRepository{db: db, subscribers: subscribers}
}

// Create validates the fields, checks the subscriber exists and inserts
// the device.
func (r *SQLRepository) Create(ctx context.Context, in NewDevice) (*Device, error) {
	if err := validateNew(in); err != nil {
		return nil, err
	}
	if err := r.checkSubscriber(ctx, in.SubscriberID); err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO devices (subscriber_id, mac_id, model_name) VALUES (?, ?, ?)",
		in.SubscriberID, in.MacID, nullString(in.ModelName))
	if err != nil {
		return nil, database.NormalizeError("inserting device", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, database.NormalizeError("reading device id", err)
	}

	return &Device{
		ID:           id,
		SubscriberID: in.SubscriberID,
		MacID:        in.MacID,
		ModelName:    in.ModelName,
	}, nil
}

func (r *SQLRepository) checkSubscriber(ctx context.Context, id int64) error {
	ok, err := r.subscribers.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking subscriber_id: %w", err)
	}
	if !ok {
		return domain.NewReferenceError("subscriber_id", "subscriber")
	}
	return nil
}

// GetByID returns the device or nil when it does not exist.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*Device, error) {
	if id <= 0 {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+deviceColumns+" FROM devices WHERE id = ?", id)
}

// GetByMac returns the lowest-id device with mac, or nil.
func (r *SQLRepository) GetByMac(ctx context.Context, mac string) (*Device, error) {
	if mac == "" {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+deviceColumns+" FROM devices WHERE mac_id = ? ORDER BY id ASC LIMIT 1", mac)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*Device, error) {
	d, err := scanDevice(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NormalizeError("querying device", err)
	}
	return d, nil
}

// List returns a page of devices ordered by id.
func (r *SQLRepository) List(ctx context.Context, page domain.Page) ([]Device, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+deviceColumns+" FROM devices ORDER BY id ASC LIMIT ? OFFSET ?",
		page.Limit, page.Offset)
	if err != nil {
		return nil, database.NormalizeError("listing devices", err)
	}
	defer rows.Close()

	devices := make([]Device, 0)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, database.NormalizeError("scanning device", err)
		}
		devices = append(devices, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NormalizeError("iterating devices", err)
	}
	return devices, nil
}

// Update applies the supplied fields. A supplied subscriber_id is
// checked the same way Create checks it.
func (r *SQLRepository) Update(ctx context.Context, id int64, p Patch) (domain.Result, error) {
	if p.empty() {
		return domain.Result{}, domain.ErrNoFieldsProvided
	}
	if err := validatePatch(p); err != nil {
		return domain.Result{}, err
	}
	if p.SubscriberID != nil {
		if err := r.checkSubscriber(ctx, *p.SubscriberID); err != nil {
			return domain.Result{}, err
		}
	}

	var b database.UpdateBuilder
	if p.SubscriberID != nil {
		b.Set("subscriber_id", *p.SubscriberID)
	}
	if p.MacID != nil {
		b.Set("mac_id", *p.MacID)
	}
	if p.ModelName != nil {
		b.Set("model_name", *p.ModelName)
	}

	query, args := b.Build("devices", "id = ?", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("updating device %d", id), err)
	}
	return database.Affected(res)
}

// Delete removes a device. Assignments still referencing it make the
// store refuse.
func (r *SQLRepository) Delete(ctx context.Context, id int64) (domain.Result, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM devices WHERE id = ?", id)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("deleting device %d", id), err)
	}
	return database.Affected(res)
}

// Exists reports whether a device with id exists.
func (r *SQLRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return database.RowExists(ctx, r.db, "SELECT 1 FROM devices WHERE id = ?", id)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDevice(row scanner) (*Device, error) {
	var (
		d     Device
		model sql.NullString
	)
	if err := row.Scan(&d.ID, &d.SubscriberID, &d.MacID, &model); err != nil {
		return nil, err
	}
	if model.Valid {
		d.ModelName = &model.String
	}
	return &d, nil
}
