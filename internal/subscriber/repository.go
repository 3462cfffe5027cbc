package subscriber

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/pulselink-core/internal/domain"
	"github.com/nerrad567/pulselink-core/internal/geo"
	"github.com/nerrad567/pulselink-core/internal/infrastructure/database"
)

// Repository defines the interface for subscriber persistence operations.
type Repository interface {
	Create(ctx context.Context, in NewSubscriber) (*Subscriber, error)
	GetByID(ctx context.Context, id int64) (*Subscriber, error)
	GetByPhone(ctx context.Context, phone string) (*Subscriber, error)
	List(ctx context.Context, page domain.Page) ([]Subscriber, error)
	Update(ctx context.Context, id int64, p Patch) (domain.Result, error)
	Delete(ctx context.Context, id int64) (domain.Result, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// SQLRepository implements Repository on database/sql.
type SQLRepository struct {
	db      *sql.DB
	dialect database.Dialect
	columns string
}

// NewSQLRepository creates a subscriber repository. The dialect decides
// how the geo point column is written and read.
func NewSQLRepository(db *sql.DB, dialect database.Dialect) *SQLRepository {
	return &SQLRepository{
		db:      db,
		dialect: dialect,
		columns: "id, name, plan_type, created_at, address, phone_number, " +
			dialect.PointColumn("geo_location"),
	}
}

// Create validates and inserts a subscriber, then reads it back for
// the server-assigned id and created_at.
func (r *SQLRepository) Create(ctx context.Context, in NewSubscriber) (*Subscriber, error) {
	if err := validateNew(&in); err != nil {
		return nil, err
	}

	query := "INSERT INTO subscribers (name, plan_type, address, phone_number, geo_location) VALUES (?, ?, ?, ?, " +
		r.dialect.PointParam() + ")"
	res, err := r.db.ExecContext(ctx, query,
		in.Name, string(in.PlanType), in.Address, in.PhoneNumber, pointValue(in.GeoLocation))
	if err != nil {
		return nil, database.NormalizeError("inserting subscriber", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, database.NormalizeError("reading subscriber id", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: subscriber %d vanished after insert", domain.ErrStorage, id)
	}
	return created, nil
}

// GetByID returns the subscriber or nil when it does not exist.
func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*Subscriber, error) {
	if id <= 0 {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+r.columns+" FROM subscribers WHERE id = ?", id)
}

// GetByPhone returns the subscriber with phone or nil.
func (r *SQLRepository) GetByPhone(ctx context.Context, phone string) (*Subscriber, error) {
	if phone == "" {
		return nil, nil
	}
	return r.getOne(ctx, "SELECT "+r.columns+" FROM subscribers WHERE phone_number = ?", phone)
}

func (r *SQLRepository) getOne(ctx context.Context, query string, arg any) (*Subscriber, error) {
	s, err := scanSubscriber(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, database.NormalizeError("querying subscriber", err)
	}
	return s, nil
}

// List returns a page of subscribers ordered by id.
func (r *SQLRepository) List(ctx context.Context, page domain.Page) ([]Subscriber, error) {
	page = page.Normalize()
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+r.columns+" FROM subscribers ORDER BY id ASC LIMIT ? OFFSET ?",
		page.Limit, page.Offset)
	if err != nil {
		return nil, database.NormalizeError("listing subscribers", err)
	}
	defer rows.Close()

	subs := make([]Subscriber, 0)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, database.NormalizeError("scanning subscriber", err)
		}
		subs = append(subs, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NormalizeError("iterating subscribers", err)
	}
	return subs, nil
}

// Update applies the supplied fields.
func (r *SQLRepository) Update(ctx context.Context, id int64, p Patch) (domain.Result, error) {
	if p.empty() {
		return domain.Result{}, domain.ErrNoFieldsProvided
	}
	if err := validatePatch(p); err != nil {
		return domain.Result{}, err
	}

	var b database.UpdateBuilder
	if p.Name != nil {
		b.Set("name", *p.Name)
	}
	if p.PlanType != nil {
		b.Set("plan_type", string(*p.PlanType))
	}
	if p.Address != nil {
		b.Set("address", *p.Address)
	}
	if p.PhoneNumber != nil {
		b.Set("phone_number", *p.PhoneNumber)
	}
	switch {
	case p.ClearGeoLocation:
		b.Set("geo_location", nil)
	case p.GeoLocation != nil:
		b.SetExpr("geo_location", r.dialect.PointParam(), pointValue(p.GeoLocation))
	}

	query, args := b.Build("subscribers", "id = ?", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("updating subscriber %d", id), err)
	}
	return database.Affected(res)
}

// Delete removes a subscriber. Users or devices still referencing it
// make the store refuse.
func (r *SQLRepository) Delete(ctx context.Context, id int64) (domain.Result, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM subscribers WHERE id = ?", id)
	if err != nil {
		return domain.Result{}, database.NormalizeError(fmt.Sprintf("deleting subscriber %d", id), err)
	}
	return database.Affected(res)
}

// Exists reports whether a subscriber with id exists.
func (r *SQLRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return database.RowExists(ctx, r.db, "SELECT 1 FROM subscribers WHERE id = ?", id)
}

// pointValue encodes p for the geo_location parameter; NULL when p
// is nil or not encodable.
func pointValue(p *geo.Point) sql.NullString {
	wkt, ok := geo.Encode(p)
	return sql.NullString{String: wkt, Valid: ok}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubscriber(row scanner) (*Subscriber, error) {
	var (
		s         Subscriber
		plan      string
		createdAt database.Timestamp
		point     sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &plan, &createdAt, &s.Address, &s.PhoneNumber, &point); err != nil {
		return nil, err
	}
	s.PlanType = Plan(plan)
	s.CreatedAt = createdAt.Time
	if point.Valid {
		s.GeoLocation, _ = geo.Decode(point.String)
	}
	return &s, nil
}
