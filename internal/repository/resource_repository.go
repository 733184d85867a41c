package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResourceKind enumerates the tables the generic resource handler may touch.
// Table and column names are fixed per kind; nothing caller-supplied ever
// reaches the SQL text.
type ResourceKind int

const (
	ResourceUsers ResourceKind = iota
	ResourceTrips
	ResourceCustomizedTrips
	ResourceReceipts
)

var (
	// ErrProtectedField rejects updates to credential or role fields through
	// the generic path; those have dedicated flows.
	ErrProtectedField = errors.New("field cannot be updated through this endpoint")
	// ErrUnknownField rejects updates naming a column outside the allow-list.
	ErrUnknownField = errors.New("unknown field")
	// ErrNoFields rejects update requests carrying no recognized fields.
	ErrNoFields = errors.New("no updatable fields provided")
)

var protectedFields = map[string]struct{}{
	"password":         {},
	"password_confirm": {},
	"role":             {},
}

type resourceSpec struct {
	table     string
	selects   []string
	updatable map[string]struct{}
}

var resourceSpecs = map[ResourceKind]resourceSpec{
	ResourceUsers: {
		table: "users",
		selects: []string{
			"id", "first_name", "last_name", "email", "role", "active",
			"last_logged_in", "trip_id", "created_at",
		},
		updatable: set("first_name", "last_name", "email", "active", "trip_id"),
	},
	ResourceTrips: {
		table: "trips",
		selects: []string{
			"id", "name", "price", "features", "availability", "itinerary",
			"destination", "vehicle_type", "max_seats", "status", "start_date",
			"end_date", "start_time", "image_cover", "images", "created_at",
		},
		updatable: set("name", "price", "features", "availability", "itinerary",
			"destination", "vehicle_type", "max_seats", "start_date", "end_date",
			"start_time"),
	},
	ResourceCustomizedTrips: {
		table: "customized_trips",
		selects: []string{
			"id", "user_id", "destination", "itinerary", "number_of_persons",
			"comment", "price", "status", "admin_response", "user_response",
			"trip_payment_status", "start_date", "end_date", "created_at",
		},
		updatable: set("destination", "itinerary", "number_of_persons", "comment",
			"start_date", "end_date"),
	},
	ResourceReceipts: {
		table: "payment_receipt",
		selects: []string{
			"id", "user_id", "trip_id", "cus_trip_id", "image", "trip_type", "created_at",
		},
		updatable: set(),
	},
}

func set(names ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return m
}

// Name returns the resource's table name for messages and logging.
func (k ResourceKind) Name() string {
	return resourceSpecs[k].table
}

// ResourceRepository provides uniform list/get/update/delete over a fixed
// resource kind.
type ResourceRepository interface {
	List(ctx context.Context) ([]map[string]any, error)
	Get(ctx context.Context, id int64) (map[string]any, error)
	Update(ctx context.Context, id int64, fields map[string]any) (map[string]any, error)
	Delete(ctx context.Context, id int64) error
}

type resourceRepository struct {
	pool *pgxpool.Pool
	spec resourceSpec
}

// NewResourceRepository builds a repository bound to one resource kind.
func NewResourceRepository(pool *pgxpool.Pool, kind ResourceKind) ResourceRepository {
	return &resourceRepository{pool: pool, spec: resourceSpecs[kind]}
}

func (r *resourceRepository) List(ctx context.Context) ([]map[string]any, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id ASC",
		strings.Join(r.spec.selects, ", "), r.spec.table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []map[string]any{}
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *resourceRepository) Get(ctx context.Context, id int64) (map[string]any, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id=$1",
		strings.Join(r.spec.selects, ", "), r.spec.table)

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	return r.scanRecord(rows)
}

// Update merges only the provided fields; omitted columns keep their prior
// values. Field names are validated against the kind's allow-list before any
// SQL is built.
func (r *resourceRepository) Update(ctx context.Context, id int64, fields map[string]any) (map[string]any, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, protected := protectedFields[name]; protected {
			return nil, fmt.Errorf("%q: %w", name, ErrProtectedField)
		}
		if _, ok := r.spec.updatable[name]; !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownField)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, ErrNoFields
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		assignments = append(assignments, fmt.Sprintf("%s=$%d", name, i+1))
		args = append(args, fields[name])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id=$%d RETURNING %s",
		r.spec.table, strings.Join(assignments, ", "), len(args),
		strings.Join(r.spec.selects, ", "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}
	return r.scanRecord(rows)
}

func (r *resourceRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id=$1", r.spec.table)
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *resourceRepository) scanRecord(rows pgx.Rows) (map[string]any, error) {
	values, err := rows.Values()
	if err != nil {
		return nil, err
	}
	record := make(map[string]any, len(r.spec.selects))
	for i, name := range r.spec.selects {
		record[name] = values[i]
	}
	return record, nil
}
