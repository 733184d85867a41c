package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

const tripColumns = `id, name, price, features, availability, itinerary, destination,
               vehicle_type, max_seats, status, start_date, end_date, start_time,
               image_cover, images, created_at`

// The status CASE mirrors domain.ComputePhase; running it inside the same
// statement as the read keeps recompute and read atomic.
const tripStatusCase = `CASE
            WHEN CURRENT_DATE < start_date THEN 'Not started'
            WHEN CURRENT_DATE BETWEEN start_date AND end_date THEN 'Ongoing'
            WHEN CURRENT_DATE > end_date THEN 'Reservation ended'
            ELSE 'Unknown status'
        END`

// TripRepository encapsulates trip persistence.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	RefreshAndGet(ctx context.Context, id int64) (*domain.Trip, error)
	RefreshAndList(ctx context.Context) ([]domain.Trip, error)
	SetImageCover(ctx context.Context, id int64, coverURL string) error
	SetImages(ctx context.Context, id int64, imageURLs []string) error
}

type tripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository instantiates repository.
func NewTripRepository(pool *pgxpool.Pool) TripRepository {
	return &tripRepository{pool: pool}
}

// Create inserts the trip. The caller supplies the initial status; every
// read path recomputes it anyway.
func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	const query = `
        INSERT INTO trips (name, price, features, availability, itinerary, destination,
            vehicle_type, max_seats, status, start_date, end_date, start_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		trip.Name,
		trip.Price,
		trip.Features,
		trip.Availability,
		trip.Itinerary,
		trip.Destination,
		trip.VehicleType,
		trip.MaxSeats,
		trip.Status,
		trip.StartDate,
		trip.EndDate,
		trip.StartTime,
	).Scan(&trip.ID, &trip.CreatedAt)
}

// RefreshAndGet recomputes the derived status and returns the fresh row in a
// single statement, so no caller can observe a stale status.
func (r *tripRepository) RefreshAndGet(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `
        UPDATE trips SET status = ` + tripStatusCase + `
        WHERE id = $1
        RETURNING ` + tripColumns

	var trip domain.Trip
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.Name,
		&trip.Price,
		&trip.Features,
		&trip.Availability,
		&trip.Itinerary,
		&trip.Destination,
		&trip.VehicleType,
		&trip.MaxSeats,
		&trip.Status,
		&trip.StartDate,
		&trip.EndDate,
		&trip.StartTime,
		&trip.ImageCover,
		&trip.Images,
		&trip.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &trip, nil
}

// RefreshAndList recomputes every status, then lists trips ordered by id.
func (r *tripRepository) RefreshAndList(ctx context.Context) ([]domain.Trip, error) {
	refresh := `UPDATE trips SET status = ` + tripStatusCase
	if _, err := r.pool.Exec(ctx, refresh); err != nil {
		return nil, err
	}

	query := `SELECT ` + tripColumns + ` FROM trips ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.Name,
			&trip.Price,
			&trip.Features,
			&trip.Availability,
			&trip.Itinerary,
			&trip.Destination,
			&trip.VehicleType,
			&trip.MaxSeats,
			&trip.Status,
			&trip.StartDate,
			&trip.EndDate,
			&trip.StartTime,
			&trip.ImageCover,
			&trip.Images,
			&trip.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, trip)
	}
	return result, rows.Err()
}

func (r *tripRepository) SetImageCover(ctx context.Context, id int64, coverURL string) error {
	const query = `UPDATE trips SET image_cover=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, coverURL, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tripRepository) SetImages(ctx context.Context, id int64, imageURLs []string) error {
	const query = `UPDATE trips SET images=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, imageURLs, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
