package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

const cusTripColumns = `id, user_id, destination, itinerary, number_of_persons, comment, price,
               status, admin_response, user_response, trip_payment_status,
               start_date, end_date, created_at`

const cusTripStatusCase = `CASE
            WHEN CURRENT_DATE < start_date THEN 'Not started'
            WHEN CURRENT_DATE BETWEEN start_date AND end_date THEN 'Ongoing'
            WHEN CURRENT_DATE > end_date THEN 'Trip Ended'
            ELSE 'Unknown status'
        END`

// CustomizedTripRepository encapsulates bespoke trip request persistence.
type CustomizedTripRepository interface {
	Create(ctx context.Context, trip *domain.CustomizedTrip) error
	RefreshAndGet(ctx context.Context, id int64) (*domain.CustomizedTrip, error)
	GetWithRequester(ctx context.Context, id int64) (*domain.CustomizedTripWithRequester, error)
	RefreshAndListPending(ctx context.Context) ([]domain.CustomizedTripWithRequester, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.CustomizedTrip, error)
	SetAdminResponse(ctx context.Context, id int64, price float64) (bool, error)
	Accept(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	AddReceiptAndMarkPaid(ctx context.Context, receipt *domain.PaymentReceipt) (bool, error)
}

type customizedTripRepository struct {
	pool *pgxpool.Pool
}

// NewCustomizedTripRepository instantiates repository.
func NewCustomizedTripRepository(pool *pgxpool.Pool) CustomizedTripRepository {
	return &customizedTripRepository{pool: pool}
}

// Create inserts a request only when the user has no other request still
// awaiting a price. The guard runs in the INSERT itself and a partial unique
// index backs it up, so concurrent creates cannot both slip through.
// pgx.ErrNoRows signals the guard fired.
func (r *customizedTripRepository) Create(ctx context.Context, trip *domain.CustomizedTrip) error {
	const query = `
        INSERT INTO customized_trips
            (user_id, destination, itinerary, number_of_persons, comment, status, start_date, end_date)
        SELECT $1, $2, $3, $4, $5, $6, $7, $8
        WHERE NOT EXISTS (
            SELECT 1 FROM customized_trips
            WHERE user_id = $1 AND admin_response = 'Pending'
        )
        RETURNING id, admin_response, user_response, trip_payment_status, created_at`

	return r.pool.QueryRow(ctx, query,
		trip.UserID,
		trip.Destination,
		trip.Itinerary,
		trip.NumberOfPersons,
		trip.Comment,
		trip.Status,
		trip.StartDate,
		trip.EndDate,
	).Scan(&trip.ID, &trip.AdminResponse, &trip.UserResponse,
		&trip.PaymentStatus, &trip.CreatedAt)
}

// RefreshAndGet recomputes the derived status atomically with the read.
func (r *customizedTripRepository) RefreshAndGet(ctx context.Context, id int64) (*domain.CustomizedTrip, error) {
	query := `
        UPDATE customized_trips SET status = ` + cusTripStatusCase + `
        WHERE id = $1
        RETURNING ` + cusTripColumns

	var trip domain.CustomizedTrip
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.UserID,
		&trip.Destination,
		&trip.Itinerary,
		&trip.NumberOfPersons,
		&trip.Comment,
		&trip.Price,
		&trip.Status,
		&trip.AdminResponse,
		&trip.UserResponse,
		&trip.PaymentStatus,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *customizedTripRepository) GetWithRequester(ctx context.Context, id int64) (*domain.CustomizedTripWithRequester, error) {
	query := `
        SELECT ct.id, ct.user_id, ct.destination, ct.itinerary, ct.number_of_persons,
               ct.comment, ct.price, ct.status, ct.admin_response, ct.user_response,
               ct.trip_payment_status, ct.start_date, ct.end_date, ct.created_at,
               u.first_name, u.last_name, u.email
        FROM customized_trips ct
        JOIN users u ON ct.user_id = u.id
        WHERE ct.id = $1`

	var row domain.CustomizedTripWithRequester
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.UserID,
		&row.Destination,
		&row.Itinerary,
		&row.NumberOfPersons,
		&row.Comment,
		&row.Price,
		&row.Status,
		&row.AdminResponse,
		&row.UserResponse,
		&row.PaymentStatus,
		&row.StartDate,
		&row.EndDate,
		&row.CreatedAt,
		&row.Requester.FirstName,
		&row.Requester.LastName,
		&row.Requester.Email,
	); err != nil {
		return nil, err
	}
	row.Requester.UserID = row.UserID
	return &row, nil
}

// RefreshAndListPending recomputes every status, then lists requests whose
// trips have not yet started, joined with the requesting user.
func (r *customizedTripRepository) RefreshAndListPending(ctx context.Context) ([]domain.CustomizedTripWithRequester, error) {
	refresh := `UPDATE customized_trips SET status = ` + cusTripStatusCase
	if _, err := r.pool.Exec(ctx, refresh); err != nil {
		return nil, err
	}

	query := `
        SELECT ct.id, ct.user_id, ct.destination, ct.itinerary, ct.number_of_persons,
               ct.comment, ct.price, ct.status, ct.admin_response, ct.user_response,
               ct.trip_payment_status, ct.start_date, ct.end_date, ct.created_at,
               u.first_name, u.last_name, u.email
        FROM customized_trips ct
        JOIN users u ON ct.user_id = u.id
        WHERE ct.status = 'Not started'
        ORDER BY ct.id ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomizedTripWithRequester
	for rows.Next() {
		var row domain.CustomizedTripWithRequester
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.Destination,
			&row.Itinerary,
			&row.NumberOfPersons,
			&row.Comment,
			&row.Price,
			&row.Status,
			&row.AdminResponse,
			&row.UserResponse,
			&row.PaymentStatus,
			&row.StartDate,
			&row.EndDate,
			&row.CreatedAt,
			&row.Requester.FirstName,
			&row.Requester.LastName,
			&row.Requester.Email,
		); err != nil {
			return nil, err
		}
		row.Requester.UserID = row.UserID
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *customizedTripRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CustomizedTrip, error) {
	query := `SELECT ` + cusTripColumns + ` FROM customized_trips WHERE user_id=$1 ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomizedTrip
	for rows.Next() {
		var trip domain.CustomizedTrip
		if err := rows.Scan(
			&trip.ID,
			&trip.UserID,
			&trip.Destination,
			&trip.Itinerary,
			&trip.NumberOfPersons,
			&trip.Comment,
			&trip.Price,
			&trip.Status,
			&trip.AdminResponse,
			&trip.UserResponse,
			&trip.PaymentStatus,
			&trip.StartDate,
			&trip.EndDate,
			&trip.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, trip)
	}
	return result, rows.Err()
}

// SetAdminResponse flips Pending to Responded and sets the price in one
// conditional update. Returns false when the request was already priced.
func (r *customizedTripRepository) SetAdminResponse(ctx context.Context, id int64, price float64) (bool, error) {
	const query = `
        UPDATE customized_trips SET price=$1, admin_response='Responded'
        WHERE id=$2 AND admin_response='Pending'`
	cmd, err := r.pool.Exec(ctx, query, price, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// Accept records the user's acceptance once; returns false when a response
// was already given.
func (r *customizedTripRepository) Accept(ctx context.Context, id int64) (bool, error) {
	const query = `
        UPDATE customized_trips SET user_response='Accepted'
        WHERE id=$1 AND user_response='Pending'`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *customizedTripRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM customized_trips WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddReceiptAndMarkPaid inserts the receipt and flips the payment status from
// Pending to Paid in one transaction. Returns false without inserting when the
// request is already Paid, which keeps the upload idempotent-guarded.
func (r *customizedTripRepository) AddReceiptAndMarkPaid(ctx context.Context, receipt *domain.PaymentReceipt) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	const mark = `
        UPDATE customized_trips SET trip_payment_status='Paid'
        WHERE id=$1 AND trip_payment_status='Pending'`
	cmd, err := tx.Exec(ctx, mark, receipt.CusTripID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}

	const insert = `
        INSERT INTO payment_receipt (user_id, cus_trip_id, image, trip_type)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		receipt.UserID,
		receipt.CusTripID,
		receipt.ImageURL,
		receipt.TripType,
	).Scan(&receipt.ID, &receipt.CreatedAt); err != nil {
		return false, err
	}

	return true, tx.Commit(ctx)
}
