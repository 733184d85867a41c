package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

// ReceiptRepository encapsulates payment receipt persistence.
type ReceiptRepository interface {
	CreateForTrip(ctx context.Context, receipt *domain.PaymentReceipt) error
	ListForTrip(ctx context.Context, tripID int64) ([]domain.ReceiptWithUploader, error)
	ListForCustomizedTrip(ctx context.Context, cusTripID int64) ([]domain.ReceiptWithUploader, error)
}

type receiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository instantiates repository.
func NewReceiptRepository(pool *pgxpool.Pool) ReceiptRepository {
	return &receiptRepository{pool: pool}
}

func (r *receiptRepository) CreateForTrip(ctx context.Context, receipt *domain.PaymentReceipt) error {
	const query = `
        INSERT INTO payment_receipt (user_id, trip_id, image, trip_type)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		receipt.UserID,
		receipt.TripID,
		receipt.ImageURL,
		receipt.TripType,
	).Scan(&receipt.ID, &receipt.CreatedAt)
}

func (r *receiptRepository) ListForTrip(ctx context.Context, tripID int64) ([]domain.ReceiptWithUploader, error) {
	const query = `
        SELECT pr.image, u.first_name, u.last_name, u.email
        FROM payment_receipt pr
        JOIN users u ON pr.user_id = u.id
        WHERE pr.trip_id = $1 AND pr.trip_type = 'normal'
        ORDER BY pr.id ASC`
	return r.listUploaders(ctx, query, tripID)
}

func (r *receiptRepository) ListForCustomizedTrip(ctx context.Context, cusTripID int64) ([]domain.ReceiptWithUploader, error) {
	const query = `
        SELECT pr.image, u.first_name, u.last_name, u.email
        FROM payment_receipt pr
        JOIN users u ON pr.user_id = u.id
        WHERE pr.cus_trip_id = $1 AND pr.trip_type = 'customized'
        ORDER BY pr.id ASC`
	return r.listUploaders(ctx, query, cusTripID)
}

func (r *receiptRepository) listUploaders(ctx context.Context, query string, id int64) ([]domain.ReceiptWithUploader, error) {
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReceiptWithUploader
	for rows.Next() {
		var rec domain.ReceiptWithUploader
		if err := rows.Scan(&rec.ImageURL, &rec.FirstName, &rec.LastName, &rec.Email); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}
