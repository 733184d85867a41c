package domain

import "time"

// TripType discriminates which kind of trip a receipt belongs to.
type TripType string

const (
	TripTypeNormal     TripType = "normal"
	TripTypeCustomized TripType = "customized"
)

// PaymentReceipt records an uploaded payment proof for exactly one of a
// trip or a customized trip request.
type PaymentReceipt struct {
	ID        int64
	UserID    int64
	TripID    *int64
	CusTripID *int64
	ImageURL  string
	TripType  TripType
	CreatedAt time.Time
}

// ReceiptWithUploader joins a receipt with its uploader for PDF rendering.
type ReceiptWithUploader struct {
	ImageURL  string
	FirstName string
	LastName  string
	Email     string
}
