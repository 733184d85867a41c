package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/phoenix-adventures/trip-service/internal/api/dto"
	"github.com/phoenix-adventures/trip-service/internal/auth"
	"github.com/phoenix-adventures/trip-service/internal/service"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

const maxGalleryImages = 10

// TripsHandler exposes fixed-itinerary trip endpoints.
type TripsHandler struct {
	trips    *service.TripService
	renderer *service.ReceiptRenderer
}

// NewTripsHandler constructs handler.
func NewTripsHandler(trips *service.TripService, renderer *service.ReceiptRenderer) *TripsHandler {
	return &TripsHandler{trips: trips, renderer: renderer}
}

// List handles GET /api/v1/trips.
func (h *TripsHandler) List(c *fiber.Ctx) error {
	trips, err := h.trips.ListTrips(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"results": len(trips),
			"trips":   dto.NewTripListResponse(trips),
		},
	})
}

// Create handles POST /api/v1/trips.
func (h *TripsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTripRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	trip, err := h.trips.CreateTrip(c.Context(), service.CreateTripInput{
		Name:         req.Name,
		Price:        req.Price,
		Features:     req.Features,
		Availability: req.Availability,
		Itinerary:    req.Itinerary,
		Destination:  req.Destination,
		VehicleType:  req.VehicleType,
		MaxSeats:     req.MaxSeats,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		StartTime:    req.StartTime,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"trip": dto.NewTripResponse(trip)},
	})
}

// Get handles GET /api/v1/trips/:id.
func (h *TripsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	trip, err := h.trips.GetTrip(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"trip": dto.NewTripResponse(trip)},
	})
}

// Apply handles POST /api/v1/trips/:id.
func (h *TripsHandler) Apply(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	trip, err := h.trips.Apply(c.Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"message": "your application has been received, please check your email",
			"trip":    dto.NewTripResponse(trip),
		},
	})
}

// UploadImages handles POST /api/v1/trips/images-upload/:id.
func (h *TripsHandler) UploadImages(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("expected a multipart form with images", nil)
	}

	var cover *service.UploadInput
	if headers := form.File["image_cover"]; len(headers) > 0 {
		input, f, err := openUpload(headers[0])
		if err != nil {
			return err
		}
		defer f.Close()
		cover = &input
	}

	galleryHeaders := form.File["images"]
	if len(galleryHeaders) > maxGalleryImages {
		return apperrors.NewValidationError(
			fmt.Sprintf("at most %d gallery images are accepted", maxGalleryImages), nil)
	}
	gallery := make([]service.UploadInput, 0, len(galleryHeaders))
	for _, header := range galleryHeaders {
		input, f, err := openUpload(header)
		if err != nil {
			return err
		}
		defer f.Close()
		gallery = append(gallery, input)
	}

	if cover == nil && len(gallery) == 0 {
		return apperrors.NewValidationError("no images provided", nil)
	}

	trip, err := h.trips.UploadImages(c.Context(), id, cover, gallery)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"trip": dto.NewTripResponse(trip)},
	})
}

// UploadReceipt handles POST /api/v1/trips/receipts/:id.
func (h *TripsHandler) UploadReceipt(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("receipt")
	if err != nil {
		return apperrors.NewValidationError("a receipt image is required", nil)
	}
	input, f, err := openUpload(header)
	if err != nil {
		return err
	}
	defer f.Close()

	receipt, err := h.trips.UploadReceipt(c.Context(), user.ID, id, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"message":   "your receipt has been uploaded",
			"image_url": receipt.ImageURL,
		},
	})
}

// Receipts handles GET /api/v1/trips/receipts/:id, streaming a PDF of all
// uploaded receipts for the trip.
func (h *TripsHandler) Receipts(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	receipts, err := h.trips.ReceiptsForTrip(c.Context(), id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="trip-%d-receipts.pdf"`, id))
	return h.renderer.Render(c.Context(),
		fmt.Sprintf("Trip %d payment receipts", id),
		receipts, c.Response().BodyWriter())
}

func openUpload(header *multipart.FileHeader) (service.UploadInput, multipart.File, error) {
	f, err := header.Open()
	if err != nil {
		return service.UploadInput{}, nil, apperrors.NewValidationError("could not read uploaded file", nil)
	}
	return service.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      f,
	}, f, nil
}
