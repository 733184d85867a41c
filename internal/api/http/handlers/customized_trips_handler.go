package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/phoenix-adventures/trip-service/internal/api/dto"
	"github.com/phoenix-adventures/trip-service/internal/auth"
	"github.com/phoenix-adventures/trip-service/internal/service"
	apperrors "github.com/phoenix-adventures/trip-service/pkg/util"
)

// CustomizedTripsHandler exposes the bespoke trip negotiation endpoints.
type CustomizedTripsHandler struct {
	cusTrips *service.CustomizedTripService
	renderer *service.ReceiptRenderer
}

// NewCustomizedTripsHandler constructs handler.
func NewCustomizedTripsHandler(cusTrips *service.CustomizedTripService, renderer *service.ReceiptRenderer) *CustomizedTripsHandler {
	return &CustomizedTripsHandler{cusTrips: cusTrips, renderer: renderer}
}

// Create handles POST /api/v1/cus-trips.
func (h *CustomizedTripsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	var req dto.CreateCustomizedTripRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	trip, err := h.cusTrips.Create(c.Context(), user.ID, service.CreateCustomizedTripInput{
		Destination:     req.Destination,
		Itinerary:       req.Itinerary,
		NumberOfPersons: req.NumberOfPersons,
		Comment:         req.Comment,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"cus_trip": dto.NewCustomizedTripResponse(trip)},
	})
}

// ListPending handles GET /api/v1/cus-trips, listing requests whose trips have
// not started, with requester info for admins.
func (h *CustomizedTripsHandler) ListPending(c *fiber.Ctx) error {
	trips, err := h.cusTrips.ListPending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"results":   len(trips),
			"cus_trips": dto.NewCustomizedTripWithRequesterListResponse(trips),
		},
	})
}

// ListMine handles GET /api/v1/cus-trips/my-cust-trips.
func (h *CustomizedTripsHandler) ListMine(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	trips, err := h.cusTrips.ListMine(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"results":   len(trips),
			"cus_trips": dto.NewCustomizedTripListResponse(trips),
		},
	})
}

// Get handles GET /api/v1/cus-trips/:id.
func (h *CustomizedTripsHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	trip, err := h.cusTrips.Get(c.Context(), user, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"cus_trip": dto.NewCustomizedTripResponse(trip)},
	})
}

// AdminRespond handles PATCH /api/v1/cus-trips/admin-response/:id.
func (h *CustomizedTripsHandler) AdminRespond(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.AdminRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	trip, err := h.cusTrips.AdminRespond(c.Context(), id, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"cus_trip": dto.NewCustomizedTripResponse(trip)},
	})
}

// UserRespond handles PATCH /api/v1/cus-trips/user-response/:id. The form
// carries a response field; on acceptance it may also carry the payment
// receipt image, which is uploaded after the acceptance is recorded.
func (h *CustomizedTripsHandler) UserRespond(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("you are not logged in, please log in to get access")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	response := c.FormValue("response")
	if response == "" {
		var req dto.UserRespondRequest
		if err := c.BodyParser(&req); err == nil {
			response = req.Response
		}
	}
	if response == "" {
		return apperrors.NewValidationError("response must be accept or reject", nil)
	}

	trip, err := h.cusTrips.UserRespond(c.Context(), user, id, response)
	if err != nil {
		return err
	}
	if trip == nil {
		return c.JSON(fiber.Map{
			"data": fiber.Map{"message": "your request has been withdrawn"},
		})
	}

	result := fiber.Map{"cus_trip": dto.NewCustomizedTripResponse(trip)}
	if header, err := c.FormFile("receipt"); err == nil {
		input, f, err := openUpload(header)
		if err != nil {
			return err
		}
		defer f.Close()

		receipt, err := h.cusTrips.UploadReceipt(c.Context(), user, id, input)
		if err != nil {
			return err
		}
		result["receipt"] = fiber.Map{"image_url": receipt.ImageURL}
	}

	return c.JSON(fiber.Map{"data": result})
}

// UploadReceipt handles POST /api/v1/cus-trips/receipts/:id for paying after
// a previously recorded acceptance.
func (h *CustomizedTripsHandler) UploadReceipt(c *fiber.Ctx) error {
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

	receipt, err := h.cusTrips.UploadReceipt(c.Context(), user, id, input)
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

// Receipts handles GET /api/v1/cus-trips/receipts/:id, streaming a PDF of the
// uploaded receipts for the request.
func (h *CustomizedTripsHandler) Receipts(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	receipts, err := h.cusTrips.ReceiptsFor(c.Context(), id)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="cus-trip-%d-receipts.pdf"`, id))
	return h.renderer.Render(c.Context(),
		fmt.Sprintf("Customized trip %d payment receipts", id),
		receipts, c.Response().BodyWriter())
}
