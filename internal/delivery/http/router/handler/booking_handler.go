package handler

import (
	"net/http"
	"strconv"
	"time"

	"booking/internal/delivery/http/response"
	"booking/internal/domain/entity"
	domainerrors "booking/internal/domain/errors"
	"booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookingHandler exposes the customer-facing availability and booking routes
// plus the admin booking views.
type BookingHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	bookingUsecase      usecase.BookingUsecase
}

// NewBookingHandler is the constructor for BookingHandler.
func NewBookingHandler(
	availabilityUsecase usecase.AvailabilityUsecase,
	bookingUsecase usecase.BookingUsecase,
) *BookingHandler {
	return &BookingHandler{
		availabilityUsecase: availabilityUsecase,
		bookingUsecase:      bookingUsecase,
	}
}

type slotResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type availabilityResponse struct {
	Slots   []slotResponse `json:"slots"`
	Warning string         `json:"warning,omitempty"`
}

type bookingResponse struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	MeetLink string `json:"meet_link,omitempty"`
	HTMLLink string `json:"html_link,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Topic    string `json:"topic,omitempty"`
}

// GetAvailability returns the bookable slots for the next days.
// GET /api/booking/availability?days=14
func (h *BookingHandler) GetAvailability(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return domainerrors.ErrInvalidInput.WithDetails("days must be an integer")
		}
		days = parsed
	}

	output, err := h.availabilityUsecase.GetAvailability(c.Request().Context(), days)
	if err != nil {
		return err
	}

	slots := make([]slotResponse, 0, len(output.Slots))
	for _, slot := range output.Slots {
		slots = append(slots, slotResponse{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		})
	}

	return response.Success(c, http.StatusOK, availabilityResponse{
		Slots:   slots,
		Warning: output.Warning,
	}, "")
}

// Book runs the booking pipeline for a customer request.
// POST /api/booking/book
func (h *BookingHandler) Book(c echo.Context) error {
	input := new(usecase.BookInput)
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrInvalidInput.WithDetails(err.Error())
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	record, err := h.bookingUsecase.Book(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toBookingResponse(record), "Rendez-vous confirmé")
}

// GetBooking returns a single booking record.
// GET /api/admin/bookings/:id
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrInvalidInput.WithDetails("invalid booking id")
	}

	record, err := h.bookingUsecase.GetBooking(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toBookingResponse(record), "")
}

// ListBookings returns booking records, newest first.
// GET /api/admin/bookings?limit=50&offset=0
func (h *BookingHandler) ListBookings(c echo.Context) error {
	limit := parseIntParam(c.QueryParam("limit"))
	offset := parseIntParam(c.QueryParam("offset"))

	records, err := h.bookingUsecase.ListBookings(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}

	bookings := make([]bookingResponse, 0, len(records))
	for _, record := range records {
		bookings = append(bookings, toBookingResponse(record))
	}

	return response.Success(c, http.StatusOK, bookings, "")
}

func parseIntParam(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}

	return value
}

func toBookingResponse(record *entity.BookingRecord) bookingResponse {
	return bookingResponse{
		ID:       record.ID.String(),
		EventID:  record.EventID,
		MeetLink: record.MeetLink,
		HTMLLink: record.HTMLLink,
		Start:    record.Start.Format(time.RFC3339),
		End:      record.End.Format(time.RFC3339),
		Email:    record.Email,
		Name:     record.Name,
		Phone:    record.Phone,
		Topic:    record.Topic,
	}
}
