package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/services"
)

var validate = validator.New()

type customerBody struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name" validate:"required,max=200"`
	Email string    `json:"email" validate:"required,email"`
	Phone string    `json:"phone" validate:"omitempty,max=32"`
}

type createBookingBody struct {
	VehicleID uuid.UUID    `json:"vehicle_id" validate:"required"`
	Customer  customerBody `json:"customer"`
	Start     time.Time    `json:"start"`
	End       time.Time    `json:"end"`
}

func (b createBookingBody) request() services.CreateBookingRequest {
	return services.CreateBookingRequest{
		VehicleID: b.VehicleID,
		Customer: domain.Customer{
			ID:    b.Customer.ID,
			Name:  b.Customer.Name,
			Email: b.Customer.Email,
			Phone: b.Customer.Phone,
		},
		Start: b.Start,
		End:   b.End,
	}
}

type BookingHandler struct {
	svc      *services.BookingService
	invoices *services.InvoiceService
}

func NewBookingHandler(svc *services.BookingService, invoices *services.InvoiceService) *BookingHandler {
	return &BookingHandler{svc: svc, invoices: invoices}
}

func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /bookings", h.CreateBooking)
	mux.HandleFunc("GET /bookings/{id}", h.GetBooking)
	mux.HandleFunc("POST /bookings/{id}/confirm", h.ConfirmPayment)
	mux.HandleFunc("POST /bookings/{id}/cancel", h.CancelBooking)
	mux.HandleFunc("POST /bookings/{id}/invoice", h.IssueInvoice)
	mux.HandleFunc("GET /vehicles/available", h.SearchAvailable)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var body createBookingBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	if err := validate.Struct(body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	resp, err := h.svc.RequestBooking(r.Context(), body.request())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.GetBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ConfirmPayment stands in for the payment gateway callback.
func (h *BookingHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.ConfirmPayment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	resp, err := h.svc.CancelBooking(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) IssueInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	resp, err := h.invoices.IssueInvoice(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) SearchAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start, want RFC3339"})
		return
	}

	end, err := time.Parse(time.RFC3339, q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end, want RFC3339"})
		return
	}

	var ids []uuid.UUID
	for _, raw := range q["vehicle_id"] {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid vehicle id"})
			return
		}
		ids = append(ids, id)
	}

	resp, err := h.svc.SearchAvailable(r.Context(), ids, start, end)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid booking id"})
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidWindow):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrSlotTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "vehicle is unavailable for these dates, pick different dates"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("[http] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[http] encode response: %v", err)
	}
}
