package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/rental_booking/internal/adapter/handler"
	"github.com/srgjo27/rental_booking/internal/adapter/notifier"
	"github.com/srgjo27/rental_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/rental_booking/internal/core/domain"
	"github.com/srgjo27/rental_booking/internal/core/services"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func newServer(t *testing.T) (*httptest.Server, domain.Vehicle) {
	vehicle := domain.Vehicle{ID: uuid.New(), Name: "Toyota Avanza", RatePerHour: 500, RatePerDay: 5000, SecurityDeposit: 2000}
	clock := fixedClock(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	reservations := memory.NewReservationRepository()

	bookings := services.NewBookingService(memory.NewVehicleRepository(vehicle), reservations, notifier.NewLog(), clock, services.BookingConfig{})
	invoices := services.NewInvoiceService(reservations, memory.NewInvoiceRepository(), clock)

	mux := http.NewServeMux()
	handler.NewBookingHandler(bookings, invoices).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, vehicle
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func bookingBody(vehicleID uuid.UUID, start, end string) string {
	return `{"vehicle_id":"` + vehicleID.String() + `","customer":{"name":"Rina","email":"rina@example.com"},"start":"` + start + `","end":"` + end + `"}`
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	srv, vehicle := newServer(t)

	resp, created := post(t, srv.URL+"/bookings", bookingBody(vehicle.ID, "2025-06-01T10:00:00Z", "2025-06-02T16:00:00Z"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "PENDING", created["status"])
	assert.Equal(t, float64(10000), created["total_amount"])

	resp, body := post(t, srv.URL+"/bookings", bookingBody(vehicle.ID, "2025-06-02T15:00:00Z", "2025-06-02T18:00:00Z"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "unavailable")

	resp, body = post(t, srv.URL+"/bookings/1/invoice", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, body)

	resp, paid := post(t, srv.URL+"/bookings/1/confirm", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "PAID", paid["status"])

	resp, _ = post(t, srv.URL+"/bookings/1/confirm", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, inv := post(t, srv.URL+"/bookings/1/invoice", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "INV-2025-000001", inv["invoice_number"])
	assert.Equal(t, float64(12000), inv["amount"])

	resp, cancelled := post(t, srv.URL+"/bookings/1/cancel", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", cancelled["status"])

	resp, _ = post(t, srv.URL+"/bookings/1/confirm", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateBooking_BadInput(t *testing.T) {
	srv, vehicle := newServer(t)

	resp, _ := post(t, srv.URL+"/bookings", "{")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	noEmail := `{"vehicle_id":"` + vehicle.ID.String() + `","customer":{"name":"Rina"},"start":"2025-06-01T10:00:00Z","end":"2025-06-01T12:00:00Z"}`
	resp, _ = post(t, srv.URL+"/bookings", noEmail)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	noVehicle := `{"customer":{"name":"Rina","email":"rina@example.com"},"start":"2025-06-01T10:00:00Z","end":"2025-06-01T12:00:00Z"}`
	resp, _ = post(t, srv.URL+"/bookings", noVehicle)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, srv.URL+"/bookings", bookingBody(vehicle.ID, "2025-04-01T10:00:00Z", "2025-04-01T12:00:00Z"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, srv.URL+"/bookings", bookingBody(uuid.New(), "2025-06-01T10:00:00Z", "2025-06-01T12:00:00Z"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = post(t, srv.URL+"/bookings/abc/confirm", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetBooking_NotFound(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/bookings/5")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchAvailable(t *testing.T) {
	srv, vehicle := newServer(t)

	resp, _ := post(t, srv.URL+"/bookings", bookingBody(vehicle.ID, "2025-06-01T10:00:00Z", "2025-06-01T18:00:00Z"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	get := func(query string) (int, []map[string]any) {
		resp, err := http.Get(srv.URL + "/vehicles/available?" + query)
		require.NoError(t, err)
		defer resp.Body.Close()

		var out []map[string]any
		if resp.StatusCode == http.StatusOK {
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		}
		return resp.StatusCode, out
	}

	status, out := get("start=2025-06-01T18:00:00Z&end=2025-06-01T20:00:00Z&vehicle_id=" + vehicle.ID.String())
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out, 1)

	status, out = get("start=2025-06-01T12:00:00Z&end=2025-06-01T20:00:00Z")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, out)

	status, _ = get("start=yesterday&end=2025-06-01T20:00:00Z")
	assert.Equal(t, http.StatusBadRequest, status)
}
