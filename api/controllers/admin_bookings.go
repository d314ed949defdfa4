package controllers

import (
	"net/http"

	"github.com/fixnest/fixnest-backend/api/responses"
	bookingsvc "github.com/fixnest/fixnest-backend/internal/booking"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

// AdminBookingsList returns a cursor page of submitted bookings, newest
// first, with line items preloaded.
func AdminBookingsList(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, next, err := svc.ListBookings(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"bookings": rows, "next_cursor": next})
	}
}
