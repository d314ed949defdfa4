package controllers

import (
	"net/http"
	"time"

	"github.com/fixnest/fixnest-backend/api/responses"
	"github.com/fixnest/fixnest-backend/api/validators"
	bookingsvc "github.com/fixnest/fixnest-backend/internal/booking"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

// BookingState returns the wizard draft for the visitor's session.
func BookingState(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		draft, err := svc.State(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// BookingAdvance validates the current step and moves the wizard forward.
func BookingAdvance(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		var payload bookingsvc.AdvanceInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		draft, err := svc.Advance(r.Context(), session, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// BookingBack steps the wizard backwards, keeping entered data.
func BookingBack(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		draft, err := svc.Back(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// BookingClose dismisses the wizard dialog.
func BookingClose(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		draft, err := svc.Close(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// BookingSlots returns the slot grid with availability for ?date=YYYY-MM-DD.
func BookingSlots(svc bookingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("date")
		if raw == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "date query parameter is required"))
			return
		}
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "date must be in 2006-01-02 format"))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"date":  raw,
			"slots": svc.Slots(date),
		})
	}
}
