package controllers

import (
	"net/http"

	"github.com/fixnest/fixnest-backend/api/responses"
	"github.com/fixnest/fixnest-backend/api/validators"
	"github.com/fixnest/fixnest-backend/internal/notifications"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Phone   string `json:"phone" validate:"required,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message" validate:"required,max=4000"`
}

// ContactSubmit forwards a contact-form submission to the ops inbox.
func ContactSubmit(svc *notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		err := svc.SendContactMessage(r.Context(), notifications.ContactMessage{
			Name:    validators.SanitizeString(payload.Name, 120),
			Phone:   validators.SanitizeString(payload.Phone, 20),
			Email:   validators.SanitizeString(payload.Email, 254),
			Message: validators.SanitizeString(payload.Message, 4000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

type complaintRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Phone     string `json:"phone" validate:"required,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	BookingID string `json:"booking_id" validate:"omitempty,uuid"`
	Message   string `json:"message" validate:"required,max=4000"`
}

// ComplaintSubmit forwards a complaint to the ops inbox.
func ComplaintSubmit(svc *notifications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload complaintRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		err := svc.SendComplaint(r.Context(), notifications.ComplaintMessage{
			Name:      validators.SanitizeString(payload.Name, 120),
			Phone:     validators.SanitizeString(payload.Phone, 20),
			Email:     validators.SanitizeString(payload.Email, 254),
			BookingID: payload.BookingID,
			Message:   validators.SanitizeString(payload.Message, 4000),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}
