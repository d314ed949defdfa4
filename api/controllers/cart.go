package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/fixnest/fixnest-backend/api/middleware"
	"github.com/fixnest/fixnest-backend/api/responses"
	"github.com/fixnest/fixnest-backend/api/validators"
	cartsvc "github.com/fixnest/fixnest-backend/internal/cart"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
)

// cartResponse wraps the cart state with the derived total.
type cartResponse struct {
	Items      []cartsvc.Item `json:"items"`
	TotalPrice int            `json:"total_price"`
}

func newCartResponse(state cartsvc.State) cartResponse {
	items := state.Items
	if items == nil {
		items = []cartsvc.Item{}
	}
	return cartResponse{Items: items, TotalPrice: state.TotalPrice()}
}

func cartSession(r *http.Request, logg *logger.Logger, w http.ResponseWriter) (string, bool) {
	session := middleware.CartSessionFromContext(r.Context())
	if session == "" {
		responses.WriteError(r.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
		return "", false
	}
	return session, true
}

// CartGet returns the visitor's cart.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		state, err := svc.Get(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

type cartAddRequest struct {
	SubServiceID uuid.UUID `json:"sub_service_id" validate:"required"`
}

// CartAdd puts one unit of a sub-service in the cart.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.Add(r.Context(), session, payload.SubServiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

type cartQuantityRequest struct {
	SubServiceID uuid.UUID `json:"sub_service_id" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required"`
}

// CartUpdateQuantity sets a line's quantity.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.UpdateQuantity(r.Context(), session, payload.SubServiceID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

type cartRemoveRequest struct {
	SubServiceID uuid.UUID `json:"sub_service_id" validate:"required"`
}

// CartRemove drops a line from the cart.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		var payload cartRemoveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		state, err := svc.Remove(r.Context(), session, payload.SubServiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := cartSession(r, logg, w)
		if !ok {
			return
		}
		if err := svc.Clear(r.Context(), session); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(cartsvc.State{}))
	}
}
