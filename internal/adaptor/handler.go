package adaptor

import (
	"net/http"

	"cinema-reservation/internal/apperror"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Hold     *HoldHandler
	Booking  *BookingHandler
	Show     *ShowHandler
	Customer *CustomerHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Hold:     NewHoldHandler(service.Hold, log),
		Booking:  NewBookingHandler(service.Checkout, log),
		Show:     NewShowHandler(service.Show, log),
		Customer: NewCustomerHandler(service.Loyalty, log),
	}
}

// respondError translates a service error into the HTTP response. Typed errors
// carry their own status and machine-readable code; everything else is a 500.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	if appErr, ok := apperror.FromError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.Error("Failed to "+operation, zap.Error(err), zap.String("code", appErr.Code))
		} else {
			log.Warn(operation+" rejected", zap.String("code", appErr.Code), zap.String("message", appErr.Message))
		}
		utils.ResponseJSON(w, appErr.StatusCode, false, appErr.Message, nil, map[string]string{"code": appErr.Code})
		return
	}

	log.Error("Failed to "+operation, zap.Error(err))
	utils.ResponseInternalError(w, "Internal server error")
}
