package adaptor

import (
	"net/http"
	"net/url"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service usecase.LoyaltyService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.LoyaltyService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// GetLoyaltyProfile handles GET /api/customers/{email}/loyalty
func (h *CustomerHandler) GetLoyaltyProfile(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		utils.ResponseBadRequest(w, "Customer email is required", nil)
		return
	}

	profile, err := h.service.GetLoyaltyProfile(r.Context(), email)
	if err != nil {
		respondError(w, h.log, err, "get loyalty profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}
