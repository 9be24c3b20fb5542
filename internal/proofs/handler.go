package proofs

import (
	"net/http"
	"time"

	httputil "dmaxcricket/pkg/http"
	"dmaxcricket/pkg/logger"
	"dmaxcricket/pkg/sealer"

	"github.com/julienschmidt/httprouter"
)

const uploadFieldName = "proof"

// PaymentHandler serves the two pre-booking steps: opening a payment window
// and uploading the payment proof.
type PaymentHandler struct {
	store  Store
	sealer *sealer.Sealer
	window time.Duration
	log    *logger.Logger
}

func NewPaymentHandler(store Store, s *sealer.Sealer, window time.Duration, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		store:  store,
		sealer: s,
		window: window,
		log:    log,
	}
}

// OpenWindow hands out a token that must come back with the booking within
// the payment window.
func (h *PaymentHandler) OpenWindow(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token, err := h.sealer.Issue()
	if err != nil {
		h.log.Error("Failed to issue payment token", "error", err)
		httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
			Error: "Failed to open payment window",
		})
		return
	}

	httputil.WriteSuccess(w, map[string]any{
		"token":      token,
		"expires_in": int(h.window.Seconds()),
	})
}

func (h *PaymentHandler) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "A 'proof' file field is required",
		})
		return
	}
	defer file.Close()

	ref, err := h.store.Save(r.Context(), header.Filename, header.Size, file)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, map[string]any{"proof_ref": ref})
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments/window", h.OpenWindow)
	router.POST("/api/v1/payments/proof", h.Upload)
}
