package handler

import (
	"encoding/json"
	"net/http"
	"time"

	lockservice "dmaxcricket/internal/locks/service"
	"dmaxcricket/internal/slots/service"
	httputil "dmaxcricket/pkg/http"
	"dmaxcricket/pkg/logger"
	"dmaxcricket/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type SlotHandler struct {
	service service.SlotService
	locks   lockservice.LockService
	log     *logger.Logger
}

func NewSlotHandler(service service.SlotService, locks lockservice.LockService, log *logger.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		locks:   locks,
		log:     log,
	}
}

func (h *SlotHandler) DaySchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "The 'date' query parameter is required",
		})
		return
	}

	schedule, err := h.service.DaySchedule(r.Context(), date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, schedule)
}

func (h *SlotHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	slots, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, slots, total, limit, offset)
}

func (h *SlotHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SlotGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	created, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, map[string]any{"created": created})
}

func (h *SlotHandler) Toggle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slot, err := h.service.ToggleActive(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, slot)
}

// Deactivate is the safe alternative to Delete for slots that already
// carry bookings. The slot stays in the collection but stops showing up
// in the public schedule.
func (h *SlotHandler) Deactivate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Deactivate(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *SlotHandler) Lock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.SlotLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	if req.SessionID == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "session_id is required",
		})
		return
	}

	expiresAt, err := h.locks.Acquire(r.Context(), ps.ByName("id"), req.SessionID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]any{
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

func (h *SlotHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/slots", h.DaySchedule)
	router.GET("/api/v1/slots/all", h.GetAll)
	router.POST("/api/v1/slots/generate", h.Generate)
	router.PATCH("/api/v1/slots/id/:id/toggle", h.Toggle)
	router.PATCH("/api/v1/slots/id/:id/deactivate", h.Deactivate)
	router.DELETE("/api/v1/slots/id/:id", h.Delete)
	router.POST("/api/v1/slots/id/:id/lock", h.Lock)
}
