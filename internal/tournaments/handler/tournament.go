package handler

import (
	"encoding/json"
	"net/http"

	"dmaxcricket/internal/tournaments/service"
	httputil "dmaxcricket/pkg/http"
	"dmaxcricket/pkg/logger"
	"dmaxcricket/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type TournamentHandler struct {
	service service.TournamentService
	log     *logger.Logger
}

func NewTournamentHandler(service service.TournamentService, log *logger.Logger) *TournamentHandler {
	return &TournamentHandler{
		service: service,
		log:     log,
	}
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	summaries, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, summaries)
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var tournament model.Tournament
	if err := json.NewDecoder(r.Body).Decode(&tournament); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	created, err := h.service.Create(r.Context(), &tournament)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, created)
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req model.TournamentRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}
	req.TournamentID = ps.ByName("id")

	registration, err := h.service.Register(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, registration)
}

func (h *TournamentHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/tournaments", h.List)
	router.POST("/api/v1/tournaments", h.Create)
	router.DELETE("/api/v1/tournaments/id/:id", h.Delete)
	router.POST("/api/v1/tournaments/id/:id/register", h.Register)
}
