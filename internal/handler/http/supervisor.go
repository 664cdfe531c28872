package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/Hamza-Malik05/plant-management-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SupervisorHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type supervisorHandlerImpl struct {
	supervisorService supervisor.SupervisorService
}

func NewSupervisorHandler(supervisorService supervisor.SupervisorService) SupervisorHandler {
	return &supervisorHandlerImpl{
		supervisorService: supervisorService,
	}
}

// Create implements SupervisorHandler.
func (h *supervisorHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req supervisor.CreateSupervisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create supervisor decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.supervisorService.CreateSupervisor(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Supervisor created", result)
}

// List implements SupervisorHandler.
func (h *supervisorHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.supervisorService.ListSupervisors(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{Total: len(result)})
}

// Get implements SupervisorHandler.
func (h *supervisorHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.supervisorService.GetSupervisor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
