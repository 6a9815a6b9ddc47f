package maintenance

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cropmaint/machine-maintenance/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateLog(dto LogDTO) (*Log, error)
	GetLogByID(id int64) (*Log, error)
	GetAllLogs() ([]*Log, error)
	GetLogsByMachineID(machineID int64) ([]*Log, error)
	UpdateLog(id int64, dto LogDTO) (*Log, error)
	UpdateLogStatus(id int64, newStatus string) (*Log, error)
	DeleteLog(id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var dto LogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateLog: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.CreateLog(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, l)
}

// ListLogs serves both the unscoped listing and the machine-scoped one via
// the optional machine_id query parameter.
func (h *Handler) ListLogs(w http.ResponseWriter, r *http.Request) {
	if machineIDStr := r.URL.Query().Get("machine_id"); machineIDStr != "" {
		machineID, err := strconv.ParseInt(machineIDStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid machine_id")
			return
		}

		logs, err := h.Service.GetLogsByMachineID(machineID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, logs)
		return
	}

	logs, err := h.Service.GetAllLogs()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) GetLog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	l, err := h.Service.GetLogByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) UpdateLog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto LogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateLog: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.Service.UpdateLog(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) UpdateLogStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto StatusUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateLogStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	l, err := h.Service.UpdateLogStatus(id, dto.Status)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteLog(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid maintenance log ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid maintenance log ID")
		return 0, false
	}
	return id, true
}
