package schedule

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cropmaint/machine-maintenance/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateSchedule(dto ScheduleDTO) (*Schedule, error)
	GetScheduleByID(id int64) (*Schedule, error)
	GetAllSchedules() ([]*Schedule, error)
	GetSchedulesByMachineID(machineID int64) ([]*Schedule, error)
	GetDueSchedules(at time.Time) ([]*Schedule, error)
	UpdateSchedule(id int64, dto ScheduleDTO) (*Schedule, error)
	DeleteSchedule(id int64) error
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

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var dto ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateSchedule: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, err := h.Service.CreateSchedule(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sched)
}

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	if machineIDStr := r.URL.Query().Get("machine_id"); machineIDStr != "" {
		machineID, err := strconv.ParseInt(machineIDStr, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid machine_id")
			return
		}

		schedules, err := h.Service.GetSchedulesByMachineID(machineID)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		h.WriteJSON(w, http.StatusOK, schedules)
		return
	}

	schedules, err := h.Service.GetAllSchedules()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, schedules)
}

// ListDueSchedules lists active schedules due on or before the optional
// `date` query parameter (YYYY-MM-DD), defaulting to now.
func (h *Handler) ListDueSchedules(w http.ResponseWriter, r *http.Request) {
	at := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		at = parsed
	}

	schedules, err := h.Service.GetDueSchedules(at)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	sched, err := h.Service.GetScheduleByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sched)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto ScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateSchedule: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, err := h.Service.UpdateSchedule(id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sched)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteSchedule(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid schedule ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid schedule ID")
		return 0, false
	}
	return id, true
}
