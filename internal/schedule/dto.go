package schedule

import (
	"time"

	errors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/core/common/validation"
)

// ScheduleDTO is the request payload for creating and updating a schedule.
type ScheduleDTO struct {
	TaskDescription      string     `json:"task_description"`
	DueDate              time.Time  `json:"due_date"`
	FrequencyDays        int        `json:"frequency_days"`
	FrequencyType        string     `json:"frequency_type,omitempty"`
	LastPerformedDate    *time.Time `json:"last_performed_date,omitempty"`
	Active               *bool      `json:"active,omitempty"`
	MachineID            int64      `json:"machine_id"`
	AssignedTechnicianID *int64     `json:"assigned_technician_id,omitempty"`
}

func (dto ScheduleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("task_description", dto.TaskDescription).Required()
	v.Field("due_date", dto.DueDate).Required()
	v.Field("frequency_days", dto.FrequencyDays).Required().MinInt(1)
	v.Field("frequency_type", dto.FrequencyType).
		OneOf(FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly)
	v.Field("last_performed_date", dto.LastPerformedDate).NotFuture()
	v.Field("machine_id", dto.MachineID).Required()
	return v.Validate()
}

func (dto ScheduleDTO) isActive() bool {
	if dto.Active == nil {
		return true
	}
	return *dto.Active
}
