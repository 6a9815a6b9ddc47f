package schedule

import (
	"time"

	scheduleDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/schedule"
)

// Frequency types.
const (
	FrequencyDaily     = "DAILY"
	FrequencyWeekly    = "WEEKLY"
	FrequencyMonthly   = "MONTHLY"
	FrequencyQuarterly = "QUARTERLY"
	FrequencyYearly    = "YEARLY"
)

// Schedule is a recurring maintenance task bound to a machine, optionally
// assigned to a technician. Due-date recurrence arithmetic is out of scope;
// due dates are stored as provided.
type Schedule struct {
	ID                   int64      `json:"id"`
	TaskDescription      string     `json:"task_description"`
	DueDate              time.Time  `json:"due_date"`
	CreatedOn            time.Time  `json:"created_on"`
	FrequencyDays        int        `json:"frequency_days"`
	FrequencyType        string     `json:"frequency_type,omitempty"`
	LastPerformedDate    *time.Time `json:"last_performed_date,omitempty"`
	Active               bool       `json:"active"`
	MachineID            int64      `json:"machine_id"`
	AssignedTechnicianID *int64     `json:"assigned_technician_id,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (s *Schedule) IsDue(at time.Time) bool {
	return s.Active && !s.DueDate.After(at)
}

func ToDataModel(s *Schedule) *scheduleDatamodel.Schedule {
	return &scheduleDatamodel.Schedule{
		ID:                   s.ID,
		TaskDescription:      s.TaskDescription,
		DueDate:              s.DueDate,
		CreatedOn:            s.CreatedOn,
		FrequencyDays:        s.FrequencyDays,
		FrequencyType:        s.FrequencyType,
		LastPerformedDate:    s.LastPerformedDate,
		Active:               s.Active,
		MachineID:            s.MachineID,
		AssignedTechnicianID: s.AssignedTechnicianID,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func FromDataModel(s *scheduleDatamodel.Schedule) *Schedule {
	return &Schedule{
		ID:                   s.ID,
		TaskDescription:      s.TaskDescription,
		DueDate:              s.DueDate,
		CreatedOn:            s.CreatedOn,
		FrequencyDays:        s.FrequencyDays,
		FrequencyType:        s.FrequencyType,
		LastPerformedDate:    s.LastPerformedDate,
		Active:               s.Active,
		MachineID:            s.MachineID,
		AssignedTechnicianID: s.AssignedTechnicianID,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func FromDataModelSlice(schedules []*scheduleDatamodel.Schedule) []*Schedule {
	result := make([]*Schedule, len(schedules))
	for i, s := range schedules {
		result[i] = FromDataModel(s)
	}
	return result
}
