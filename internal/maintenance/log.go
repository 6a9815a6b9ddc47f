package maintenance

import (
	"time"

	maintenanceDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/maintenance"
)

// Log is a single maintenance record always owned by exactly one machine.
type Log struct {
	ID          int64     `json:"id"`
	LogDate     time.Time `json:"log_date"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performed_by"`
	Cost        *float64  `json:"cost,omitempty"`
	Status      Status    `json:"status"`
	MachineID   int64     `json:"machine_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l *Log) IsTerminal() bool {
	return l.Status == StatusCompleted || l.Status == StatusCanceled
}

func ToDataModel(l *Log) *maintenanceDatamodel.Log {
	return &maintenanceDatamodel.Log{
		ID:          l.ID,
		LogDate:     l.LogDate,
		Description: l.Description,
		PerformedBy: l.PerformedBy,
		Cost:        l.Cost,
		Status:      string(l.Status),
		MachineID:   l.MachineID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func FromDataModel(l *maintenanceDatamodel.Log) *Log {
	return &Log{
		ID:          l.ID,
		LogDate:     l.LogDate,
		Description: l.Description,
		PerformedBy: l.PerformedBy,
		Cost:        l.Cost,
		Status:      Status(l.Status),
		MachineID:   l.MachineID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func FromDataModelSlice(logs []*maintenanceDatamodel.Log) []*Log {
	result := make([]*Log, len(logs))
	for i, l := range logs {
		result[i] = FromDataModel(l)
	}
	return result
}
