package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeLogStatusChanged = "maintenance_log.status_changed"
	EventTypeMachineDeleted   = "machine.deleted"
)

type LogStatusChangedEvent struct {
	BaseEvent
	LogID      int64  `json:"log_id"`
	MachineID  int64  `json:"machine_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

func NewLogStatusChangedEvent(logID, machineID int64, fromStatus, toStatus string) *LogStatusChangedEvent {
	return &LogStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeLogStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"log_id":      logID,
				"machine_id":  machineID,
				"from_status": fromStatus,
				"to_status":   toStatus,
			},
		},
		LogID:      logID,
		MachineID:  machineID,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
	}
}

type MachineDeletedEvent struct {
	BaseEvent
	MachineID   int64  `json:"machine_id"`
	MachineCode string `json:"machine_code"`
}

func NewMachineDeletedEvent(machineID int64, machineCode string) *MachineDeletedEvent {
	return &MachineDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeMachineDeleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"machine_id":   machineID,
				"machine_code": machineCode,
			},
		},
		MachineID:   machineID,
		MachineCode: machineCode,
	}
}
