package maintenance

import (
	"time"

	errors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/core/common/validation"
)

// LogDTO is the request payload for creating and updating a maintenance
// log. Status is optional on create; a blank status defaults to PENDING.
type LogDTO struct {
	LogDate     time.Time `json:"log_date"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performed_by"`
	Cost        *float64  `json:"cost,omitempty"`
	Status      string    `json:"status,omitempty"`
	MachineID   int64     `json:"machine_id"`
}

func (dto LogDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("log_date", dto.LogDate).Required().NotFuture()
	v.Field("description", dto.Description).Required()
	v.Field("performed_by", dto.PerformedBy).Required()
	v.Field("cost", dto.Cost).NonNegative()
	v.Field("machine_id", dto.MachineID).Required()
	return v.Validate()
}

// StatusUpdateDTO is the payload of the dedicated status-only mutation.
type StatusUpdateDTO struct {
	Status string `json:"status"`
}

func (dto StatusUpdateDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("status", dto.Status).Required()
	return v.Validate()
}
