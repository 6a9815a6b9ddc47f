package machine

import (
	"time"

	errors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/core/common/validation"
)

// MachineDTO is the request payload for both create and update.
type MachineDTO struct {
	Name             string     `json:"name"`
	MachineCode      string     `json:"machine_code"`
	Location         *string    `json:"location,omitempty"`
	InstallDate      *time.Time `json:"install_date,omitempty"`
	Status           string     `json:"status"`
	MachineType      *string    `json:"machine_type,omitempty"`
	Manufacturer     *string    `json:"manufacturer,omitempty"`
	ModelNumber      *string    `json:"model_number,omitempty"`
	SerialNumber     *string    `json:"serial_number,omitempty"`
	CriticalityLevel string     `json:"criticality_level"`
}

func (dto MachineDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("machine_code", dto.MachineCode).Required().MaxLength(255)
	v.Field("install_date", dto.InstallDate).NotFuture()
	v.Field("status", dto.Status).Required().
		OneOf(StatusActive, StatusInactive, StatusUnderMaintenance, StatusDecommissioned)
	v.Field("criticality_level", dto.CriticalityLevel).Required().
		OneOf(CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical)
	return v.Validate()
}

func (dto MachineDTO) toDomain() *Machine {
	return &Machine{
		Name:             dto.Name,
		MachineCode:      dto.MachineCode,
		Location:         dto.Location,
		InstallDate:      dto.InstallDate,
		Status:           dto.Status,
		MachineType:      dto.MachineType,
		Manufacturer:     dto.Manufacturer,
		ModelNumber:      dto.ModelNumber,
		SerialNumber:     dto.SerialNumber,
		CriticalityLevel: dto.CriticalityLevel,
	}
}
