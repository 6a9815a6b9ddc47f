package machine

import (
	"time"

	machineDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/machine"
)

// Machine statuses.
const (
	StatusActive           = "ACTIVE"
	StatusInactive         = "INACTIVE"
	StatusUnderMaintenance = "UNDER_MAINTENANCE"
	StatusDecommissioned   = "DECOMMISSIONED"
)

// Criticality levels.
const (
	CriticalityLow      = "LOW"
	CriticalityMedium   = "MEDIUM"
	CriticalityHigh     = "HIGH"
	CriticalityCritical = "CRITICAL"
)

type Machine struct {
	ID               int64      `json:"id"`
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
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (m *Machine) IsDecommissioned() bool {
	return m.Status == StatusDecommissioned
}

func ToDataModel(m *Machine) *machineDatamodel.Machine {
	return &machineDatamodel.Machine{
		ID:               m.ID,
		Name:             m.Name,
		MachineCode:      m.MachineCode,
		Location:         m.Location,
		InstallDate:      m.InstallDate,
		Status:           m.Status,
		MachineType:      m.MachineType,
		Manufacturer:     m.Manufacturer,
		ModelNumber:      m.ModelNumber,
		SerialNumber:     m.SerialNumber,
		CriticalityLevel: m.CriticalityLevel,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func FromDataModel(m *machineDatamodel.Machine) *Machine {
	return &Machine{
		ID:               m.ID,
		Name:             m.Name,
		MachineCode:      m.MachineCode,
		Location:         m.Location,
		InstallDate:      m.InstallDate,
		Status:           m.Status,
		MachineType:      m.MachineType,
		Manufacturer:     m.Manufacturer,
		ModelNumber:      m.ModelNumber,
		SerialNumber:     m.SerialNumber,
		CriticalityLevel: m.CriticalityLevel,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func FromDataModelSlice(machines []*machineDatamodel.Machine) []*Machine {
	result := make([]*Machine, len(machines))
	for i, m := range machines {
		result[i] = FromDataModel(m)
	}
	return result
}
