package machine

import "time"

type Machine struct {
	ID               int64      `gorm:"primaryKey"`
	Name             string     `gorm:"column:name;not null"`
	MachineCode      string     `gorm:"column:machine_code;uniqueIndex;not null"`
	Location         *string    `gorm:"column:location"`
	InstallDate      *time.Time `gorm:"column:install_date;type:date"`
	Status           string     `gorm:"column:status;not null"`
	MachineType      *string    `gorm:"column:machine_type"`
	Manufacturer     *string    `gorm:"column:manufacturer"`
	ModelNumber      *string    `gorm:"column:model_number"`
	SerialNumber     *string    `gorm:"column:serial_number"`
	CriticalityLevel string     `gorm:"column:criticality_level;not null"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Machine) TableName() string {
	return "machines"
}
