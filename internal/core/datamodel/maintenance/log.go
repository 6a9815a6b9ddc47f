package maintenance

import "time"

type Log struct {
	ID          int64     `gorm:"primaryKey"`
	LogDate     time.Time `gorm:"column:log_date;type:date;not null"`
	Description string    `gorm:"column:description;not null"`
	PerformedBy string    `gorm:"column:performed_by;not null"`
	Cost        *float64  `gorm:"column:cost"`
	Status      string    `gorm:"column:status;not null;default:PENDING"`
	MachineID   int64     `gorm:"column:machine_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Log) TableName() string {
	return "maintenance_logs"
}
