package schedule

import "time"

type Schedule struct {
	ID                   int64      `gorm:"primaryKey"`
	TaskDescription      string     `gorm:"column:task_description;not null"`
	DueDate              time.Time  `gorm:"column:due_date;type:date;not null"`
	CreatedOn            time.Time  `gorm:"column:created_on;not null"`
	FrequencyDays        int        `gorm:"column:frequency_days;not null"`
	FrequencyType        string     `gorm:"column:frequency_type"`
	LastPerformedDate    *time.Time `gorm:"column:last_performed_date;type:date"`
	Active               bool       `gorm:"column:active"`
	MachineID            int64      `gorm:"column:machine_id;not null;index"`
	AssignedTechnicianID *int64     `gorm:"column:assigned_technician_id"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Schedule) TableName() string {
	return "schedules"
}
