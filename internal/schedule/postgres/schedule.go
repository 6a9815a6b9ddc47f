package postgres

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	scheduleDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/schedule"
	"github.com/cropmaint/machine-maintenance/internal/schedule"
	"gorm.io/gorm"
)

// ScheduleRepository implements schedule.Repository using GORM.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) schedule.Repository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(s *schedule.Schedule) error {
	model := schedule.ToDataModel(s)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *ScheduleRepository) GetByID(id int64) (*schedule.Schedule, error) {
	var model scheduleDatamodel.Schedule
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("schedule not found with id %d", id),
				apperrors.ErrCodeScheduleNotFound)
		}
		return nil, err
	}
	return schedule.FromDataModel(&model), nil
}

func (r *ScheduleRepository) GetAll() ([]*schedule.Schedule, error) {
	var models []*scheduleDatamodel.Schedule
	if err := r.db.Order("due_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return schedule.FromDataModelSlice(models), nil
}

func (r *ScheduleRepository) GetByMachineID(machineID int64) ([]*schedule.Schedule, error) {
	var models []*scheduleDatamodel.Schedule
	err := r.db.Where("machine_id = ?", machineID).
		Order("due_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return schedule.FromDataModelSlice(models), nil
}

func (r *ScheduleRepository) GetDue(at time.Time) ([]*schedule.Schedule, error) {
	var models []*scheduleDatamodel.Schedule
	err := r.db.Where("active = ? AND due_date <= ?", true, at).
		Order("due_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return schedule.FromDataModelSlice(models), nil
}

func (r *ScheduleRepository) Update(s *schedule.Schedule) error {
	s.UpdatedAt = time.Now()
	return r.db.Save(schedule.ToDataModel(s)).Error
}

func (r *ScheduleRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&scheduleDatamodel.Schedule{}).Error
}
