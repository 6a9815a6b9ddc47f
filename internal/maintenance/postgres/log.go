package postgres

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	maintenanceDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/maintenance"
	"github.com/cropmaint/machine-maintenance/internal/maintenance"
	"gorm.io/gorm"
)

// LogRepository implements maintenance.Repository using GORM.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) maintenance.Repository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Create(l *maintenance.Log) error {
	model := maintenance.ToDataModel(l)
	if err := r.db.Create(model).Error; err != nil {
		return err
	}
	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *LogRepository) GetByID(id int64) (*maintenance.Log, error) {
	var model maintenanceDatamodel.Log
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("maintenance log not found with id %d", id),
				apperrors.ErrCodeLogNotFound)
		}
		return nil, err
	}
	return maintenance.FromDataModel(&model), nil
}

func (r *LogRepository) GetAll() ([]*maintenance.Log, error) {
	var models []*maintenanceDatamodel.Log
	if err := r.db.Order("log_date DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return maintenance.FromDataModelSlice(models), nil
}

func (r *LogRepository) GetByMachineID(machineID int64) ([]*maintenance.Log, error) {
	var models []*maintenanceDatamodel.Log
	err := r.db.Where("machine_id = ?", machineID).
		Order("log_date DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return maintenance.FromDataModelSlice(models), nil
}

func (r *LogRepository) Update(l *maintenance.Log) error {
	l.UpdatedAt = time.Now()
	return r.db.Save(maintenance.ToDataModel(l)).Error
}

func (r *LogRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&maintenanceDatamodel.Log{}).Error
}
