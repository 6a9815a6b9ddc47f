package postgres

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	machineDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/machine"
	maintenanceDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/maintenance"
	scheduleDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/schedule"
	"github.com/cropmaint/machine-maintenance/internal/machine"
	"gorm.io/gorm"
)

// MachineRepository implements machine.Repository using GORM.
type MachineRepository struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) machine.Repository {
	return &MachineRepository{db: db}
}

func (r *MachineRepository) Create(m *machine.Machine) error {
	model := machine.ToDataModel(m)
	if err := r.db.Create(model).Error; err != nil {
		// the unique index is the authoritative guard under concurrency
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.NewConflictError(
				fmt.Sprintf("machine with code '%s' already exists", m.MachineCode),
				apperrors.ErrCodeDuplicateMachineCode)
		}
		return err
	}
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *MachineRepository) GetByID(id int64) (*machine.Machine, error) {
	var model machineDatamodel.Machine
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("machine not found with id %d", id),
				apperrors.ErrCodeMachineNotFound)
		}
		return nil, err
	}
	return machine.FromDataModel(&model), nil
}

// GetByCode returns nil when no machine carries the code.
func (r *MachineRepository) GetByCode(code string) (*machine.Machine, error) {
	var model machineDatamodel.Machine
	err := r.db.Where("machine_code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return machine.FromDataModel(&model), nil
}

func (r *MachineRepository) GetAll() ([]*machine.Machine, error) {
	var models []*machineDatamodel.Machine
	if err := r.db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return machine.FromDataModelSlice(models), nil
}

func (r *MachineRepository) ExistsByID(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&machineDatamodel.Machine{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *MachineRepository) Update(m *machine.Machine) error {
	m.UpdatedAt = time.Now()
	err := r.db.Save(machine.ToDataModel(m)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewConflictError(
			fmt.Sprintf("machine with code '%s' already exists for another machine", m.MachineCode),
			apperrors.ErrCodeDuplicateMachineCode)
	}
	return err
}

// Delete removes the machine and its cascade-owned maintenance logs and
// schedules as a two-phase delete inside one transaction: no orphans, no
// partial removal.
func (r *MachineRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("machine_id = ?", id).Delete(&maintenanceDatamodel.Log{}).Error; err != nil {
			return err
		}
		if err := tx.Where("machine_id = ?", id).Delete(&scheduleDatamodel.Schedule{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&machineDatamodel.Machine{}).Error
	})
}
