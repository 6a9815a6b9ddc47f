package machine

import (
	"context"
	"fmt"
	"log/slog"

	errors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/core/events"
)

// Repository defines the data access methods for machines. GetByCode
// returns nil without error when no machine carries the code.
type Repository interface {
	Create(m *Machine) error
	GetByID(id int64) (*Machine, error)
	GetByCode(code string) (*Machine, error)
	GetAll() ([]*Machine, error)
	ExistsByID(id int64) (bool, error)
	Update(m *Machine) error
	// Delete removes the machine together with its maintenance logs and
	// schedules in one transaction.
	Delete(id int64) error
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateMachine persists a new machine. The code uniqueness pre-check is a
// fast-path rejection; the unique index remains the authoritative guard, so
// a concurrent racer surfaces as the same conflict error from the store.
func (s *Service) CreateMachine(dto MachineDTO) (*Machine, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("machine validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByCode(dto.MachineCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Warn("machine code already in use", "machine_code", dto.MachineCode)
		return nil, errors.NewConflictError(
			fmt.Sprintf("machine with code '%s' already exists", dto.MachineCode),
			errors.ErrCodeDuplicateMachineCode)
	}

	m := dto.toDomain()
	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create machine", "error", err, "machine_code", dto.MachineCode)
		return nil, err
	}

	s.logger.Info("machine created",
		"machine_id", m.ID,
		"machine_code", m.MachineCode,
		"status", m.Status)

	return m, nil
}

func (s *Service) GetMachineByID(id int64) (*Machine, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get machine", "error", err, "machine_id", id)
		return nil, err
	}
	return m, nil
}

func (s *Service) GetAllMachines() ([]*Machine, error) {
	machines, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list machines", "error", err)
		return nil, err
	}
	return machines, nil
}

// UpdateMachine overwrites all mutable fields of an existing machine. A
// machine code collision with a different machine is a conflict; keeping
// its own code is not.
func (s *Service) UpdateMachine(id int64, dto MachineDTO) (*Machine, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("machine validation failed", "error", err, "machine_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("machine not found for update", "error", err, "machine_id", id)
		return nil, err
	}

	withSameCode, err := s.repo.GetByCode(dto.MachineCode)
	if err != nil {
		return nil, err
	}
	if withSameCode != nil && withSameCode.ID != id {
		s.logger.Warn("machine code already in use by another machine",
			"machine_code", dto.MachineCode,
			"machine_id", id,
			"owner_id", withSameCode.ID)
		return nil, errors.NewConflictError(
			fmt.Sprintf("machine with code '%s' already exists for another machine", dto.MachineCode),
			errors.ErrCodeDuplicateMachineCode)
	}

	existing.Name = dto.Name
	existing.MachineCode = dto.MachineCode
	existing.Location = dto.Location
	existing.InstallDate = dto.InstallDate
	existing.Status = dto.Status
	existing.MachineType = dto.MachineType
	existing.Manufacturer = dto.Manufacturer
	existing.ModelNumber = dto.ModelNumber
	existing.SerialNumber = dto.SerialNumber
	existing.CriticalityLevel = dto.CriticalityLevel

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update machine", "error", err, "machine_id", id)
		return nil, err
	}

	s.logger.Info("machine updated", "machine_id", id, "machine_code", existing.MachineCode)
	return existing, nil
}

// DeleteMachine removes the machine and all cascade-owned maintenance logs
// and schedules.
func (s *Service) DeleteMachine(id int64) error {
	m, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("machine not found for delete", "error", err, "machine_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete machine", "error", err, "machine_id", id)
		return err
	}

	s.logger.Info("machine deleted with owned logs and schedules",
		"machine_id", id,
		"machine_code", m.MachineCode)

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(), events.NewMachineDeletedEvent(id, m.MachineCode))
	}

	return nil
}
