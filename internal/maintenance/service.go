package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	errors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/core/events"
)

func machineNotFound(machineID int64) *errors.AppError {
	return errors.NewNotFoundError(
		fmt.Sprintf("machine not found with id %d", machineID),
		errors.ErrCodeMachineNotFound)
}

// Repository defines the data access methods for maintenance logs.
type Repository interface {
	Create(l *Log) error
	GetByID(id int64) (*Log, error)
	GetAll() ([]*Log, error)
	GetByMachineID(machineID int64) ([]*Log, error)
	Update(l *Log) error
	Delete(id int64) error
}

// MachineChecker is the slice of the machine store this service needs for
// referential integrity checks.
type MachineChecker interface {
	ExistsByID(id int64) (bool, error)
}

type Service struct {
	repo     Repository
	machines MachineChecker
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, machines MachineChecker, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		machines: machines,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateLog persists a new log against an existing machine. A blank status
// defaults to PENDING; a supplied status is parsed and used verbatim as the
// initial state. Creation is not a transition, so the transition table is
// not consulted here.
func (s *Service) CreateLog(dto LogDTO) (*Log, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("maintenance log validation failed", "error", err)
		return nil, err
	}

	if err := s.requireMachine(dto.MachineID); err != nil {
		return nil, err
	}

	status := StatusPending
	if strings.TrimSpace(dto.Status) != "" {
		parsed, perr := ParseStatus(dto.Status)
		if perr != nil {
			s.logger.Warn("rejected initial status token", "status", dto.Status)
			return nil, perr
		}
		status = parsed
	}

	l := &Log{
		LogDate:     dto.LogDate,
		Description: dto.Description,
		PerformedBy: dto.PerformedBy,
		Cost:        dto.Cost,
		Status:      status,
		MachineID:   dto.MachineID,
	}

	if err := s.repo.Create(l); err != nil {
		s.logger.Error("failed to create maintenance log", "error", err, "machine_id", dto.MachineID)
		return nil, err
	}

	s.logger.Info("maintenance log created",
		"log_id", l.ID,
		"machine_id", l.MachineID,
		"status", l.Status)

	return l, nil
}

func (s *Service) GetLogByID(id int64) (*Log, error) {
	l, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get maintenance log", "error", err, "log_id", id)
		return nil, err
	}
	return l, nil
}

func (s *Service) GetAllLogs() ([]*Log, error) {
	logs, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list maintenance logs", "error", err)
		return nil, err
	}
	return logs, nil
}

// GetLogsByMachineID lists logs scoped to a machine that must exist.
func (s *Service) GetLogsByMachineID(machineID int64) ([]*Log, error) {
	if err := s.requireMachine(machineID); err != nil {
		return nil, err
	}

	logs, err := s.repo.GetByMachineID(machineID)
	if err != nil {
		s.logger.Error("failed to list maintenance logs by machine", "error", err, "machine_id", machineID)
		return nil, err
	}
	return logs, nil
}

// UpdateLog re-assigns all editable fields. A non-blank status different
// from the stored one goes through the transition table; an invalid
// transition leaves the record unmodified.
func (s *Service) UpdateLog(id int64, dto LogDTO) (*Log, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("maintenance log validation failed", "error", err, "log_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("maintenance log not found for update", "error", err, "log_id", id)
		return nil, err
	}

	if err := s.requireMachine(dto.MachineID); err != nil {
		return nil, err
	}

	oldStatus := existing.Status
	newStatus := oldStatus
	if strings.TrimSpace(dto.Status) != "" {
		parsed, perr := ParseStatus(dto.Status)
		if perr != nil {
			return nil, perr
		}
		if terr := ValidateTransition(oldStatus, parsed); terr != nil {
			s.logger.Warn("rejected status transition on update",
				"log_id", id,
				"from", oldStatus,
				"to", parsed)
			return nil, terr
		}
		newStatus = parsed
	}

	existing.LogDate = dto.LogDate
	existing.Description = dto.Description
	existing.PerformedBy = dto.PerformedBy
	existing.Cost = dto.Cost
	existing.MachineID = dto.MachineID
	existing.Status = newStatus

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update maintenance log", "error", err, "log_id", id)
		return nil, err
	}

	if newStatus != oldStatus {
		s.publishStatusChange(existing, oldStatus, newStatus)
	}

	s.logger.Info("maintenance log updated", "log_id", id, "status", existing.Status)
	return existing, nil
}

// UpdateLogStatus is the dedicated status-only mutation. The transition is
// validated unconditionally; a same-state change is a valid no-op that
// still re-persists the record.
func (s *Service) UpdateLogStatus(id int64, newStatusToken string) (*Log, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("maintenance log not found for status update", "error", err, "log_id", id)
		return nil, err
	}

	newStatus, perr := ParseStatus(newStatusToken)
	if perr != nil {
		s.logger.Warn("rejected status token", "log_id", id, "status", newStatusToken)
		return nil, perr
	}

	oldStatus := existing.Status
	if terr := ValidateTransition(oldStatus, newStatus); terr != nil {
		s.logger.Warn("rejected status transition",
			"log_id", id,
			"from", oldStatus,
			"to", newStatus)
		return nil, terr
	}

	existing.Status = newStatus
	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to persist status change", "error", err, "log_id", id)
		return nil, err
	}

	if newStatus != oldStatus {
		s.publishStatusChange(existing, oldStatus, newStatus)
	}

	s.logger.Info("maintenance log status changed",
		"log_id", id,
		"from", oldStatus,
		"to", newStatus)

	return existing, nil
}

func (s *Service) DeleteLog(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Error("maintenance log not found for delete", "error", err, "log_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete maintenance log", "error", err, "log_id", id)
		return err
	}

	s.logger.Info("maintenance log deleted", "log_id", id)
	return nil
}

func (s *Service) requireMachine(machineID int64) error {
	exists, err := s.machines.ExistsByID(machineID)
	if err != nil {
		s.logger.Error("failed to check machine existence", "error", err, "machine_id", machineID)
		return err
	}
	if !exists {
		s.logger.Warn("referenced machine does not exist", "machine_id", machineID)
		return machineNotFound(machineID)
	}
	return nil
}

func (s *Service) publishStatusChange(l *Log, from, to Status) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(context.Background(),
		events.NewLogStatusChangedEvent(l.ID, l.MachineID, string(from), string(to)))
}
