package schedule

import (
	"fmt"
	"log/slog"
	"time"

	errors "github.com/cropmaint/machine-maintenance/internal"
)

// Repository defines the data access methods for schedules.
type Repository interface {
	Create(s *Schedule) error
	GetByID(id int64) (*Schedule, error)
	GetAll() ([]*Schedule, error)
	GetByMachineID(machineID int64) ([]*Schedule, error)
	GetDue(at time.Time) ([]*Schedule, error)
	Update(s *Schedule) error
	Delete(id int64) error
}

// MachineChecker and UserChecker are the existence checks this service
// needs for referential integrity.
type MachineChecker interface {
	ExistsByID(id int64) (bool, error)
}

type UserChecker interface {
	ExistsByID(id int64) (bool, error)
}

type Service struct {
	repo     Repository
	machines MachineChecker
	users    UserChecker
	logger   *slog.Logger
}

func NewService(repo Repository, machines MachineChecker, users UserChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		machines: machines,
		users:    users,
		logger:   logger,
	}
}

func (s *Service) CreateSchedule(dto ScheduleDTO) (*Schedule, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("schedule validation failed", "error", err)
		return nil, err
	}

	if err := s.checkReferences(dto); err != nil {
		return nil, err
	}

	sched := &Schedule{
		TaskDescription:      dto.TaskDescription,
		DueDate:              dto.DueDate,
		CreatedOn:            time.Now(),
		FrequencyDays:        dto.FrequencyDays,
		FrequencyType:        dto.FrequencyType,
		LastPerformedDate:    dto.LastPerformedDate,
		Active:               dto.isActive(),
		MachineID:            dto.MachineID,
		AssignedTechnicianID: dto.AssignedTechnicianID,
	}

	if err := s.repo.Create(sched); err != nil {
		s.logger.Error("failed to create schedule", "error", err, "machine_id", dto.MachineID)
		return nil, err
	}

	s.logger.Info("schedule created",
		"schedule_id", sched.ID,
		"machine_id", sched.MachineID,
		"due_date", sched.DueDate)

	return sched, nil
}

func (s *Service) GetScheduleByID(id int64) (*Schedule, error) {
	sched, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get schedule", "error", err, "schedule_id", id)
		return nil, err
	}
	return sched, nil
}

func (s *Service) GetAllSchedules() ([]*Schedule, error) {
	schedules, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list schedules", "error", err)
		return nil, err
	}
	return schedules, nil
}

func (s *Service) GetSchedulesByMachineID(machineID int64) ([]*Schedule, error) {
	exists, err := s.machines.ExistsByID(machineID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("machine not found with id %d", machineID),
			errors.ErrCodeMachineNotFound)
	}

	schedules, err := s.repo.GetByMachineID(machineID)
	if err != nil {
		s.logger.Error("failed to list schedules by machine", "error", err, "machine_id", machineID)
		return nil, err
	}
	return schedules, nil
}

// GetDueSchedules lists active schedules whose due date is on or before the
// given time.
func (s *Service) GetDueSchedules(at time.Time) ([]*Schedule, error) {
	schedules, err := s.repo.GetDue(at)
	if err != nil {
		s.logger.Error("failed to list due schedules", "error", err)
		return nil, err
	}
	return schedules, nil
}

func (s *Service) UpdateSchedule(id int64, dto ScheduleDTO) (*Schedule, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("schedule validation failed", "error", err, "schedule_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("schedule not found for update", "error", err, "schedule_id", id)
		return nil, err
	}

	if err := s.checkReferences(dto); err != nil {
		return nil, err
	}

	existing.TaskDescription = dto.TaskDescription
	existing.DueDate = dto.DueDate
	existing.FrequencyDays = dto.FrequencyDays
	existing.FrequencyType = dto.FrequencyType
	existing.LastPerformedDate = dto.LastPerformedDate
	existing.Active = dto.isActive()
	existing.MachineID = dto.MachineID
	existing.AssignedTechnicianID = dto.AssignedTechnicianID

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update schedule", "error", err, "schedule_id", id)
		return nil, err
	}

	s.logger.Info("schedule updated", "schedule_id", id)
	return existing, nil
}

func (s *Service) DeleteSchedule(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Error("schedule not found for delete", "error", err, "schedule_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete schedule", "error", err, "schedule_id", id)
		return err
	}

	s.logger.Info("schedule deleted", "schedule_id", id)
	return nil
}

func (s *Service) checkReferences(dto ScheduleDTO) error {
	exists, err := s.machines.ExistsByID(dto.MachineID)
	if err != nil {
		s.logger.Error("failed to check machine existence", "error", err, "machine_id", dto.MachineID)
		return err
	}
	if !exists {
		s.logger.Warn("referenced machine does not exist", "machine_id", dto.MachineID)
		return errors.NewNotFoundError(
			fmt.Sprintf("machine not found with id %d", dto.MachineID),
			errors.ErrCodeMachineNotFound)
	}

	if dto.AssignedTechnicianID != nil {
		exists, err := s.users.ExistsByID(*dto.AssignedTechnicianID)
		if err != nil {
			s.logger.Error("failed to check technician existence", "error", err, "user_id", *dto.AssignedTechnicianID)
			return err
		}
		if !exists {
			s.logger.Warn("assigned technician does not exist", "user_id", *dto.AssignedTechnicianID)
			return errors.NewNotFoundError(
				fmt.Sprintf("user not found with id %d", *dto.AssignedTechnicianID),
				errors.ErrCodeUserNotFound)
		}
	}

	return nil
}
