package schedule_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/schedule"
)

type mockScheduleRepository struct {
	schedules   map[int64]*schedule.Schedule
	createError error
	getError    error
	nextID      int64
}

func newMockScheduleRepository() *mockScheduleRepository {
	return &mockScheduleRepository{
		schedules: make(map[int64]*schedule.Schedule),
		nextID:    1,
	}
}

func (m *mockScheduleRepository) Create(s *schedule.Schedule) error {
	if m.createError != nil {
		return m.createError
	}
	s.ID = m.nextID
	m.nextID++
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	stored := *s
	m.schedules[s.ID] = &stored
	return nil
}

func (m *mockScheduleRepository) GetByID(id int64) (*schedule.Schedule, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	s, exists := m.schedules[id]
	if !exists {
		return nil, apperrors.NewNotFoundError("schedule not found", apperrors.ErrCodeScheduleNotFound)
	}
	copied := *s
	return &copied, nil
}

func (m *mockScheduleRepository) GetAll() ([]*schedule.Schedule, error) {
	result := make([]*schedule.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		result = append(result, s)
	}
	return result, nil
}

func (m *mockScheduleRepository) GetByMachineID(machineID int64) ([]*schedule.Schedule, error) {
	result := make([]*schedule.Schedule, 0)
	for _, s := range m.schedules {
		if s.MachineID == machineID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepository) GetDue(at time.Time) ([]*schedule.Schedule, error) {
	result := make([]*schedule.Schedule, 0)
	for _, s := range m.schedules {
		if s.IsDue(at) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockScheduleRepository) Update(s *schedule.Schedule) error {
	stored := *s
	m.schedules[s.ID] = &stored
	return nil
}

func (m *mockScheduleRepository) Delete(id int64) error {
	delete(m.schedules, id)
	return nil
}

type mockExistenceChecker struct {
	existing map[int64]bool
}

func newMockExistenceChecker(ids ...int64) *mockExistenceChecker {
	existing := make(map[int64]bool)
	for _, id := range ids {
		existing[id] = true
	}
	return &mockExistenceChecker{existing: existing}
}

func (m *mockExistenceChecker) ExistsByID(id int64) (bool, error) {
	return m.existing[id], nil
}

var _ = Describe("ScheduleService", func() {
	var (
		service  *schedule.Service
		mockRepo *mockScheduleRepository
		machines *mockExistenceChecker
		users    *mockExistenceChecker
		logger   *slog.Logger
	)

	validDTO := func() schedule.ScheduleDTO {
		return schedule.ScheduleDTO{
			TaskDescription: "Grease main bearing",
			DueDate:         time.Now().AddDate(0, 0, 7),
			FrequencyDays:   30,
			FrequencyType:   schedule.FrequencyMonthly,
			MachineID:       1,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockScheduleRepository()
		machines = newMockExistenceChecker(1)
		users = newMockExistenceChecker(10)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = schedule.NewService(mockRepo, machines, users, logger)
	})

	Describe("CreateSchedule", func() {
		It("should create a schedule defaulting to active", func() {
			result, err := service.CreateSchedule(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.Active).To(BeTrue())
			Expect(result.CreatedOn).ToNot(BeZero())
		})

		It("should honor an explicit inactive flag", func() {
			dto := validDTO()
			inactive := false
			dto.Active = &inactive

			result, err := service.CreateSchedule(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Active).To(BeFalse())
		})

		It("should reject a schedule against a missing machine", func() {
			dto := validDTO()
			dto.MachineID = 99

			result, err := service.CreateSchedule(dto)

			Expect(result).To(BeNil())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeMachineNotFound))
		})

		It("should reject an assignment to a missing technician", func() {
			dto := validDTO()
			ghost := int64(77)
			dto.AssignedTechnicianID = &ghost

			result, err := service.CreateSchedule(dto)

			Expect(result).To(BeNil())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeUserNotFound))
		})

		It("should accept an assignment to an existing technician", func() {
			dto := validDTO()
			tech := int64(10)
			dto.AssignedTechnicianID = &tech

			result, err := service.CreateSchedule(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(*result.AssignedTechnicianID).To(Equal(tech))
		})

		It("should reject a non-positive frequency", func() {
			dto := validDTO()
			dto.FrequencyDays = 0

			_, err := service.CreateSchedule(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should reject an unknown frequency type", func() {
			dto := validDTO()
			dto.FrequencyType = "FORTNIGHTLY"

			_, err := service.CreateSchedule(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("GetDueSchedules", func() {
		It("should return only active schedules due on or before the given time", func() {
			overdue := validDTO()
			overdue.DueDate = time.Now().AddDate(0, 0, -3)
			_, err := service.CreateSchedule(overdue)
			Expect(err).ToNot(HaveOccurred())

			inactive := validDTO()
			inactive.DueDate = time.Now().AddDate(0, 0, -3)
			off := false
			inactive.Active = &off
			_, err = service.CreateSchedule(inactive)
			Expect(err).ToNot(HaveOccurred())

			upcoming := validDTO()
			_, err = service.CreateSchedule(upcoming)
			Expect(err).ToNot(HaveOccurred())

			due, err := service.GetDueSchedules(time.Now())
			Expect(err).ToNot(HaveOccurred())
			Expect(due).To(HaveLen(1))
		})
	})

	Describe("GetSchedulesByMachineID", func() {
		It("should fail when the machine is missing", func() {
			_, err := service.GetSchedulesByMachineID(42)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("UpdateSchedule", func() {
		It("should re-assign all editable fields", func() {
			created, err := service.CreateSchedule(validDTO())
			Expect(err).ToNot(HaveOccurred())

			dto := validDTO()
			dto.TaskDescription = "Inspect hydraulic hoses"
			dto.FrequencyDays = 14

			result, err := service.UpdateSchedule(created.ID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TaskDescription).To(Equal("Inspect hydraulic hoses"))
			Expect(result.FrequencyDays).To(Equal(14))
		})

		It("should return not found for a missing schedule", func() {
			_, err := service.UpdateSchedule(404, validDTO())
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("DeleteSchedule", func() {
		It("should delete an existing schedule", func() {
			created, err := service.CreateSchedule(validDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteSchedule(created.ID)).To(Succeed())

			_, err = service.GetScheduleByID(created.ID)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})

		It("should return not found for a missing schedule", func() {
			err := service.DeleteSchedule(404)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})
})
