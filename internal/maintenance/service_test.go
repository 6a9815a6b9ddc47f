package maintenance_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/maintenance"
)

type mockLogRepository struct {
	logs        map[int64]*maintenance.Log
	createError error
	getError    error
	updateError error
	deleteError error
	updateCalls int
	nextID      int64
}

func newMockLogRepository() *mockLogRepository {
	return &mockLogRepository{
		logs:   make(map[int64]*maintenance.Log),
		nextID: 1,
	}
}

func (m *mockLogRepository) Create(l *maintenance.Log) error {
	if m.createError != nil {
		return m.createError
	}
	l.ID = m.nextID
	m.nextID++
	l.CreatedAt = time.Now()
	l.UpdatedAt = time.Now()
	stored := *l
	m.logs[l.ID] = &stored
	return nil
}

func (m *mockLogRepository) GetByID(id int64) (*maintenance.Log, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	l, exists := m.logs[id]
	if !exists {
		return nil, apperrors.NewNotFoundError("maintenance log not found", apperrors.ErrCodeLogNotFound)
	}
	copied := *l
	return &copied, nil
}

func (m *mockLogRepository) GetAll() ([]*maintenance.Log, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*maintenance.Log, 0, len(m.logs))
	for _, l := range m.logs {
		result = append(result, l)
	}
	return result, nil
}

func (m *mockLogRepository) GetByMachineID(machineID int64) ([]*maintenance.Log, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*maintenance.Log, 0)
	for _, l := range m.logs {
		if l.MachineID == machineID {
			result = append(result, l)
		}
	}
	return result, nil
}

func (m *mockLogRepository) Update(l *maintenance.Log) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.updateCalls++
	stored := *l
	m.logs[l.ID] = &stored
	return nil
}

func (m *mockLogRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.logs, id)
	return nil
}

type mockMachineChecker struct {
	existing   map[int64]bool
	checkError error
}

func newMockMachineChecker(ids ...int64) *mockMachineChecker {
	existing := make(map[int64]bool)
	for _, id := range ids {
		existing[id] = true
	}
	return &mockMachineChecker{existing: existing}
}

func (m *mockMachineChecker) ExistsByID(id int64) (bool, error) {
	if m.checkError != nil {
		return false, m.checkError
	}
	return m.existing[id], nil
}

var _ = Describe("MaintenanceService", func() {
	var (
		service  *maintenance.Service
		mockRepo *mockLogRepository
		machines *mockMachineChecker
		logger   *slog.Logger
	)

	validDTO := func() maintenance.LogDTO {
		return maintenance.LogDTO{
			LogDate:     time.Now().AddDate(0, 0, -1),
			Description: "Replaced hydraulic filter",
			PerformedBy: "Agus Pranoto",
			MachineID:   1,
		}
	}

	BeforeEach(func() {
		mockRepo = newMockLogRepository()
		machines = newMockMachineChecker(1)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = maintenance.NewService(mockRepo, machines, nil, logger)
	})

	Describe("CreateLog", func() {
		It("should default an omitted status to PENDING", func() {
			result, err := service.CreateLog(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(maintenance.StatusPending))
			Expect(result.ID).To(BeNumerically(">", 0))
		})

		It("should use a supplied status verbatim without consulting the transition table", func() {
			dto := validDTO()
			dto.Status = "completed"

			result, err := service.CreateLog(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(maintenance.StatusCompleted))
		})

		It("should reject an unknown status token and create nothing", func() {
			dto := validDTO()
			dto.Status = "bogus"

			result, err := service.CreateLog(dto)

			Expect(result).To(BeNil())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidStatusValue))
			Expect(appErr.Message).To(ContainSubstring("bogus"))
			Expect(mockRepo.logs).To(BeEmpty())
		})

		It("should reject a log against a missing machine", func() {
			dto := validDTO()
			dto.MachineID = 99

			result, err := service.CreateLog(dto)

			Expect(result).To(BeNil())
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
			Expect(mockRepo.logs).To(BeEmpty())
		})

		It("should reject a future log date", func() {
			dto := validDTO()
			dto.LogDate = time.Now().AddDate(0, 0, 2)

			result, err := service.CreateLog(dto)

			Expect(result).To(BeNil())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should reject a negative cost", func() {
			dto := validDTO()
			cost := -10.0
			dto.Cost = &cost

			_, err := service.CreateLog(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("GetLogsByMachineID", func() {
		It("should fail before listing when the machine is missing", func() {
			_, err := service.GetLogsByMachineID(42)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})

		It("should return only the machine's logs", func() {
			machines.existing[2] = true
			dto := validDTO()
			_, err := service.CreateLog(dto)
			Expect(err).ToNot(HaveOccurred())
			dto2 := validDTO()
			dto2.MachineID = 2
			_, err = service.CreateLog(dto2)
			Expect(err).ToNot(HaveOccurred())

			logs, err := service.GetLogsByMachineID(1)
			Expect(err).ToNot(HaveOccurred())
			Expect(logs).To(HaveLen(1))
			Expect(logs[0].MachineID).To(Equal(int64(1)))
		})
	})

	Describe("UpdateLogStatus", func() {
		var logID int64

		BeforeEach(func() {
			result, err := service.CreateLog(validDTO())
			Expect(err).ToNot(HaveOccurred())
			logID = result.ID
		})

		It("should walk the full lifecycle to COMPLETED", func() {
			result, err := service.UpdateLogStatus(logID, "IN_PROGRESS")
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(maintenance.StatusInProgress))

			result, err = service.UpdateLogStatus(logID, "COMPLETED")
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(maintenance.StatusCompleted))
		})

		It("should reject skipping from PENDING to COMPLETED and leave the record unchanged", func() {
			result, err := service.UpdateLogStatus(logID, "COMPLETED")

			Expect(result).To(BeNil())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidStatusTransition))

			stored, err2 := service.GetLogByID(logID)
			Expect(err2).ToNot(HaveOccurred())
			Expect(stored.Status).To(Equal(maintenance.StatusPending))
		})

		It("should reject any move out of a terminal state", func() {
			_, err := service.UpdateLogStatus(logID, "CANCELED")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.UpdateLogStatus(logID, "IN_PROGRESS")
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidStatusTransition))
		})

		It("should treat a same-state change as a valid no-op that still persists", func() {
			before := mockRepo.updateCalls

			result, err := service.UpdateLogStatus(logID, "PENDING")

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(maintenance.StatusPending))
			Expect(mockRepo.updateCalls).To(Equal(before + 1))
		})

		It("should resolve tokens case-insensitively", func() {
			result, err := service.UpdateLogStatus(logID, "in_progress")
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(maintenance.StatusInProgress))
		})

		It("should return not found for a missing log", func() {
			_, err := service.UpdateLogStatus(999, "IN_PROGRESS")
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("UpdateLog", func() {
		var logID int64

		BeforeEach(func() {
			result, err := service.CreateLog(validDTO())
			Expect(err).ToNot(HaveOccurred())
			logID = result.ID
		})

		It("should re-assign all editable fields", func() {
			dto := validDTO()
			dto.Description = "Replaced drive belt"
			cost := 125.50
			dto.Cost = &cost
			dto.Status = "IN_PROGRESS"

			result, err := service.UpdateLog(logID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Description).To(Equal("Replaced drive belt"))
			Expect(*result.Cost).To(Equal(125.50))
			Expect(result.Status).To(Equal(maintenance.StatusInProgress))
		})

		It("should leave the record untouched when the status transition is invalid", func() {
			dto := validDTO()
			dto.Description = "Should not be applied"
			dto.Status = "COMPLETED"

			result, err := service.UpdateLog(logID, dto)

			Expect(result).To(BeNil())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidStatusTransition))

			stored, err2 := service.GetLogByID(logID)
			Expect(err2).ToNot(HaveOccurred())
			Expect(stored.Description).To(Equal("Replaced hydraulic filter"))
			Expect(stored.Status).To(Equal(maintenance.StatusPending))
		})

		It("should keep the stored status when the payload omits it", func() {
			_, err := service.UpdateLogStatus(logID, "IN_PROGRESS")
			Expect(err).ToNot(HaveOccurred())

			dto := validDTO()
			dto.Status = ""
			result, err := service.UpdateLog(logID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(maintenance.StatusInProgress))
		})

		It("should reject retargeting to a missing machine", func() {
			dto := validDTO()
			dto.MachineID = 77

			_, err := service.UpdateLog(logID, dto)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("DeleteLog", func() {
		It("should delete an existing log", func() {
			result, err := service.CreateLog(validDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteLog(result.ID)).To(Succeed())

			_, err = service.GetLogByID(result.ID)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})

		It("should return not found for a missing log", func() {
			err := service.DeleteLog(12345)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("repository failures", func() {
		It("should surface storage errors from create", func() {
			mockRepo.createError = errors.New("connection reset")

			_, err := service.CreateLog(validDTO())
			Expect(err).To(MatchError("connection reset"))
		})
	})
})
