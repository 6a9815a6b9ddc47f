package maintenance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/maintenance"
)

var _ = Describe("Status", func() {
	Describe("ParseStatus", func() {
		It("should resolve canonical tokens", func() {
			for _, token := range []string{"PENDING", "IN_PROGRESS", "COMPLETED", "CANCELED"} {
				status, err := maintenance.ParseStatus(token)
				Expect(err).To(BeNil())
				Expect(string(status)).To(Equal(token))
			}
		})

		It("should resolve tokens case-insensitively", func() {
			status, err := maintenance.ParseStatus("in_progress")
			Expect(err).To(BeNil())
			Expect(status).To(Equal(maintenance.StatusInProgress))

			status, err = maintenance.ParseStatus("Completed")
			Expect(err).To(BeNil())
			Expect(status).To(Equal(maintenance.StatusCompleted))
		})

		It("should trim surrounding whitespace", func() {
			status, err := maintenance.ParseStatus("  pending  ")
			Expect(err).To(BeNil())
			Expect(status).To(Equal(maintenance.StatusPending))
		})

		It("should reject an unknown token naming it and the valid set", func() {
			_, err := maintenance.ParseStatus("bogus")
			Expect(err).ToNot(BeNil())
			Expect(err.Code).To(Equal(apperrors.ErrCodeInvalidStatusValue))
			Expect(err.Message).To(ContainSubstring("bogus"))
			Expect(err.Message).To(ContainSubstring("PENDING, IN_PROGRESS, COMPLETED, CANCELED"))
		})
	})

	Describe("CanTransition", func() {
		type pair struct {
			from    maintenance.Status
			to      maintenance.Status
			allowed bool
		}

		pairs := []pair{
			{maintenance.StatusPending, maintenance.StatusPending, true},
			{maintenance.StatusPending, maintenance.StatusInProgress, true},
			{maintenance.StatusPending, maintenance.StatusCompleted, false},
			{maintenance.StatusPending, maintenance.StatusCanceled, true},

			{maintenance.StatusInProgress, maintenance.StatusPending, false},
			{maintenance.StatusInProgress, maintenance.StatusInProgress, true},
			{maintenance.StatusInProgress, maintenance.StatusCompleted, true},
			{maintenance.StatusInProgress, maintenance.StatusCanceled, true},

			{maintenance.StatusCompleted, maintenance.StatusPending, false},
			{maintenance.StatusCompleted, maintenance.StatusInProgress, false},
			{maintenance.StatusCompleted, maintenance.StatusCompleted, true},
			{maintenance.StatusCompleted, maintenance.StatusCanceled, false},

			{maintenance.StatusCanceled, maintenance.StatusPending, false},
			{maintenance.StatusCanceled, maintenance.StatusInProgress, false},
			{maintenance.StatusCanceled, maintenance.StatusCompleted, false},
			{maintenance.StatusCanceled, maintenance.StatusCanceled, true},
		}

		It("should permit exactly the documented pairs", func() {
			for _, p := range pairs {
				Expect(maintenance.CanTransition(p.from, p.to)).To(
					Equal(p.allowed),
					"transition %s to %s", p.from, p.to)
			}
		})
	})

	Describe("ValidateTransition", func() {
		It("should return nil for an allowed transition", func() {
			Expect(maintenance.ValidateTransition(
				maintenance.StatusPending, maintenance.StatusInProgress)).To(BeNil())
		})

		It("should return nil for a same-state transition", func() {
			Expect(maintenance.ValidateTransition(
				maintenance.StatusCompleted, maintenance.StatusCompleted)).To(BeNil())
		})

		It("should carry both states in the rejection", func() {
			err := maintenance.ValidateTransition(
				maintenance.StatusCompleted, maintenance.StatusInProgress)
			Expect(err).ToNot(BeNil())
			Expect(err.Type).To(Equal(apperrors.ErrorTypeTransition))
			Expect(err.Code).To(Equal(apperrors.ErrCodeInvalidStatusTransition))
			Expect(err.Message).To(ContainSubstring("COMPLETED"))
			Expect(err.Message).To(ContainSubstring("IN_PROGRESS"))
		})
	})

	Describe("IsTerminal", func() {
		It("should mark only COMPLETED and CANCELED as terminal", func() {
			Expect((&maintenance.Log{Status: maintenance.StatusCompleted}).IsTerminal()).To(BeTrue())
			Expect((&maintenance.Log{Status: maintenance.StatusCanceled}).IsTerminal()).To(BeTrue())
			Expect((&maintenance.Log{Status: maintenance.StatusPending}).IsTerminal()).To(BeFalse())
			Expect((&maintenance.Log{Status: maintenance.StatusInProgress}).IsTerminal()).To(BeFalse())
		})
	})
})
