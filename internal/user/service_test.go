package user_test

import (
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	"github.com/cropmaint/machine-maintenance/internal/user"
)

type mockUserRepository struct {
	users       map[int64]*user.User
	createError error
	getError    error
	updateError error
	nextID      int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*user.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *user.User) error {
	if m.createError != nil {
		return m.createError
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, exists := m.users[id]
	if !exists {
		return nil, apperrors.NewNotFoundError("user not found", apperrors.ErrCodeUserNotFound)
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("user not found", apperrors.ErrCodeUserNotFound)
}

func (m *mockUserRepository) GetAll() ([]*user.User, error) {
	result := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *mockUserRepository) ExistsByID(id int64) (bool, error) {
	_, exists := m.users[id]
	return exists, nil
}

func (m *mockUserRepository) ExistsByUsername(username string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
		logger   *slog.Logger
	)

	validDTO := func(username, email string) user.UserDTO {
		return user.UserDTO{
			Username: username,
			Email:    email,
			Name:     "Agus Pranoto",
			Role:     user.RoleTechnician,
			Password: "secret123",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, user.NewBcryptHasher(4), logger)
	})

	Describe("CreateUser", func() {
		It("should store a hash, never the plaintext password", func() {
			result, err := service.CreateUser(validDTO("agus", "agus@cropmaint.io"))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PasswordHash).ToNot(BeEmpty())
			Expect(result.PasswordHash).ToNot(Equal("secret123"))
		})

		It("should reject a duplicate username", func() {
			_, err := service.CreateUser(validDTO("agus", "agus@cropmaint.io"))
			Expect(err).ToNot(HaveOccurred())

			result, err := service.CreateUser(validDTO("agus", "other@cropmaint.io"))

			Expect(result).To(BeNil())
			Expect(apperrors.IsConflict(err)).To(BeTrue())
			appErr, _ := apperrors.IsAppError(err)
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateUsername))
			Expect(mockRepo.users).To(HaveLen(1))
		})

		It("should reject a duplicate email and leave the original untouched", func() {
			first, err := service.CreateUser(validDTO("agus", "agus@cropmaint.io"))
			Expect(err).ToNot(HaveOccurred())

			result, err := service.CreateUser(validDTO("budi", "agus@cropmaint.io"))

			Expect(result).To(BeNil())
			appErr, _ := apperrors.IsAppError(err)
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeDuplicateEmail))

			stored, err2 := service.GetUserByID(first.ID)
			Expect(err2).ToNot(HaveOccurred())
			Expect(stored.Username).To(Equal("agus"))
		})

		It("should reject an unknown role", func() {
			dto := validDTO("agus", "agus@cropmaint.io")
			dto.Role = "SUPERVISOR"

			_, err := service.CreateUser(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("should require a password on create", func() {
			dto := validDTO("agus", "agus@cropmaint.io")
			dto.Password = ""

			_, err := service.CreateUser(dto)

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("UpdateUser", func() {
		var created *user.User

		BeforeEach(func() {
			var err error
			created, err = service.CreateUser(validDTO("agus", "agus@cropmaint.io"))
			Expect(err).ToNot(HaveOccurred())
		})

		It("should keep the stored hash when the password is omitted", func() {
			dto := validDTO("agus", "agus@cropmaint.io")
			dto.Password = ""
			dto.Name = "Agus P."

			result, err := service.UpdateUser(created.ID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Name).To(Equal("Agus P."))
			Expect(result.PasswordHash).To(Equal(created.PasswordHash))
		})

		It("should re-hash when a new password is supplied", func() {
			dto := validDTO("agus", "agus@cropmaint.io")
			dto.Password = "newsecret"

			result, err := service.UpdateUser(created.ID, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PasswordHash).ToNot(Equal(created.PasswordHash))
			Expect(result.PasswordHash).ToNot(Equal("newsecret"))
		})

		It("should allow keeping its own username and email", func() {
			dto := validDTO("agus", "agus@cropmaint.io")
			dto.Password = ""

			_, err := service.UpdateUser(created.ID, dto)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should reject taking another user's username", func() {
			other, err := service.CreateUser(validDTO("budi", "budi@cropmaint.io"))
			Expect(err).ToNot(HaveOccurred())

			dto := validDTO("agus", "budi2@cropmaint.io")
			dto.Password = ""

			result, err := service.UpdateUser(other.ID, dto)

			Expect(result).To(BeNil())
			Expect(apperrors.IsConflict(err)).To(BeTrue())
		})

		It("should return not found for a missing user", func() {
			dto := validDTO("ghost", "ghost@cropmaint.io")
			_, err := service.UpdateUser(404, dto)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("DeleteUser", func() {
		It("should delete an existing user", func() {
			created, err := service.CreateUser(validDTO("agus", "agus@cropmaint.io"))
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteUser(created.ID)).To(Succeed())

			_, err = service.GetUserByID(created.ID)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})

		It("should return not found for a missing user", func() {
			err := service.DeleteUser(404)
			Expect(apperrors.IsNotFound(err)).To(BeTrue())
		})
	})
})

var _ = Describe("BcryptHasher", func() {
	It("should verify a password against its own hash", func() {
		hasher := user.NewBcryptHasher(4)

		hash, err := hasher.Hash("secret123")
		Expect(err).ToNot(HaveOccurred())
		Expect(hasher.Verify(hash, "secret123")).To(BeTrue())
		Expect(hasher.Verify(hash, "wrong")).To(BeFalse())
	})

	It("should clamp an out-of-range cost to the default", func() {
		hasher := user.NewBcryptHasher(99)
		_, err := hasher.Hash("secret123")
		Expect(err).ToNot(HaveOccurred())
	})
})
