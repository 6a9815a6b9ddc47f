package user

import (
	"fmt"
	"log/slog"

	errors "github.com/cropmaint/machine-maintenance/internal"
)

// Repository defines the data access methods for users.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll() ([]*User, error)
	ExistsByID(id int64) (bool, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	Update(u *User) error
	Delete(id int64) error
}

type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

// CreateUser persists a new user with a hashed password. Username and email
// pre-checks are fast-path rejections; the unique indexes remain the
// authoritative guard.
func (s *Service) CreateUser(dto UserDTO) (*User, error) {
	if err := dto.Validate(true); err != nil {
		s.logger.Error("user validation failed", "error", err)
		return nil, err
	}

	if err := s.checkUniqueness(dto.Username, dto.Email, 0); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	u := &User{
		Username:     dto.Username,
		Email:        dto.Email,
		Name:         dto.Name,
		Role:         dto.Role,
		PasswordHash: hash,
		PhoneNumber:  dto.PhoneNumber,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

func (s *Service) GetUserByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}

func (s *Service) GetAllUsers() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// UpdateUser overwrites the mutable fields of an existing user. A non-empty
// password is re-hashed; an empty one preserves the stored hash.
func (s *Service) UpdateUser(id int64, dto UserDTO) (*User, error) {
	if err := dto.Validate(false); err != nil {
		s.logger.Error("user validation failed", "error", err, "user_id", id)
		return nil, err
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("user not found for update", "error", err, "user_id", id)
		return nil, err
	}

	if err := s.checkUniqueness(dto.Username, dto.Email, id); err != nil {
		return nil, err
	}

	existing.Username = dto.Username
	existing.Email = dto.Email
	existing.Name = dto.Name
	existing.Role = dto.Role
	existing.PhoneNumber = dto.PhoneNumber

	if dto.Password != "" {
		hash, err := s.hasher.Hash(dto.Password)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err, "user_id", id)
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		existing.PasswordHash = hash
	}

	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id, "username", existing.Username)
	return existing, nil
}

func (s *Service) DeleteUser(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		s.logger.Error("user not found for delete", "error", err, "user_id", id)
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// ExistsByID exposes the existence check other services need for
// referential integrity (assigned technicians).
func (s *Service) ExistsByID(id int64) (bool, error) {
	return s.repo.ExistsByID(id)
}

// checkUniqueness rejects username/email collisions with any user other
// than excludeID (0 on create).
func (s *Service) checkUniqueness(username, email string, excludeID int64) error {
	if excludeID != 0 {
		current, err := s.repo.GetByID(excludeID)
		if err != nil {
			return err
		}
		if current.Username == username {
			username = ""
		}
		if current.Email == email {
			email = ""
		}
	}

	if username != "" {
		taken, err := s.repo.ExistsByUsername(username)
		if err != nil {
			return err
		}
		if taken {
			s.logger.Warn("username already in use", "username", username)
			return errors.NewConflictError(
				fmt.Sprintf("username already exists: %s", username),
				errors.ErrCodeDuplicateUsername)
		}
	}

	if email != "" {
		taken, err := s.repo.ExistsByEmail(email)
		if err != nil {
			return err
		}
		if taken {
			s.logger.Warn("email already in use", "email", email)
			return errors.NewConflictError(
				fmt.Sprintf("email already exists: %s", email),
				errors.ErrCodeDuplicateEmail)
		}
	}

	return nil
}
