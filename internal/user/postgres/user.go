package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/cropmaint/machine-maintenance/internal"
	userDatamodel "github.com/cropmaint/machine-maintenance/internal/core/datamodel/user"
	"github.com/cropmaint/machine-maintenance/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	model := user.ToDataModel(u)
	if err := r.db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.duplicateError(u, err)
		}
		return err
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var model userDatamodel.User
	err := r.db.Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("user not found with id %d", id),
				apperrors.ErrCodeUserNotFound)
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var model userDatamodel.User
	err := r.db.Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(
				fmt.Sprintf("user not found with email %s", email),
				apperrors.ErrCodeUserNotFound)
		}
		return nil, err
	}
	return user.FromDataModel(&model), nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var models []*userDatamodel.User
	if err := r.db.Order("username ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(models), nil
}

func (r *UserRepository) ExistsByID(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	err := r.db.Save(user.ToDataModel(u)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.duplicateError(u, err)
	}
	return err
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
}

// duplicateError maps a unique-index violation to the column that caused
// it. The driver message names the index, so match on it when present.
func (r *UserRepository) duplicateError(u *user.User, err error) error {
	if strings.Contains(err.Error(), "email") {
		return apperrors.NewConflictError(
			fmt.Sprintf("email already exists: %s", u.Email),
			apperrors.ErrCodeDuplicateEmail)
	}
	return apperrors.NewConflictError(
		fmt.Sprintf("username already exists: %s", u.Username),
		apperrors.ErrCodeDuplicateUsername)
}
