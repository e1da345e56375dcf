package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fieldtrack/internal/errors"
	"fieldtrack/internal/models"
)

// UserService implements UserServicer backed by GORM.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Authenticate verifies the username/password pair within one brand.
// Unknown users and wrong passwords return the same error.
func (s *UserService) Authenticate(username, brand, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ? AND brand = ?", strings.TrimSpace(username), brand).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// CreateUser registers a new user within a brand.
func (s *UserService) CreateUser(username, brand, password, name, accessType string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Username and password are required")
	}
	if accessType == "" {
		accessType = models.AccessTypeUser
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ? AND brand = ?", username, brand).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := models.User{
		Username:   username,
		Brand:      brand,
		Password:   string(hash),
		Name:       name,
		AccessType: accessType,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID fetches one user, scoped to the caller's brand.
func (s *UserService) GetUserByID(id uint, brand string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ? AND brand = ?", id, brand).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// ListUsers returns every user of one brand, ordered by username.
func (s *UserService) ListUsers(brand string) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("brand = ?", brand).Order("username").Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// UpdateUser changes a user's display name, password, or access level.
// Empty arguments leave the corresponding field untouched.
func (s *UserService) UpdateUser(id uint, brand, name, password, accessType string) (*models.User, error) {
	user, err := s.GetUserByID(id, brand)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if accessType != "" {
		if accessType != models.AccessTypeAdmin && accessType != models.AccessTypeUser {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid access type")
		}
		user.AccessType = accessType
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		user.Password = string(hash)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

// DeleteUser removes one user within a brand.
func (s *UserService) DeleteUser(id uint, brand string) error {
	result := s.db.Where("id = ? AND brand = ?", id, brand).Delete(&models.User{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
