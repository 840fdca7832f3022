// Package auth covers staff login, profiles and moderator management.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bazaarhq/core/internal/models"
	"github.com/bazaarhq/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	errUserNotFound  = errors.New("invalid credentials")
	errWrongPassword = errors.New("invalid credentials")
	ErrDuplicateUser = errors.New("username or email already exists")
	ErrOwnerExists   = errors.New("an account is already registered")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Login verifies credentials and returns a signed token with the account.
// Failed attempts are slowed down to blunt brute forcing.
func (s *Service) Login(login, password string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("(username = ? OR email = ?) AND is_active = ?", login, login, true).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			time.Sleep(3 * time.Second)
			return "", nil, errUserNotFound
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		time.Sleep(3 * time.Second)
		return "", nil, errWrongPassword
	}

	now := time.Now()
	u.LastLogin = &now
	if err := s.db.Model(&u).UpdateColumn("last_login", now).Error; err != nil {
		return "", nil, err
	}

	token, err := jwt.Sign(u.ID, u.Role, jwt.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// Profile returns the account for an ID, nil when absent.
func (s *Service) Profile(userID string) (*models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("id = ? AND is_active = ?", userID, true).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// RegisterOwner creates the owner account. Allowed only while the users
// table is empty, so the endpoint goes dead after first use.
func (s *Service) RegisterOwner(input ModeratorInput) (*models.UserModel, error) {
	var count int64
	if err := s.db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrOwnerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hash),
		FullName: strings.TrimSpace(input.FullName),
		Role:     models.RoleOwner,
		IsActive: true,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("registering owner: %w", err)
	}
	return &u, nil
}

type ModeratorInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// CreateModerator provisions a moderator account on behalf of the owner.
func (s *Service) CreateModerator(input ModeratorInput, ownerID string) (*models.UserModel, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := models.UserModel{
		Username:    strings.TrimSpace(input.Username),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Password:    string(hash),
		FullName:    strings.TrimSpace(input.FullName),
		Role:        models.RoleModerator,
		IsActive:    true,
		CreatedByID: &ownerID,
	}
	if err := s.db.Create(&u).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("creating moderator: %w", err)
	}
	return &u, nil
}

// ListModerators returns all moderator accounts, active and disabled.
func (s *Service) ListModerators() ([]models.UserModel, error) {
	var users []models.UserModel
	err := s.db.Where("role = ?", models.RoleModerator).
		Order("created_at ASC").
		Find(&users).Error
	return users, err
}

type ModeratorUpdate struct {
	Email    *string
	FullName *string
	Password *string
	IsActive *bool
}

// UpdateModerator applies a partial update to a moderator account.
func (s *Service) UpdateModerator(id string, input ModeratorUpdate) (*models.UserModel, error) {
	u, err := s.findModerator(id)
	if err != nil || u == nil {
		return nil, err
	}

	if input.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.FullName != nil {
		u.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hash)
	}
	if input.IsActive != nil {
		u.IsActive = *input.IsActive
	}

	if err := s.db.Save(u).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("updating moderator: %w", err)
	}
	return u, nil
}

// DeleteModerator deactivates the account. Audit references to the user
// stay intact, so the row is kept.
func (s *Service) DeleteModerator(id string) (*models.UserModel, error) {
	u, err := s.findModerator(id)
	if err != nil || u == nil {
		return nil, err
	}

	u.IsActive = false
	if err := s.db.Save(u).Error; err != nil {
		return nil, fmt.Errorf("deleting moderator: %w", err)
	}
	return u, nil
}

func (s *Service) findModerator(id string) (*models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("id = ? AND role = ?", id, models.RoleModerator).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
