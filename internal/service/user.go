package service

import (
	"context"
	"fmt"

	"github.com/shenikar/hydrant_inspection_system/internal/models"
	"github.com/sirupsen/logrus"
)

// UserRepository определяет контракт для работы с учётными записями дружины
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// UserService определяет контракт сервиса учётных записей
type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	repo   UserRepository
	logger *logrus.Logger
}

// NewUserService создает новый сервис учётных записей
func NewUserService(repo UserRepository, logger *logrus.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger,
	}
}

// CreateUser создает учётную запись члена дружины
func (s *userService) CreateUser(ctx context.Context, user *models.User) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "CreateUser",
		"name":    user.Name,
	})
	log.Info("Creating user")

	if !validRole(user.Role) {
		log.WithField("role", user.Role).Warn("Unknown brigade role")
		return fmt.Errorf("service: unknown brigade role %q", user.Role)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		log.WithError(err).Error("Failed to create user")
		return fmt.Errorf("service: could not create user: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User created successfully")
	return nil
}

// GetUser возвращает учётную запись по id
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", id).Error("Failed to get user")
		return nil, fmt.Errorf("service: could not get user: %w", err)
	}
	return user, nil
}

// UpdateUser обновляет профиль: имя, принадлежность и роль
func (s *userService) UpdateUser(ctx context.Context, user *models.User) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "UpdateUser",
		"user_id": user.ID,
	})
	log.Info("Updating user")

	if !validRole(user.Role) {
		log.WithField("role", user.Role).Warn("Unknown brigade role")
		return fmt.Errorf("service: unknown brigade role %q", user.Role)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		log.WithError(err).Error("Failed to update user")
		return fmt.Errorf("service: could not update user: %w", err)
	}

	log.Info("User updated successfully")
	return nil
}

// DeleteUser удаляет учётную запись
func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("user_id", id).Error("Failed to delete user")
		return fmt.Errorf("service: could not delete user: %w", err)
	}
	s.logger.WithField("user_id", id).Info("User deleted successfully")
	return nil
}

func validRole(role string) bool {
	switch role {
	case models.RoleMember, models.RoleSquadLeader, models.RoleSectionChief,
		models.RoleDivisionChief, models.RoleViceDivisionChief,
		models.RoleBrigadeChief, models.RoleViceBrigadeChief:
		return true
	}
	return false
}
