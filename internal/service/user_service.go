package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"go.uber.org/zap"
)

// UserStore хранилище преподавателей и сотрудников
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByCode(ctx context.Context, code string) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// Register создаёт пользователя с новым кодом
func (s *UserService) Register(ctx context.Context, user model.User) (*model.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Surname = strings.TrimSpace(user.Surname)
	user.Patronymic = strings.TrimSpace(user.Patronymic)
	if user.Code == "" {
		user.Code = newCode()
	}
	if user.TelegramIDs == nil {
		user.TelegramIDs = []int64{}
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("New user registered",
		zap.String("code", user.Code),
		zap.String("surname", user.Surname),
	)

	return &user, nil
}

// GetByCode пользователь по коду
func (s *UserService) GetByCode(ctx context.Context, code string) (*model.User, error) {
	user, err := s.users.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByTelegramID пользователь, к которому привязан Telegram ID. nil если не привязан.
func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}
	return user, nil
}
