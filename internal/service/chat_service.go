package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"go.uber.org/zap"
)

// ChatService привязки чатов Telegram к группам
type ChatService struct {
	bindings  ChatBindings
	schedules ScheduleStore
	catalog   *Catalog
	logger    *zap.Logger
}

func NewChatService(bindings ChatBindings, schedules ScheduleStore, catalog *Catalog, logger *zap.Logger) *ChatService {
	return &ChatService{
		bindings:  bindings,
		schedules: schedules,
		catalog:   catalog,
		logger:    logger,
	}
}

// Bind привязывает чат к группе. Группа должна быть в справочнике и иметь расписание.
func (s *ChatService) Bind(ctx context.Context, telegramID int64, groupCode string) (*model.Group, error) {
	groupCode = strings.TrimSpace(groupCode)

	group, err := s.catalog.Group(ctx, groupCode)
	if err != nil {
		return nil, err
	}
	schedule, err := s.schedules.GetByGroup(ctx, group.Code)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	if err := s.bindings.Bind(ctx, group.Code, telegramID); err != nil {
		return nil, fmt.Errorf("bind chat: %w", err)
	}

	s.logger.Info("Chat bound to group",
		zap.Int64("telegram_id", telegramID),
		zap.String("group_code", group.Code),
	)

	return group, nil
}

// Unbind отвязывает чат от всех групп
func (s *ChatService) Unbind(ctx context.Context, telegramID int64) error {
	if err := s.bindings.Unbind(ctx, telegramID); err != nil {
		return fmt.Errorf("unbind chat: %w", err)
	}
	s.logger.Info("Chat unbound", zap.Int64("telegram_id", telegramID))
	return nil
}

// Groups группы, привязанные к чату
func (s *ChatService) Groups(ctx context.Context, telegramID int64) ([]model.Group, error) {
	codes, err := s.bindings.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get chat groups: %w", err)
	}

	groups := make([]model.Group, 0, len(codes))
	for _, code := range codes {
		group, err := s.catalog.Group(ctx, code)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, nil
}

// Bindings все привязки для рассылки
func (s *ChatService) Bindings(ctx context.Context) ([]model.GroupChat, error) {
	bindings, err := s.bindings.ListBindings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}
	return bindings, nil
}
