package app

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DigestSender отправляет расписание на день в чат
type DigestSender interface {
	SendDigest(ctx context.Context, chatID int64, date time.Time, days []service.SubgroupDay) error
}

// ChatLister привязки чатов к группам
type ChatLister interface {
	Bindings(ctx context.Context) ([]model.GroupChat, error)
}

// DayProvider расписание групп чата на день
type DayProvider interface {
	BySubgroups(ctx context.Context, q service.SubgroupQuery) ([]service.SubgroupDay, error)
}

// Scheduler рассылает расписание на завтра по расписанию cron
type Scheduler struct {
	chats   ChatLister
	days    DayProvider
	sender  DigestSender
	spec    string
	loc     *time.Location
	limiter *rate.Limiter
	cron    *cron.Cron
	now     func() time.Time
	logger  *zap.Logger
}

// NewScheduler создаёт планировщик рассылки. perSecond ограничивает число сообщений в секунду.
func NewScheduler(chats ChatLister, days DayProvider, sender DigestSender, spec string, perSecond float64, loc *time.Location, logger *zap.Logger) *Scheduler {
	if perSecond <= 0 {
		perSecond = 20
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return &Scheduler{
		chats:   chats,
		days:    days,
		sender:  sender,
		spec:    spec,
		loc:     loc,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		now:     time.Now,
		logger:  logger,
	}
}

// Start регистрирует задачу и запускает cron
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.loc))

	_, err := s.cron.AddFunc(s.spec, func() {
		s.SendTomorrow(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Starting digest scheduler",
		zap.String("spec", s.spec),
		zap.String("tz", s.loc.String()),
	)
	return nil
}

// Stop останавливает cron и ждёт завершения текущей рассылки
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	s.logger.Info("Stopping digest scheduler")
	<-s.cron.Stop().Done()
}

// SendTomorrow отправляет расписание на завтра во все привязанные чаты
func (s *Scheduler) SendTomorrow(ctx context.Context) {
	tomorrow := s.now().In(s.loc).AddDate(0, 0, 1)
	s.logger.Info("Starting daily digest", zap.String("date", tomorrow.Format(time.DateOnly)))

	bindings, err := s.chats.Bindings(ctx)
	if err != nil {
		s.logger.Error("Failed to list chat bindings", zap.Error(err))
		return
	}

	seen := make(map[int64]struct{})
	sent := 0
	for _, b := range bindings {
		for _, chatID := range b.TelegramIDs {
			if _, ok := seen[chatID]; ok {
				continue
			}
			seen[chatID] = struct{}{}

			if s.sendChat(ctx, chatID, tomorrow) {
				sent++
			}
			if ctx.Err() != nil {
				s.logger.Info("Daily digest cancelled", zap.Int("sent", sent))
				return
			}
		}
	}

	s.logger.Info("Daily digest completed", zap.Int("chats", len(seen)), zap.Int("sent", sent))
}

func (s *Scheduler) sendChat(ctx context.Context, chatID int64, date time.Time) bool {
	days, err := s.days.BySubgroups(ctx, service.SubgroupQuery{
		TelegramID: chatID,
		Day:        date.Day(),
		Month:      int(date.Month()),
		Year:       date.Year(),
	})
	if errors.Is(err, timetable.ErrUncalibrated) {
		s.logger.Warn("Schedule is not calibrated, skipping chat", zap.Int64("chat_id", chatID))
		return false
	}
	if err != nil {
		s.logger.Error("Failed to resolve digest", zap.Int64("chat_id", chatID), zap.Error(err))
		return false
	}
	if !hasLessons(days) {
		return false
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return false
	}
	if err := s.sender.SendDigest(ctx, chatID, date, days); err != nil {
		s.logger.Error("Failed to send digest", zap.Int64("chat_id", chatID), zap.Error(err))
		return false
	}
	return true
}

func hasLessons(days []service.SubgroupDay) bool {
	for _, d := range days {
		if len(d.FirstSubgroup) > 0 || len(d.SecondSubgroup) > 0 {
			return true
		}
	}
	return false
}
