package tgbot

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ScheduleReader расписание для команд бота
type ScheduleReader interface {
	BySubgroups(ctx context.Context, q service.SubgroupQuery) ([]service.SubgroupDay, error)
	Week(ctx context.Context, q service.WeekQuery) (model.Week, error)
}

// ChatBinder привязка чата к группам
type ChatBinder interface {
	Bind(ctx context.Context, telegramID int64, groupCode string) (*model.Group, error)
	Unbind(ctx context.Context, telegramID int64) error
	Groups(ctx context.Context, telegramID int64) ([]model.Group, error)
}

// UserFinder поиск зарегистрированного преподавателя по Telegram ID
type UserFinder interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
}

// Handlers обработчики команд бота
type Handlers struct {
	schedules ScheduleReader
	chats     ChatBinder
	users     UserFinder
	states    *StateManager
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewHandlers(schedules ScheduleReader, chats ChatBinder, users UserFinder, loc *time.Location, logger *zap.Logger) *Handlers {
	return &Handlers{
		schedules: schedules,
		chats:     chats,
		users:     users,
		states:    NewStateManager(),
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	text := "👋 Привіт!\n\n" +
		"Я надсилаю розклад занять НАУ.\n\n" +
		"Спочатку оберіть групу: /group\n" +
		"Усі команди: /help"

	groups, err := h.chats.Groups(ctx, chatID)
	if err != nil {
		h.logger.Error("Failed to get chat groups", zap.Int64("chat_id", chatID), zap.Error(err))
	} else if len(groups) > 0 {
		text += "\n\nГрупи цього чату: " + html.EscapeString(joinGroupCodes(groups))
	}

	h.sendHTML(ctx, b, chatID, text)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Команди:\n\n" +
		"/group - Прив'язати чат до групи\n" +
		"/unbind - Відв'язати чат від усіх груп\n" +
		"/today - Розклад на сьогодні\n" +
		"/tomorrow - Розклад на завтра\n" +
		"/week - Розклад на тиждень картинкою\n" +
		"/whoami - Перевірити реєстрацію викладача\n" +
		"/cancel - Скасувати поточну дію\n\n" +
		"Щовечора бот надсилає розклад на завтра у прив'язані чати."

	h.sendHTML(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleGroup обрабатывает /group. С аргументом привязывает сразу, без него спрашивает код.
func (h *Handlers) HandleGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if code := commandArgs(update.Message.Text); code != "" {
		h.bindGroup(ctx, b, chatID, code)
		return
	}

	h.states.Set(chatID, StateAwaitingGroup)
	h.sendHTML(ctx, b, chatID, "✏️ Надішліть код групи.\n\nДля скасування: /cancel")
}

// HandleUnbind обрабатывает /unbind
func (h *Handlers) HandleUnbind(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if err := h.chats.Unbind(ctx, chatID); err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}
	h.sendHTML(ctx, b, chatID, "✅ Чат відв'язано від усіх груп.")
}

// HandleToday обрабатывает /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendDay(ctx, b, update.Message.Chat.ID, h.now().In(h.loc), "Розклад на сьогодні")
}

// HandleTomorrow обрабатывает /tomorrow
func (h *Handlers) HandleTomorrow(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendDay(ctx, b, update.Message.Chat.ID, h.now().In(h.loc).AddDate(0, 0, 1), "Розклад на завтра")
}

// HandleWeek обрабатывает /week: по картинке на каждую группу чата
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	groups, err := h.chats.Groups(ctx, chatID)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}
	if len(groups) == 0 {
		h.replyError(ctx, b, chatID, service.ErrGroupsNotBound)
		return
	}

	now := h.now().In(h.loc)
	weekNumber := timetable.ISOWeekNumber(now)
	monday := timetable.MondayOfWeek(weekNumber, now.Year(), h.loc)

	for _, group := range groups {
		week, err := h.schedules.Week(ctx, service.WeekQuery{
			GroupCode: group.Code,
			Week:      weekNumber,
			Year:      now.Year(),
		})
		if err != nil {
			h.replyError(ctx, b, chatID, err)
			continue
		}

		title := group.Code
		if len(group.Names) > 0 {
			title = group.Names[0]
		}
		image, err := RenderWeek(title, monday, week, now)
		if err != nil {
			h.replyError(ctx, b, chatID, fmt.Errorf("render week: %w", err))
			continue
		}

		_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
			ChatID:  chatID,
			Photo:   &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(image)},
			Caption: fmt.Sprintf("🗓 %s, %d тиждень", title, week.WeekNumber),
		})
		if err != nil {
			h.logger.Error("Failed to send week image",
				zap.Int64("chat_id", chatID),
				zap.String("group_code", group.Code),
				zap.Error(err),
			)
		}
	}
}

// HandleWhoAmI показывает, к какому преподавателю привязан Telegram ID
func (h *Handlers) HandleWhoAmI(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	chatID := update.Message.Chat.ID

	user, err := h.users.GetByTelegramID(ctx, update.Message.From.ID)
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}
	if user == nil {
		h.sendHTML(ctx, b, chatID, "ℹ️ Ваш Telegram не прив'язаний до викладача.")
		return
	}

	name := user.Short().DisplayName()
	h.sendHTML(ctx, b, chatID, fmt.Sprintf("👤 Ви зареєстровані як <b>%s</b>", html.EscapeString(name)))
}

// HandleCancel обрабатывает /cancel
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if h.states.Clear(chatID) == StateNone {
		h.sendHTML(ctx, b, chatID, "❌ Немає активних дій для скасування.")
		return
	}
	h.sendHTML(ctx, b, chatID, "✅ Дію скасовано.\n\nКоманди: /help")
}

// HandleText обрабатывает обычные сообщения в зависимости от состояния диалога
func (h *Handlers) HandleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	chatID := update.Message.Chat.ID

	switch h.states.Get(chatID) {
	case StateAwaitingGroup:
		h.bindGroup(ctx, b, chatID, update.Message.Text)
	case StateNone:
		h.logger.Debug("No active state, ignoring message", zap.Int64("chat_id", chatID))
	}
}

func (h *Handlers) bindGroup(ctx context.Context, b *bot.Bot, chatID int64, code string) {
	group, err := h.chats.Bind(ctx, chatID, code)
	if err != nil {
		// состояние остаётся, чтобы можно было ввести код ещё раз
		h.replyError(ctx, b, chatID, err)
		return
	}
	h.states.Clear(chatID)

	title := group.Code
	if len(group.Names) > 0 {
		title = group.Names[0]
	}
	h.sendHTML(ctx, b, chatID, fmt.Sprintf(
		"✅ Чат прив'язано до групи <b>%s</b>\n\nРозклад: /today, /tomorrow, /week",
		html.EscapeString(title),
	))
}

func (h *Handlers) sendDay(ctx context.Context, b *bot.Bot, chatID int64, date time.Time, title string) {
	days, err := h.schedules.BySubgroups(ctx, service.SubgroupQuery{
		TelegramID: chatID,
		Day:        date.Day(),
		Month:      int(date.Month()),
		Year:       date.Year(),
	})
	if err != nil {
		h.replyError(ctx, b, chatID, err)
		return
	}
	h.sendHTML(ctx, b, chatID, FormatDay(title, date, days))
}

// replyError отвечает пользователю понятным текстом, непредвиденные ошибки логирует
func (h *Handlers) replyError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	text, known := userMessage(err)
	if !known {
		h.logger.Error("Bot command failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.sendHTML(ctx, b, chatID, text)
}

// sendHTML отправляет сообщение и логирует если не удалось
func (h *Handlers) sendHTML(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func joinGroupCodes(groups []model.Group) string {
	codes := make([]string, 0, len(groups))
	for _, g := range groups {
		codes = append(codes, g.Code)
	}
	return strings.Join(codes, ", ")
}
