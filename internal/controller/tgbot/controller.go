package tgbot

import (
	"context"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Controller Telegram-бот: команды и рассылка расписания
type Controller struct {
	bot      *bot.Bot
	handlers *Handlers
	logger   *zap.Logger
}

// New создаёт бота. Сообщения без команды уходят в диалог привязки группы.
func New(token string, handlers *Handlers, logger *zap.Logger) (*Controller, error) {
	b, err := bot.New(token, bot.WithDefaultHandler(handlers.HandleText))
	if err != nil {
		return nil, err
	}
	return &Controller{
		bot:      b,
		handlers: handlers,
		logger:   logger,
	}, nil
}

// RegisterHandlers регистрирует обработчики команд и меню.
// Префиксное совпадение нужно для команд вида /today@bot в группах.
func (c *Controller) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/group", bot.MatchTypePrefix, c.handlers.HandleGroup)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/unbind", bot.MatchTypePrefix, c.handlers.HandleUnbind)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypePrefix, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tomorrow", bot.MatchTypePrefix, c.handlers.HandleTomorrow)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/whoami", bot.MatchTypePrefix, c.handlers.HandleWhoAmI)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypePrefix, c.handlers.HandleCancel)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *Controller) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "group", Description: "🎓 Прив'язати групу"},
		{Command: "today", Description: "📅 Розклад на сьогодні"},
		{Command: "tomorrow", Description: "📆 Розклад на завтра"},
		{Command: "week", Description: "🗓 Розклад на тиждень"},
		{Command: "unbind", Description: "🚫 Відв'язати групи"},
		{Command: "whoami", Description: "👤 Хто я"},
		{Command: "help", Description: "❓ Довідка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *Controller) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
}

// SendDigest отправляет в чат расписание групп на дату
func (c *Controller) SendDigest(ctx context.Context, chatID int64, date time.Time, days []service.SubgroupDay) error {
	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      FormatDay("Розклад на завтра", date, days),
		ParseMode: models.ParseModeHTML,
	})
	return err
}
