package httpapi

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Options настройки HTTP-сервера
type Options struct {
	Location     *time.Location
	AllowOrigins string
	// RateLimit запросов в минуту с одного IP, 0 отключает ограничение
	RateLimit int
}

// Server HTTP API расписания
type Server struct {
	app      *fiber.App
	svc      Services
	auth     *Authenticator
	validate *validator.Validate
	loc      *time.Location
	logger   *zap.Logger
}

func NewServer(svc Services, auth *Authenticator, opts Options, logger *zap.Logger) *Server {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}

	s := &Server{
		svc:      svc,
		auth:     auth,
		validate: newValidator(),
		loc:      opts.Location,
		logger:   logger,
	}

	s.app = fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(accessLog(logger))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: "GET,HEAD,PUT,PATCH,POST,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	s.app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	if opts.RateLimit > 0 {
		s.app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusTooManyRequests, "too many requests")
			},
		}))
	}

	s.routes()
	return s
}

// App fiber-приложение, используется в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen блокирует до остановки сервера
func (s *Server) Listen(addr string) error {
	s.logger.Info("🚀 HTTP server listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

// Shutdown дожидается завершения активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	s.app.Get("/groups", s.groups)
	s.app.Get("/groups/index", s.groups)
	s.app.Get("/lecturers", s.lecturers)
	s.app.Get("/lecturers/index", s.lecturers)
	s.app.Get("/users/lookup", s.auth.Require(), s.lookup)

	purple := s.app.Group("/purple")

	schedule := purple.Group("/schedule")
	schedule.Get("/public", s.dayPublic)
	schedule.Get("/week/public", s.weekPublic)
	schedule.Get("/week/ics", s.weekICS)
	schedule.Get("/week/xlsx", s.weekXLSX)
	schedule.Get("/week", s.auth.Require(), s.week)
	schedule.Get("/", s.auth.Require(), s.day)

	lessons := purple.Group("/lessons")
	lessons.Get("/getSingle", s.auth.Require(PermReadLessons), s.getLesson)
	lessons.Get("/getMany", s.auth.Require(PermReadLessons), s.listLessons)
	lessons.Post("/create", s.auth.Require(PermWriteLessons), s.createLesson)
	lessons.Post("/update", s.auth.Require(PermWriteLessons), s.updateLesson)
	lessons.Post("/destroy", s.auth.Require(PermWriteLessons), s.destroyLesson)

	changes := purple.Group("/changes")
	changes.Get("/getSingle", s.auth.Require(PermReadLessons), s.getChange)
	changes.Get("/getMany", s.auth.Require(PermReadLessons), s.listChanges)
	changes.Post("/create", s.auth.Require(PermWriteLessons), s.createChange)
	changes.Post("/update", s.auth.Require(PermWriteLessons), s.updateChange)
	changes.Post("/destroy", s.auth.Require(PermWriteLessons), s.destroyChange)

	templates := purple.Group("/templates")
	templates.Get("/index", s.auth.Require(PermReadTemplates), s.templatesIndex)
	templates.Post("/create", s.auth.Require(PermCreateTemplates), s.createTemplate)
	templates.Get("/byGroup", s.auth.Require(PermReadTemplates), s.templatesByGroup)
	templates.Get("/group", s.auth.Require(PermReadTemplates), s.groupTemplates)
	templates.Post("/group/create", s.auth.Require(PermCreateTemplates), s.createGroupTemplate)
	templates.Post("/group/destroy", s.auth.Require(PermCreateTemplates), s.destroyGroupTemplate)

	syncs := purple.Group("/syncWeek")
	syncs.Get("/", s.auth.Require(PermReadLessons, PermWriteSync), s.listWeekSyncs)
	syncs.Post("/", s.auth.Require(PermWriteSync), s.addWeekSync)
	syncs.Delete("/", s.auth.Require(PermWriteSync), s.deleteWeekSync)

	s.app.Get("/violet/scheduleBySubgroupsTg", s.bySubgroups)

	s.app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "unknown method")
	})
}

// accessLog пишет строку на каждый запрос. Ошибку обработчика сразу отдаёт
// в ErrorHandler, чтобы в лог попал итоговый статус.
func accessLog(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Info("HTTP request",
			zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		)
		return nil
	}
}
