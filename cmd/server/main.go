package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/nau_schedule/internal/app"
	"github.com/Freeeeeet/nau_schedule/internal/config"
	"github.com/Freeeeeet/nau_schedule/internal/controller/httpapi"
	"github.com/Freeeeeet/nau_schedule/internal/controller/tgbot"
	"github.com/Freeeeeet/nau_schedule/internal/directory"
	"github.com/Freeeeeet/nau_schedule/internal/repository"
	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create DB pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to DB", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	schedules := repository.NewScheduleRepository(pool, logger)
	specialities := repository.NewSpecialityRepository(pool, logger)
	users := repository.NewUserRepository(pool)
	groups := repository.NewGroupRepository(pool, logger)
	apps := repository.NewAppRepository(pool)

	// Справочник университета и кэш
	rdb := app.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, logger)
	if rdb != nil {
		defer rdb.Close()
	}
	client := directory.NewClient(cfg.NAUAPIURL, cfg.NAUAPIToken, logger)
	groupDirectory := directory.NewCachedGroups(client, rdb, cfg.CacheTTL, logger)

	var lecturerSource directory.LecturerSource = users
	if cfg.LecturerSource == config.LecturerSourceDirectory {
		lecturerSource = client
	}
	lecturers := directory.NewCachedLecturers(lecturerSource, rdb, cfg.CacheTTL, logger)

	loc := cfg.Location()
	resolver := timetable.NewResolver(lecturers, loc)

	// Сервисы
	catalog := service.NewCatalog(groupDirectory, specialities)
	scheduleService := service.NewScheduleService(schedules, catalog, groups, apps, resolver, logger)
	lessonService := service.NewLessonService(schedules, catalog, users, logger)
	changeService := service.NewChangeService(schedules, catalog, users, logger)
	templateService := service.NewTemplateService(specialities, schedules, catalog, users, logger)
	weekSyncService := service.NewWeekSyncService(schedules, loc, logger)
	chatService := service.NewChatService(groups, schedules, catalog, logger)
	userService := service.NewUserService(users, logger)

	auth := httpapi.NewAuthenticator(httpapi.AuthConfig{
		Secret:   cfg.JWTSecret,
		Audience: cfg.JWTAudience,
		Issuer:   cfg.JWTIssuer,
	}, apps, logger)

	server := httpapi.NewServer(httpapi.Services{
		Schedules: scheduleService,
		Lessons:   lessonService,
		Changes:   changeService,
		Templates: templateService,
		WeekSyncs: weekSyncService,
		Directory: catalog,
	}, auth, httpapi.Options{
		Location:     loc,
		AllowOrigins: cfg.AllowOrigins,
		RateLimit:    cfg.RateLimit,
	}, logger)

	var wg sync.WaitGroup
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Listen(cfg.HTTPAddr)
	}()

	var scheduler *app.Scheduler
	if cfg.TelegramToken != "" {
		handlers := tgbot.NewHandlers(scheduleService, chatService, userService, loc, logger)
		botController, err := tgbot.New(cfg.TelegramToken, handlers, logger)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Failed to register bot commands", zap.Error(err))
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			botController.Start(ctx)
		}()

		if cfg.DigestCron != "" {
			scheduler = app.NewScheduler(chatService, scheduleService, botController, cfg.DigestCron, cfg.DigestRate, loc, logger)
			if err := scheduler.Start(ctx); err != nil {
				logger.Fatal("Failed to start digest scheduler", zap.Error(err))
			}
		}
	} else {
		logger.Warn("TELEGRAM_TOKEN is not set, bot and daily digest are disabled")
	}

	logger.Info("✅ NAU schedule started",
		zap.String("env", cfg.Environment),
		zap.String("http_addr", cfg.HTTPAddr),
		zap.String("tz", loc.String()),
	)

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
		cancel()
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}

	wg.Wait()
	logger.Info("Stopped")
}
