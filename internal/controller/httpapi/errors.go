package httpapi

import (
	"errors"

	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// clientErrors ошибки, текст которых отдаётся клиенту со статусом 400
var clientErrors = []error{
	timetable.ErrInvalidDate,
	timetable.ErrUncalibrated,
	service.ErrScheduleNotFound,
	service.ErrGroupNotFound,
	service.ErrGroupsNotBound,
	service.ErrFacultyNotFound,
	service.ErrSpecialityNotFound,
	service.ErrLessonNotFound,
	service.ErrChangeNotFound,
	service.ErrUserNotFound,
	service.ErrTemplateNotFound,
	service.ErrLecturerNotFound,
	service.ErrInvalidWeekSync,
	service.ErrInvalidPeriod,
	service.ErrTokenRequired,
	service.ErrTokenNotFound,
	service.ErrTokenForbidden,
}

type errorResponse struct {
	Error string `json:"error"`
}

// errorHandler отвечает {"error": "..."}. Ошибки предметной области уходят с 400,
// непредвиденные логируются и скрываются за "general error".
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(errorResponse{Error: message})
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}

	var tplErr *service.TemplateNotFoundError
	if errors.As(err, &tplErr) {
		return fiber.StatusBadRequest, tplErr.Error()
	}
	var lectErr *service.LecturerNotFoundError
	if errors.As(err, &lectErr) {
		return fiber.StatusBadRequest, lectErr.Error()
	}
	var syncErr *service.WeekSyncError
	if errors.As(err, &syncErr) {
		return fiber.StatusBadRequest, syncErr.Error()
	}

	for _, known := range clientErrors {
		if errors.Is(err, known) {
			return fiber.StatusBadRequest, known.Error()
		}
	}

	return fiber.StatusInternalServerError, "general error"
}
