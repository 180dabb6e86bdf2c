package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validationMessage превращает ошибки валидатора в одну строку
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(parts, "; ")
}

func (s *Server) parseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query: "+err.Error())
	}
	if err := s.validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	return nil
}

func (s *Server) parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body: "+err.Error())
	}
	if err := s.validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	return nil
}

type dayRequest struct {
	GroupCode  string `query:"group_code" validate:"required"`
	Day        int    `query:"day" validate:"min=1,max=31"`
	Month      int    `query:"month" validate:"min=1,max=12"`
	Year       int    `query:"year" validate:"min=2020,max=2100"`
	Onetimes   string `query:"onetimes"`
	Permanents string `query:"permanents"`
}

type weekRequest struct {
	GroupCode  string `query:"group_code" validate:"required"`
	Week       int    `query:"week" validate:"min=1,max=53"`
	Year       int    `query:"year" validate:"min=2020,max=2100"`
	Onetimes   string `query:"onetimes"`
	Permanents string `query:"permanents"`
}

type subgroupRequest struct {
	TelegramID int64  `query:"telegram_id" validate:"required"`
	Day        int    `query:"day" validate:"required"`
	Month      int    `query:"month" validate:"required"`
	Year       int    `query:"year" validate:"required"`
	ShowPlace  string `query:"show_place"`
	Token      string `query:"token"`
	Onetimes   string `query:"onetimes"`
	Permanents string `query:"permanents"`
}

type groupQuery struct {
	GroupCode string `query:"group_code" validate:"required"`
}

type lessonQuery struct {
	GroupCode string `query:"group_code" validate:"required"`
	Code      string `query:"code" validate:"required"`
}

type changeQuery struct {
	GroupCode  string `query:"group_code" validate:"required"`
	ChangeCode string `query:"change_code" validate:"required"`
}

type changesQuery struct {
	GroupCode  string `query:"group_code" validate:"required"`
	LessonCode string `query:"lesson_code"`
}

type specialityQuery struct {
	Speciality string `query:"speciality" validate:"required"`
}

type destroyRequest struct {
	GroupCode string `json:"group_code" validate:"required"`
	Code      string `json:"code" validate:"required"`
}

type lessonRequest struct {
	GroupCode string `json:"group_code" validate:"required"`
	model.RecurringLesson
}

type changeRequest struct {
	GroupCode string `json:"group_code" validate:"required"`
	model.Change
}

type templateRequest struct {
	Speciality string `json:"speciality" validate:"required"`
	model.LessonTemplate
}

type groupTemplateRequest struct {
	GroupCode string `json:"group_code" validate:"required"`
	model.LessonTemplate
}

type groupTemplateDestroyRequest struct {
	GroupCode string `json:"group_code" validate:"required"`
	ID        string `json:"id" validate:"required"`
}

type weekSyncRequest struct {
	GroupCode  string `json:"group_code" validate:"required"`
	Year       *int   `json:"year"`
	Week       *int   `json:"week"`
	WeekNumber int    `json:"week_number"`
}

type weekSyncDeleteRequest struct {
	GroupCode string `query:"group_code" validate:"required"`
	Index     int    `query:"index" validate:"min=0"`
}

// excluded флаг onetimes/permanents: только явное "false" отключает источник занятий
func excluded(v string) bool {
	return v == "false"
}

func truthy(v string) bool {
	return v == "true" || v == "on"
}
