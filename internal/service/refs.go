package service

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
)

// templateExists проверяет ссылку на шаблон группы или специальности
func templateExists(ref string, schedule *model.Schedule, specialityTemplates []model.LessonTemplate) bool {
	_, ok := timetable.ResolveTemplate(timetable.ParseTemplateRef(ref), schedule.LessonTemplates, specialityTemplates)
	return ok
}

// checkLecturers возвращает LecturerNotFoundError, если хотя бы один код не найден
func checkLecturers(ctx context.Context, checker LecturerChecker, codes []string) error {
	if len(codes) == 0 {
		return nil
	}
	missing, err := checker.MissingCodes(ctx, codes)
	if err != nil {
		return fmt.Errorf("check lecturers: %w", err)
	}
	if len(missing) > 0 {
		return &LecturerNotFoundError{Codes: missing}
	}
	return nil
}

// checkPeriod проверяет даты периода действия
func checkPeriod(start, end model.DateTuple) error {
	if !timetable.IsDateValid(start.Day(), start.Month(), start.Year()) ||
		!timetable.IsDateValid(end.Day(), end.Month(), end.Year()) {
		return timetable.ErrInvalidDate
	}
	if start.Compare(end) > 0 {
		return ErrInvalidPeriod
	}
	return nil
}
