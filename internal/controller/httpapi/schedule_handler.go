package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/export"
	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/gofiber/fiber/v2"
)

func (s *Server) dayPublic(c *fiber.Ctx) error {
	return s.dayResponse(c, false)
}

func (s *Server) day(c *fiber.Ctx) error {
	return s.dayResponse(c, true)
}

func (s *Server) dayResponse(c *fiber.Ctx, showPlaces bool) error {
	var req dayRequest
	if err := s.parseQuery(c, &req); err != nil {
		return err
	}

	day, err := s.svc.Schedules.Day(c.UserContext(), service.DayQuery{
		GroupCode:        req.GroupCode,
		Day:              req.Day,
		Month:            req.Month,
		Year:             req.Year,
		ExcludeOnetime:   excluded(req.Onetimes),
		ExcludeRecurring: excluded(req.Permanents),
		ShowPlaces:       showPlaces,
	})
	if err != nil {
		return err
	}
	return c.JSON(day)
}

func (s *Server) weekPublic(c *fiber.Ctx) error {
	return s.weekResponse(c, false)
}

func (s *Server) week(c *fiber.Ctx) error {
	return s.weekResponse(c, true)
}

func (s *Server) weekResponse(c *fiber.Ctx, showPlaces bool) error {
	req, err := s.weekQuery(c)
	if err != nil {
		return err
	}
	req.ShowPlaces = showPlaces

	week, err := s.svc.Schedules.Week(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(week)
}

func (s *Server) weekICS(c *fiber.Ctx) error {
	req, err := s.weekQuery(c)
	if err != nil {
		return err
	}
	week, err := s.svc.Schedules.Week(c.UserContext(), req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	monday := timetable.MondayOfWeek(req.Week, req.Year, s.loc)
	if err := export.ICS(&buf, req.GroupCode, monday, week, time.Now()); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachment(req, "ics"))
	return c.Send(buf.Bytes())
}

func (s *Server) weekXLSX(c *fiber.Ctx) error {
	req, err := s.weekQuery(c)
	if err != nil {
		return err
	}
	week, err := s.svc.Schedules.Week(c.UserContext(), req)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	monday := timetable.MondayOfWeek(req.Week, req.Year, s.loc)
	if err := export.XLSX(&buf, monday, week); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, attachment(req, "xlsx"))
	return c.Send(buf.Bytes())
}

func (s *Server) weekQuery(c *fiber.Ctx) (service.WeekQuery, error) {
	var req weekRequest
	if err := s.parseQuery(c, &req); err != nil {
		return service.WeekQuery{}, err
	}
	return service.WeekQuery{
		GroupCode:        req.GroupCode,
		Week:             req.Week,
		Year:             req.Year,
		ExcludeOnetime:   excluded(req.Onetimes),
		ExcludeRecurring: excluded(req.Permanents),
	}, nil
}

func attachment(q service.WeekQuery, ext string) string {
	return fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_%d_w%02d.%s", q.GroupCode, q.Year, q.Week, ext))
}

func (s *Server) bySubgroups(c *fiber.Ctx) error {
	var req subgroupRequest
	if err := s.parseQuery(c, &req); err != nil {
		return err
	}

	days, err := s.svc.Schedules.BySubgroups(c.UserContext(), service.SubgroupQuery{
		TelegramID:       req.TelegramID,
		Day:              req.Day,
		Month:            req.Month,
		Year:             req.Year,
		ExcludeOnetime:   excluded(req.Onetimes),
		ExcludeRecurring: excluded(req.Permanents),
		ShowPlace:        truthy(req.ShowPlace),
		Token:            req.Token,
	})
	if err != nil {
		return err
	}
	return c.JSON(days)
}
