package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) getLesson(c *fiber.Ctx) error {
	var q lessonQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	lesson, err := s.svc.Lessons.Get(c.UserContext(), q.GroupCode, q.Code)
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}

func (s *Server) listLessons(c *fiber.Ctx) error {
	var q groupQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	lessons, err := s.svc.Lessons.List(c.UserContext(), q.GroupCode)
	if err != nil {
		return err
	}
	return c.JSON(lessons)
}

func (s *Server) createLesson(c *fiber.Ctx) error {
	var req lessonRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	req.CreatedBy = principalFrom(c).CreatedBy()
	lesson, err := s.svc.Lessons.Create(c.UserContext(), req.GroupCode, req.RecurringLesson)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func (s *Server) updateLesson(c *fiber.Ctx) error {
	var req lessonRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	if req.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}
	lesson, err := s.svc.Lessons.Update(c.UserContext(), req.GroupCode, req.RecurringLesson)
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}

func (s *Server) destroyLesson(c *fiber.Ctx) error {
	var req destroyRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	lesson, err := s.svc.Lessons.Delete(c.UserContext(), req.GroupCode, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}
