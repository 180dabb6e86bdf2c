package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) getChange(c *fiber.Ctx) error {
	var q changeQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	change, err := s.svc.Changes.Get(c.UserContext(), q.GroupCode, q.ChangeCode)
	if err != nil {
		return err
	}
	return c.JSON(change)
}

func (s *Server) listChanges(c *fiber.Ctx) error {
	var q changesQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	changes, err := s.svc.Changes.List(c.UserContext(), q.GroupCode, q.LessonCode)
	if err != nil {
		return err
	}
	return c.JSON(changes)
}

func (s *Server) createChange(c *fiber.Ctx) error {
	var req changeRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	req.CreatedBy = principalFrom(c).CreatedBy()
	change, err := s.svc.Changes.Create(c.UserContext(), req.GroupCode, req.Change)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(change)
}

func (s *Server) updateChange(c *fiber.Ctx) error {
	var req changeRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	if req.Code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}
	change, err := s.svc.Changes.Update(c.UserContext(), req.GroupCode, req.Change)
	if err != nil {
		return err
	}
	return c.JSON(change)
}

func (s *Server) destroyChange(c *fiber.Ctx) error {
	var req destroyRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	change, err := s.svc.Changes.Delete(c.UserContext(), req.GroupCode, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(change)
}
