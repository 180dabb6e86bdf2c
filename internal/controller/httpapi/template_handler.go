package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) templatesIndex(c *fiber.Ctx) error {
	var q specialityQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	templates, err := s.svc.Templates.Index(c.UserContext(), q.Speciality)
	if err != nil {
		return err
	}
	return c.JSON(templates)
}

func (s *Server) createTemplate(c *fiber.Ctx) error {
	var req templateRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	req.CreatedBy = principalFrom(c).CreatedBy()
	tpl, err := s.svc.Templates.Create(c.UserContext(), req.Speciality, req.LessonTemplate)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

func (s *Server) templatesByGroup(c *fiber.Ctx) error {
	var q groupQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	templates, err := s.svc.Templates.ByGroup(c.UserContext(), q.GroupCode)
	if err != nil {
		return err
	}
	return c.JSON(templates)
}

func (s *Server) groupTemplates(c *fiber.Ctx) error {
	var q groupQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	templates, err := s.svc.Templates.GroupTemplates(c.UserContext(), q.GroupCode)
	if err != nil {
		return err
	}
	return c.JSON(templates)
}

func (s *Server) createGroupTemplate(c *fiber.Ctx) error {
	var req groupTemplateRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	req.CreatedBy = principalFrom(c).CreatedBy()
	tpl, err := s.svc.Templates.CreateGroupTemplate(c.UserContext(), req.GroupCode, req.LessonTemplate)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

func (s *Server) destroyGroupTemplate(c *fiber.Ctx) error {
	var req groupTemplateDestroyRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}
	tpl, err := s.svc.Templates.DeleteGroupTemplate(c.UserContext(), req.GroupCode, req.ID)
	if err != nil {
		return err
	}
	return c.JSON(tpl)
}
