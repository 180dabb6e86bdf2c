package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

type appPrincipal struct {
	App   string   `json:"app"`
	Name  string   `json:"name"`
	Flags []string `json:"flags"`
}

func (s *Server) groups(c *fiber.Ctx) error {
	groups, err := s.svc.Directory.Groups(c.UserContext(), c.Query("faculty"))
	if err != nil {
		return err
	}
	return c.JSON(groups)
}

func (s *Server) lecturers(c *fiber.Ctx) error {
	lecturers, err := s.svc.Directory.Lecturers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(lecturers)
}

// lookup отдаёт данные того, кто сделал запрос
func (s *Server) lookup(c *fiber.Ctx) error {
	p := principalFrom(c)
	if p == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "token is required")
	}
	if p.User != nil {
		return c.JSON(p.User)
	}
	return c.JSON(appPrincipal{
		App:   p.App.Code,
		Name:  p.App.Name,
		Flags: p.Token.Flags,
	})
}
