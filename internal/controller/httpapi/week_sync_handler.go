package httpapi

import (
	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/gofiber/fiber/v2"
)

type syncResponse struct {
	Sync model.WeekSync `json:"sync"`
}

func (s *Server) addWeekSync(c *fiber.Ctx) error {
	var req weekSyncRequest
	if err := s.parseBody(c, &req); err != nil {
		return err
	}

	sync, err := s.svc.WeekSyncs.Add(c.UserContext(), service.WeekSyncInput{
		GroupCode:  req.GroupCode,
		Year:       req.Year,
		Week:       req.Week,
		WeekNumber: req.WeekNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(syncResponse{Sync: sync})
}

func (s *Server) listWeekSyncs(c *fiber.Ctx) error {
	var q groupQuery
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	syncs, err := s.svc.WeekSyncs.List(c.UserContext(), q.GroupCode)
	if err != nil {
		return err
	}
	if syncs == nil {
		syncs = []model.WeekSync{}
	}
	return c.JSON(syncs)
}

func (s *Server) deleteWeekSync(c *fiber.Ctx) error {
	var q weekSyncDeleteRequest
	if err := s.parseQuery(c, &q); err != nil {
		return err
	}
	sync, err := s.svc.WeekSyncs.Delete(c.UserContext(), q.GroupCode, q.Index)
	if err != nil {
		return err
	}
	return c.JSON(syncResponse{Sync: sync})
}
