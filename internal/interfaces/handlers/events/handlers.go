package events

import (
	eventsvc "assetrail-backend/internal/application/events"
	"assetrail-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *eventsvc.Service
}

// GetTreasuryEvents GET /api/v1/events/get-treasury-events/:treasury_id
func (h *Handlers) GetTreasuryEvents(c *fiber.Ctx) error {
	treasuryID, err := uuid.Parse(c.Params("treasury_id"))
	if err != nil {
		return response.Error(c, "Invalid UUID format for treasury_id", fiber.StatusBadRequest, nil)
	}
	list, err := h.Service.GetTreasuryEvents(c.Context(), treasuryID)
	if err != nil {
		return response.ServiceError(c, err)
	}
	return response.Success(c, "Events retrieved", fiber.Map{"events": list}, nil)
}
