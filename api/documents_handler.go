package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/rosemira/rosebot/pkg/knowledge"
)

// IngestRequest is the request body for POST /v1/documents.
type IngestRequest struct {
	Documents []knowledge.IngestDocument `json:"documents"`
}

// IngestResponse reports how many documents were stored.
type IngestResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// handleIngestDocuments embeds and stores documents in the knowledge base.
func (s *Server) handleIngestDocuments(c *fiber.Ctx) error {
	if s.base == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Detail: "ingest is not configured: knowledge base is required",
		})
	}

	var req IngestRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Detail: "Invalid JSON payload",
		})
	}

	if len(req.Documents) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Detail: "documents array is required",
		})
	}

	if err := s.base.Ingest(c.Context(), req.Documents); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Detail: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(IngestResponse{
		Status: "created",
		Count:  len(req.Documents),
	})
}
