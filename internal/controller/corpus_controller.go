package controller

import (
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/service"
	"ai-tutor-be/pkg/vectorindex"

	"github.com/gofiber/fiber/v2"
)

type ICorpusController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Info(ctx *fiber.Ctx) error
}

type corpusController struct {
	publisherService service.IPublisherService
	index            vectorindex.Index
}

func NewCorpusController(publisherService service.IPublisherService, index vectorindex.Index) ICorpusController {
	return &corpusController{
		publisherService: publisherService,
		index:            index,
	}
}

func (c *corpusController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/corpus/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("ingest", c.Ingest)
	h.Get("info", c.Info)
}

// Ingest accepts corpus sections and queues them for asynchronous indexing.
func (c *corpusController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	for _, section := range req.Sections {
		err := c.publisherService.PublishIngestSection(ctx.Context(), dto.PublishIngestSectionMessage{
			Content: section.Content,
			Section: section.Section,
			Week:    section.Week,
			Topic:   section.Topic,
		})
		if err != nil {
			return err
		}
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Sections queued for indexing", dto.IngestResponse{
		Accepted: len(req.Sections),
	}))
}

func (c *corpusController) Info(ctx *fiber.Ctx) error {
	count, err := c.index.Count(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get corpus info", dto.CorpusInfoResponse{
		Documents: count,
		Dimension: c.index.Dimension(),
	}))
}
