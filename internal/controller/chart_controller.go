package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-datacharts-be/internal/dto"
	"ai-datacharts-be/internal/pkg/serverutils"
	"ai-datacharts-be/internal/service"
)

type IChartController interface {
	RegisterRoutes(r fiber.Router)
	BuildManual(ctx *fiber.Ctx) error
}

type chartController struct {
	chartService service.IChartService
}

func NewChartController(chartService service.IChartService) IChartController {
	return &chartController{
		chartService: chartService,
	}
}

func (c *chartController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chart/v1")
	h.Post("manual", c.BuildManual)
}

func (c *chartController) BuildManual(ctx *fiber.Ctx) error {
	var req dto.ManualChartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chartService.BuildManual(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success build manual chart", res))
}
