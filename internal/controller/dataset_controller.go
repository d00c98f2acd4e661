package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"ai-datacharts-be/internal/pkg/serverutils"
	"ai-datacharts-be/internal/service"
	"ai-datacharts-be/pkg/apperror"
)

type IDatasetController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type datasetController struct {
	datasetService service.IDatasetService
}

func NewDatasetController(datasetService service.IDatasetService) IDatasetController {
	return &datasetController{
		datasetService: datasetService,
	}
}

func (c *datasetController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dataset/v1")
	h.Post("upload", c.Upload)
}

func (c *datasetController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.InputFormat("A dataset file is required.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperror.InputFormat("Failed to read file: %v", err)
	}
	defer src.Close()
	raw, err := io.ReadAll(src)
	if err != nil {
		return apperror.InputFormat("Failed to read file: %v", err)
	}

	res, err := c.datasetService.Upload(ctx.Context(), fileHeader.Filename, raw)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload dataset", res))
}
