package controller

import (
	"property-assistant-be/internal/dto"
	"property-assistant-be/internal/pkg/serverutils"
	"property-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDimensionController interface {
	RegisterRoutes(r fiber.Router)
	Lookup(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Settings(ctx *fiber.Ctx) error
}

type dimensionController struct {
	dimensionService service.IDimensionService
}

func NewDimensionController(dimensionService service.IDimensionService) IDimensionController {
	return &dimensionController{
		dimensionService: dimensionService,
	}
}

func (c *dimensionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dimensions/v1")
	h.Post("lookup", c.Lookup)
	h.Get("house-type", c.List)
	h.Get("settings", c.Settings)
}

func (c *dimensionController) Lookup(ctx *fiber.Ctx) error {
	var req dto.DimensionLookupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.dimensionService.Lookup(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success lookup dimension", res))
}

func (c *dimensionController) List(ctx *fiber.Ctx) error {
	req, err := parseDimensionQuery(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.dimensionService.ListForHouseType(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list dimensions", res))
}

func (c *dimensionController) Settings(ctx *fiber.Ctx) error {
	tenantId, err := uuid.Parse(ctx.Query("tenant_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "tenant_id is required"))
	}

	res, err := c.dimensionService.GetSettings(ctx.Context(), tenantId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dimension settings", res))
}

func parseDimensionQuery(ctx *fiber.Ctx) (*dto.DimensionLookupRequest, error) {
	tenantId, err := uuid.Parse(ctx.Query("tenant_id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "tenant_id is required")
	}
	developmentId, err := uuid.Parse(ctx.Query("development_id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "development_id is required")
	}
	houseTypeCode := ctx.Query("house_type_code")
	if houseTypeCode == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "house_type_code is required")
	}

	req := &dto.DimensionLookupRequest{
		TenantId:      tenantId,
		DevelopmentId: developmentId,
		HouseTypeCode: houseTypeCode,
	}
	if raw := ctx.Query("unit_id"); raw != "" {
		unitId, err := uuid.Parse(raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid unit_id")
		}
		req.UnitId = &unitId
	}
	return req, nil
}
