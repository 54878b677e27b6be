package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasangh_backend/internals/features/lookup/areas/dto"
	"sevasangh_backend/internals/features/lookup/areas/model"
	helper "sevasangh_backend/internals/helpers"
)

type AreaController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *AreaController {
	return &AreaController{DB: db, Validate: v}
}

func (ctl *AreaController) Create(c *fiber.Ctx) error {
	var req dto.CreateAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	area := model.Area{Name: req.Name}
	if err := ctl.DB.Create(&area).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Area with this name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create area")
	}
	return helper.JsonCreated(c, "Area created", area)
}

func (ctl *AreaController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, helper.DefaultOpts)

	q := ctl.DB.Model(&model.Area{})
	if name := strings.TrimSpace(c.Query("area")); name != "" {
		q = q.Where("LOWER(area) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count areas")
	}

	var areas []model.Area
	if err := q.Order("area ASC").
		Offset(paging.Offset()).
		Limit(paging.Limit()).
		Find(&areas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch areas")
	}
	return helper.JsonList(c, "Areas fetched", areas, helper.BuildPagination(total, paging, len(areas)))
}

func (ctl *AreaController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid area id")
	}

	var area model.Area
	if err := ctl.DB.First(&area, "area_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Area not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if err := ctl.DB.Delete(&area).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete area")
	}
	return helper.JsonDeleted(c, "Area deleted", nil)
}
