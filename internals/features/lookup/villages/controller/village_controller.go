package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasangh_backend/internals/features/lookup/villages/dto"
	"sevasangh_backend/internals/features/lookup/villages/model"
	helper "sevasangh_backend/internals/helpers"
)

type VillageController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *VillageController {
	return &VillageController{DB: db, Validate: v}
}

func (ctl *VillageController) Create(c *fiber.Ctx) error {
	var req dto.CreateVillageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	village := model.Village{Name: req.Name}
	if err := ctl.DB.Create(&village).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Village with this name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create village")
	}
	return helper.JsonCreated(c, "Village created", village)
}

func (ctl *VillageController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, helper.DefaultOpts)

	q := ctl.DB.Model(&model.Village{})
	if name := strings.TrimSpace(c.Query("village")); name != "" {
		q = q.Where("LOWER(village) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count villages")
	}

	var villages []model.Village
	if err := q.Order("village ASC").
		Offset(paging.Offset()).
		Limit(paging.Limit()).
		Find(&villages).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch villages")
	}
	return helper.JsonList(c, "Villages fetched", villages, helper.BuildPagination(total, paging, len(villages)))
}

func (ctl *VillageController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid village id")
	}

	var village model.Village
	if err := ctl.DB.First(&village, "village_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Village not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if err := ctl.DB.Delete(&village).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete village")
	}
	return helper.JsonDeleted(c, "Village deleted", nil)
}
