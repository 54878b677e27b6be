package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userModel "sevasangh_backend/internals/features/users/user/model"
	helper "sevasangh_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *UserController {
	return &UserController{DB: db, Validate: v}
}

// userSortKeys whitelists the ?sort_by= values for the account list.
var userSortKeys = map[string]string{
	"name":    "user_name",
	"role":    "role",
	"created": "created_at",
}

// List returns back-office accounts, optionally filtered by username
// substring and role. Admin only (route-gated).
func (ctl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, helper.AdminOpts)

	order, err := helper.SafeOrderClause(c.Query("sort_by"), c.Query("sort_order", "asc"), userSortKeys, "name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build sort clause")
	}

	q := ctl.DB.Model(&userModel.UserModel{})
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		q = q.Where("LOWER(user_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order(order).
		Offset(paging.Offset()).
		Limit(paging.Limit()).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helper.JsonList(c, "Users fetched", users, helper.BuildPagination(total, paging, len(users)))
}

// SetActive toggles an account's active flag (deactivated accounts cannot
// log in and drop out of the creators dropdown).
func (ctl *UserController) SetActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var body struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.Validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	var user userModel.UserModel
	if err := ctl.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := ctl.DB.Model(&user).Update("is_active", *body.IsActive).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", user)
}
