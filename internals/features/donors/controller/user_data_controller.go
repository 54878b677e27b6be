package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sevasangh_backend/internals/features/donors/dto"
	"sevasangh_backend/internals/features/donors/model"
	donorService "sevasangh_backend/internals/features/donors/service"
	areaModel "sevasangh_backend/internals/features/lookup/areas/model"
	villageModel "sevasangh_backend/internals/features/lookup/villages/model"
	helper "sevasangh_backend/internals/helpers"
)

type UserDataController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *UserDataController {
	return &UserDataController{DB: db, Validate: v}
}

/* ========================= Create ========================= */

func (ctl *UserDataController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserDataRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	if req.AreaID != nil {
		var area areaModel.Area
		if err := ctl.DB.First(&area, "area_id = ?", *req.AreaID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Area ID not found")
		}
	}
	if req.VillageID != nil {
		var village villageModel.Village
		if err := ctl.DB.First(&village, "village_id = ?", *req.VillageID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Village ID not found")
		}
	}

	donor := model.UserData{
		Usercode:            req.Usercode,
		Name:                req.Name,
		Surname:             req.Surname,
		FatherOrHusbandName: req.FatherOrHusbandName,
		MotherName:          req.MotherName,
		Gender:              req.Gender,
		MobileNo1:           req.MobileNo1,
		MobileNo2:           req.MobileNo2,
		AreaID:              req.AreaID,
		VillageID:           req.VillageID,
		Address:             req.Address,
		Pincode:             req.Pincode,
		Occupation:          req.Occupation,
		Country:             req.Country,
		State:               req.State,
		EmailID:             req.EmailID,
		Type:                req.Type,
		ActiveFlag:          true,
	}
	if req.BirthDate != "" {
		t, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "birth_date must be YYYY-MM-DD")
		}
		bd := datatypes.Date(t)
		donor.BirthDate = &bd
	}

	if err := ctl.DB.Create(&donor).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create donor record")
	}
	return helper.JsonCreated(c, "Donor record created", donor)
}

/* ========================= List / export ========================= */

func (ctl *UserDataController) listQuery(c *fiber.Ctx) *gorm.DB {
	q := ctl.DB.Model(&model.UserData{}).
		Preload("Area").
		Preload("Village").
		Where("delete_flag = ?", false)

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if types := parseStrList(c.Query("type")); len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	if ids := parseUintList(c.Query("area_ids")); len(ids) > 0 {
		q = q.Where("fk_area_id IN ?", ids)
	}
	if ids := parseUintList(c.Query("village_ids")); len(ids) > 0 {
		q = q.Where("fk_village_id IN ?", ids)
	}
	if ids := parseUintList(c.Query("user_ids")); len(ids) > 0 {
		q = q.Where("user_id IN ?", ids)
	}
	return q
}

// donorSortKeys whitelists the ?sort_by= values for the donor list.
var donorSortKeys = map[string]string{
	"name":     "name",
	"usercode": "usercode",
	"created":  "created_at",
}

// List returns donor records; ?format=csv or ?format=pdf switches the
// response to a file export of the same filtered set.
func (ctl *UserDataController) List(c *fiber.Ctx) error {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))

	opts := helper.DefaultOpts
	if format != "" {
		opts = helper.ExportOpts
	}
	paging := helper.ResolvePaging(c, opts)

	order, err := helper.SafeOrderClause(c.Query("sort_by"), c.Query("sort_order", "asc"), donorSortKeys, "name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build sort clause")
	}

	q := ctl.listQuery(c)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count donor records")
	}

	var donors []model.UserData
	if err := q.Order(order).
		Offset(paging.Offset()).
		Limit(paging.Limit()).
		Find(&donors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch donor records")
	}

	switch format {
	case "csv":
		out, err := donorService.BuildCSV(donors)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build CSV")
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="donors.csv"`)
		return c.Send(out)
	case "pdf":
		out, err := donorService.BuildPDF(donors)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build PDF")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="donors.pdf"`)
		return c.Send(out)
	}
	return helper.JsonList(c, "Donor records fetched", donors, helper.BuildPagination(total, paging, len(donors)))
}

/* ========================= Update ========================= */

func (ctl *UserDataController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid donor id")
	}

	var req dto.UpdateUserDataRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationFields(err))
	}

	var donor model.UserData
	if err := ctl.DB.First(&donor, "user_id = ? AND delete_flag = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Donor record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	ch, err := ctl.patchChanges(req)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(ch) > 0 {
		if err := ctl.DB.Model(&donor).Updates(ch).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update donor record")
		}
	}
	return helper.JsonUpdated(c, "Donor record updated", donor)
}

func (ctl *UserDataController) patchChanges(req dto.UpdateUserDataRequest) (map[string]interface{}, error) {
	ch := map[string]interface{}{}
	strFields := map[string]*string{
		"usercode":               req.Usercode,
		"name":                   req.Name,
		"surname":                req.Surname,
		"father_or_husband_name": req.FatherOrHusbandName,
		"mother_name":            req.MotherName,
		"gender":                 req.Gender,
		"mobile_no1":             req.MobileNo1,
		"mobile_no2":             req.MobileNo2,
		"address":                req.Address,
		"pincode":                req.Pincode,
		"occupation":             req.Occupation,
		"country":                req.Country,
		"state":                  req.State,
		"email_id":               req.EmailID,
		"type":                   req.Type,
	}
	for col, v := range strFields {
		if v != nil {
			ch[col] = *v
		}
	}
	if req.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, errors.New("birth_date must be YYYY-MM-DD")
		}
		ch["birth_date"] = datatypes.Date(t)
	}
	if req.AreaID != nil {
		var area areaModel.Area
		if err := ctl.DB.First(&area, "area_id = ?", *req.AreaID).Error; err != nil {
			return nil, errors.New("Area ID not found")
		}
		ch["fk_area_id"] = *req.AreaID
	}
	if req.VillageID != nil {
		var village villageModel.Village
		if err := ctl.DB.First(&village, "village_id = ?", *req.VillageID).Error; err != nil {
			return nil, errors.New("Village ID not found")
		}
		ch["fk_village_id"] = *req.VillageID
	}
	if req.ActiveFlag != nil {
		ch["active_flag"] = *req.ActiveFlag
	}
	if req.DeathFlag != nil {
		ch["death_flag"] = *req.DeathFlag
	}
	return ch, nil
}

/* ========================= Soft delete ========================= */

func (ctl *UserDataController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid donor id")
	}

	var donor model.UserData
	if err := ctl.DB.First(&donor, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Donor record not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	if err := ctl.DB.Model(&donor).Update("delete_flag", true).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete donor record")
	}
	return helper.JsonDeleted(c, "Donor record deleted", nil)
}

/* ========================= Stats ========================= */

type donorStats struct {
	Total         int64 `json:"total"`
	Active        int64 `json:"active"`
	Deceased      int64 `json:"deceased"`
	WithReceipt   int64 `json:"with_receipt"`
	DeletedOnFile int64 `json:"deleted_on_file"`
}

func (ctl *UserDataController) Stats(c *fiber.Ctx) error {
	var st donorStats
	base := func() *gorm.DB { return ctl.DB.Model(&model.UserData{}) }

	counts := []struct {
		dst  *int64
		cond *gorm.DB
	}{
		{&st.Total, base().Where("delete_flag = ?", false)},
		{&st.Active, base().Where("delete_flag = ? AND active_flag = ?", false, true)},
		{&st.Deceased, base().Where("delete_flag = ? AND death_flag = ?", false, true)},
		{&st.WithReceipt, base().Where("delete_flag = ? AND receipt_flag = ?", false, true)},
		{&st.DeletedOnFile, base().Where("delete_flag = ?", true)},
	}
	for _, cnt := range counts {
		if err := cnt.cond.Count(cnt.dst).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute stats")
		}
	}
	return helper.JsonOK(c, "Donor stats fetched", st)
}

/* ========================= helpers ========================= */

func parseStrList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseUintList(raw string) []uint {
	out := []uint{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.ParseUint(part, 10, 64); err == nil {
			out = append(out, uint(n))
		}
	}
	return out
}
