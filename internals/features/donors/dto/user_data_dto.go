package dto

type CreateUserDataRequest struct {
	Usercode            string `json:"usercode" validate:"omitempty,max=50"`
	Name                string `json:"name" validate:"required,max=100"`
	Surname             string `json:"surname" validate:"omitempty,max=100"`
	FatherOrHusbandName string `json:"father_or_husband_name" validate:"omitempty,max=100"`
	MotherName          string `json:"mother_name" validate:"omitempty,max=100"`
	Gender              string `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate           string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`

	MobileNo1 string `json:"mobile_no1" validate:"omitempty,max=15"`
	MobileNo2 string `json:"mobile_no2" validate:"omitempty,max=15"`

	AreaID    *uint `json:"fk_area_id"`
	VillageID *uint `json:"fk_village_id"`

	Address    string `json:"address" validate:"omitempty,max=255"`
	Pincode    string `json:"pincode" validate:"omitempty,max=10"`
	Occupation string `json:"occupation" validate:"omitempty,max=100"`
	Country    string `json:"country" validate:"omitempty,max=100"`
	State      string `json:"state" validate:"omitempty,max=100"`
	EmailID    string `json:"email_id" validate:"omitempty,email,max=100"`
	Type       string `json:"type" validate:"omitempty,max=20"`
}

// UpdateUserDataRequest applies partial patch semantics: nil fields are
// left untouched.
type UpdateUserDataRequest struct {
	Usercode            *string `json:"usercode" validate:"omitempty,max=50"`
	Name                *string `json:"name" validate:"omitempty,max=100"`
	Surname             *string `json:"surname" validate:"omitempty,max=100"`
	FatherOrHusbandName *string `json:"father_or_husband_name" validate:"omitempty,max=100"`
	MotherName          *string `json:"mother_name" validate:"omitempty,max=100"`
	Gender              *string `json:"gender" validate:"omitempty,oneof=male female other"`
	BirthDate           *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`

	MobileNo1 *string `json:"mobile_no1" validate:"omitempty,max=15"`
	MobileNo2 *string `json:"mobile_no2" validate:"omitempty,max=15"`

	AreaID    *uint `json:"fk_area_id"`
	VillageID *uint `json:"fk_village_id"`

	Address    *string `json:"address" validate:"omitempty,max=255"`
	Pincode    *string `json:"pincode" validate:"omitempty,max=10"`
	Occupation *string `json:"occupation" validate:"omitempty,max=100"`
	Country    *string `json:"country" validate:"omitempty,max=100"`
	State      *string `json:"state" validate:"omitempty,max=100"`
	EmailID    *string `json:"email_id" validate:"omitempty,email,max=100"`
	Type       *string `json:"type" validate:"omitempty,max=20"`

	ActiveFlag *bool `json:"active_flag"`
	DeathFlag  *bool `json:"death_flag"`
}
