package model

import (
	"time"

	"gorm.io/datatypes"

	areaModel "sevasangh_backend/internals/features/lookup/areas/model"
	villageModel "sevasangh_backend/internals/features/lookup/villages/model"
)

// UserData is a donor record. Deletion is a soft flag; records stay in the
// table for receipt history.
type UserData struct {
	ID       uint   `gorm:"column:user_id;primaryKey" json:"user_id"`
	Usercode string `gorm:"size:50" json:"usercode"`

	Name                string `gorm:"size:100;not null" json:"name"`
	Surname             string `gorm:"size:100" json:"surname"`
	FatherOrHusbandName string `gorm:"size:100" json:"father_or_husband_name"`
	MotherName          string `gorm:"size:100" json:"mother_name"`
	Gender              string `gorm:"size:10" json:"gender"`
	BirthDate           *datatypes.Date `gorm:"column:birth_date" json:"birth_date,omitempty"`

	MobileNo1 string `gorm:"size:15" json:"mobile_no1"`
	MobileNo2 string `gorm:"size:15" json:"mobile_no2"`

	AreaID    *uint `gorm:"column:fk_area_id" json:"fk_area_id,omitempty"`
	VillageID *uint `gorm:"column:fk_village_id" json:"fk_village_id,omitempty"`

	Area    *areaModel.Area       `gorm:"foreignKey:AreaID" json:"area,omitempty"`
	Village *villageModel.Village `gorm:"foreignKey:VillageID" json:"village,omitempty"`

	Address    string `gorm:"size:255" json:"address"`
	Pincode    string `gorm:"size:10" json:"pincode"`
	Occupation string `gorm:"size:100" json:"occupation"`
	Country    string `gorm:"size:100" json:"country"`
	State      string `gorm:"size:100" json:"state"`
	EmailID    string `gorm:"size:100" json:"email_id"`
	Type       string `gorm:"size:20" json:"type"`

	ActiveFlag  bool `gorm:"not null;default:true" json:"active_flag"`
	DeleteFlag  bool `gorm:"not null;default:false" json:"delete_flag"`
	DeathFlag   bool `gorm:"not null;default:false" json:"death_flag"`
	ReceiptFlag bool `gorm:"not null;default:false" json:"receipt_flag"`

	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	ModifiedAt time.Time `gorm:"column:modified_at;autoUpdateTime" json:"modified_at"`
}

func (UserData) TableName() string {
	return "user_data"
}
