package model

import (
	"strings"

	"gorm.io/gorm"
)

type Area struct {
	ID   uint   `gorm:"column:area_id;primaryKey" json:"area_id"`
	Name string `gorm:"column:area;size:50;not null;uniqueIndex" json:"area"`
}

func (Area) TableName() string {
	return "area"
}

// Names are stored lowercase so the unique index also catches case variants.
func (a *Area) BeforeSave(tx *gorm.DB) error {
	a.Name = strings.ToLower(strings.TrimSpace(a.Name))
	return nil
}
