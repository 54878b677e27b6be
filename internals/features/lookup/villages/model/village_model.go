package model

import (
	"strings"

	"gorm.io/gorm"
)

type Village struct {
	ID   uint   `gorm:"column:village_id;primaryKey" json:"village_id"`
	Name string `gorm:"column:village;size:50;not null;uniqueIndex" json:"village"`
}

func (Village) TableName() string {
	return "village"
}

// Names are stored lowercase so the unique index also catches case variants.
func (v *Village) BeforeSave(tx *gorm.DB) error {
	v.Name = strings.ToLower(strings.TrimSpace(v.Name))
	return nil
}
