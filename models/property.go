package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model

	Name    string `json:"name" gorm:"type:varchar(100);not null"`
	Address string `json:"address" gorm:"type:varchar(255)"`

	Rooms []Room `gorm:"foreignKey:PropertyID" json:"rooms,omitempty"`
}

func (Property) TableName() string { return "properties" }
