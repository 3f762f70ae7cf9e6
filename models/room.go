package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room statuses. OCCUPIED is valid only while current_occupants > 0.
const (
	RoomStatusVacant      = "VACANT"
	RoomStatusOccupied    = "OCCUPIED"
	RoomStatusMaintenance = "MAINTENANCE"
)

type Room struct {
	gorm.Model

	PropertyID uint `json:"propertyId" gorm:"column:property_id;not null;uniqueIndex:idx_property_code"`
	// Room code is unique within a property, e.g. "P101".
	Code string `json:"code" gorm:"column:code;type:varchar(50);uniqueIndex:idx_property_code"`

	Capacity         int    `json:"capacity" gorm:"column:capacity;default:1"`
	CurrentOccupants int    `json:"currentOccupants" gorm:"column:current_occupants;default:0"`
	Status           string `json:"status" gorm:"column:status;type:varchar(20);default:VACANT"`

	MonthlyRent   float64 `json:"monthlyRent" gorm:"column:monthly_rent"`
	DepositAmount float64 `json:"depositAmount" gorm:"column:deposit_amount"`

	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`

	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Tenants  []Tenant `gorm:"foreignKey:RoomID" json:"tenants,omitempty"`
}

func (Room) TableName() string { return "rooms" }
