package models

import (
	"time"

	"gorm.io/gorm"
)

type Tenant struct {
	gorm.Model

	// RoomID is nil while the tenant has no current assignment (moved out,
	// not yet moved in anywhere else).
	RoomID *uint `json:"roomId,omitempty" gorm:"column:room_id;index"`

	FullName string `json:"fullname" gorm:"column:fullname;type:varchar(100);not null"`
	Phone    string `json:"phone" gorm:"column:phone;type:varchar(20);index"`
	Email    string `json:"email" gorm:"column:email;type:varchar(100)"`
	IDNumber string `json:"idNumber" gorm:"column:id_number;type:varchar(20);index"`

	IsActive    bool       `json:"isActive" gorm:"column:is_active;default:false"`
	MoveInDate  *time.Time `json:"moveInDate,omitempty" gorm:"column:move_in_date"`
	MoveOutDate *time.Time `json:"moveOutDate,omitempty" gorm:"column:move_out_date"`

	// Optional link to an external user account (login, chat, invitations).
	UserAccountID *uint `json:"userAccountId,omitempty" gorm:"column:user_account_id;index"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (Tenant) TableName() string { return "tenants" }
