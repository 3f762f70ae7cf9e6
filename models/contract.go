package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract statuses. EXPIRED and TERMINATED are terminal.
const (
	ContractStatusPending    = "PENDING"
	ContractStatusActive     = "ACTIVE"
	ContractStatusExpired    = "EXPIRED"
	ContractStatusTerminated = "TERMINATED"
)

type Contract struct {
	gorm.Model

	RoomID   uint `json:"roomId" gorm:"column:room_id;index;not null"`
	TenantID uint `json:"tenantId" gorm:"column:tenant_id;index;not null"`

	// Generated as HD<year><seq> when the caller doesn't supply one.
	ContractNumber string `json:"contractNumber" gorm:"column:contract_number;uniqueIndex;type:varchar(32)"`

	StartDate time.Time `json:"startDate" gorm:"column:start_date;not null"`
	EndDate   time.Time `json:"endDate" gorm:"column:end_date;not null"`

	MonthlyRent float64 `json:"monthlyRent" gorm:"column:monthly_rent"`
	Deposit     float64 `json:"deposit" gorm:"column:deposit"`

	Status             string `json:"status" gorm:"column:status;type:varchar(20);default:PENDING"`
	IsEarlyTermination bool   `json:"isEarlyTermination" gorm:"column:is_early_termination;default:false"`
	TerminationReason  string `json:"terminationReason,omitempty" gorm:"column:termination_reason;type:varchar(255)"`
	TerminationNote    string `json:"terminationNote,omitempty" gorm:"column:termination_note;type:text"`

	Room   Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Tenant Tenant `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
}

func (Contract) TableName() string { return "contracts" }

// IsTerminal reports whether the contract can no longer block room deletion
// or conflict with new rentals.
func (c *Contract) IsTerminal() bool {
	return c.Status == ContractStatusExpired || c.Status == ContractStatusTerminated
}
