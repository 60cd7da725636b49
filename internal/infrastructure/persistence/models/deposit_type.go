package models

import (
	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/deposit"
)

// DepositTypeModel is the persistence model for deposit plans.
type DepositTypeModel struct {
	AggregateModel
	BranchID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Description   string    `gorm:"type:text"`
	PurchasePrice int64     `gorm:"not null"`
	DepositValue  int64     `gorm:"not null"`
	ValidityDays  int       `gorm:"not null;default:0"`
	IsActive      bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (DepositTypeModel) TableName() string {
	return "deposit_types"
}

// ToDomain converts the persistence model to a domain DepositType.
func (m *DepositTypeModel) ToDomain() *deposit.DepositType {
	return &deposit.DepositType{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BranchID:          m.BranchID,
		Name:              m.Name,
		Description:       m.Description,
		PurchasePrice:     m.PurchasePrice,
		DepositValue:      m.DepositValue,
		ValidityDays:      m.ValidityDays,
		IsActive:          m.IsActive,
	}
}

// DepositTypeModelFromDomain populates a persistence model from a domain DepositType.
func DepositTypeModelFromDomain(d *deposit.DepositType) *DepositTypeModel {
	m := &DepositTypeModel{
		BranchID:      d.BranchID,
		Name:          d.Name,
		Description:   d.Description,
		PurchasePrice: d.PurchasePrice,
		DepositValue:  d.DepositValue,
		ValidityDays:  d.ValidityDays,
		IsActive:      d.IsActive,
	}
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	return m
}
