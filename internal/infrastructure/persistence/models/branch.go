package models

import (
	"github.com/laundrypos/backend/internal/domain/branch"
)

// BranchModel is the persistence model for branches.
type BranchModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(100);not null"`
	Address  string `gorm:"type:text"`
	Phone    string `gorm:"type:varchar(50)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch.
func (m *BranchModel) ToDomain() *branch.Branch {
	return &branch.Branch{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		Phone:             m.Phone,
		IsActive:          m.IsActive,
	}
}

// BranchModelFromDomain populates a persistence model from a domain Branch.
func BranchModelFromDomain(b *branch.Branch) *BranchModel {
	m := &BranchModel{
		Name:     b.Name,
		Address:  b.Address,
		Phone:    b.Phone,
		IsActive: b.IsActive,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}
