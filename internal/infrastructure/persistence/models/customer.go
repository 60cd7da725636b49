package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/customer"
)

// CustomerModel is the persistence model for the Customer domain aggregate.
type CustomerModel struct {
	AggregateModel
	BranchID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Phone           string          `gorm:"type:varchar(50);index:idx_customer_branch_phone"`
	Email           string          `gorm:"type:varchar(200)"`
	Address         string          `gorm:"type:text"`
	Status          customer.Status `gorm:"type:varchar(20);not null;default:'active'"`
	DepositBalance  int64           `gorm:"not null;default:0"`
	TotalDeposit    int64           `gorm:"not null;default:0"`
	TotalOrders     int64           `gorm:"not null;default:0"`
	TotalSpent      int64           `gorm:"not null;default:0"`
	DepositTypeID   *uuid.UUID      `gorm:"type:uuid"`
	DepositTypeName string          `gorm:"type:varchar(100)"`
	HasExpiry       bool            `gorm:"not null;default:false"`
	ExpiryDate      *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer aggregate.
func (m *CustomerModel) ToDomain() *customer.Customer {
	return &customer.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BranchID:          m.BranchID,
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		Status:            m.Status,
		DepositBalance:    m.DepositBalance,
		TotalDeposit:      m.TotalDeposit,
		TotalOrders:       m.TotalOrders,
		TotalSpent:        m.TotalSpent,
		DepositTypeID:     m.DepositTypeID,
		DepositTypeName:   m.DepositTypeName,
		HasExpiry:         m.HasExpiry,
		ExpiryDate:        m.ExpiryDate,
	}
}

// CustomerModelFromDomain populates a persistence model from a domain Customer.
func CustomerModelFromDomain(c *customer.Customer) *CustomerModel {
	m := &CustomerModel{
		BranchID:        c.BranchID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
		Status:          c.Status,
		DepositBalance:  c.DepositBalance,
		TotalDeposit:    c.TotalDeposit,
		TotalOrders:     c.TotalOrders,
		TotalSpent:      c.TotalSpent,
		DepositTypeID:   c.DepositTypeID,
		DepositTypeName: c.DepositTypeName,
		HasExpiry:       c.HasExpiry,
		ExpiryDate:      c.ExpiryDate,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
