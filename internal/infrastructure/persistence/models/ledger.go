package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/ledger"
)

// LedgerEntryModel is the persistence model for ledger entries.
type LedgerEntryModel struct {
	BaseModel
	CustomerID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	BranchID        uuid.UUID            `gorm:"type:uuid;not null;index:idx_ledger_branch_date"`
	OrderID         *uuid.UUID           `gorm:"type:uuid;index"`
	Type            ledger.EntryType     `gorm:"type:varchar(30);not null;index"`
	Amount          int64                `gorm:"not null"`
	PaymentMethod   ledger.PaymentMethod `gorm:"type:varchar(20);not null"`
	DepositAmount   int64                `gorm:"not null;default:0"`
	CashAmount      int64                `gorm:"not null;default:0"`
	Status          ledger.EntryStatus   `gorm:"type:varchar(20);not null;index"`
	Description     string               `gorm:"type:text"`
	ReferenceID     string               `gorm:"type:varchar(50);not null"`
	ProcessedBy     *uuid.UUID           `gorm:"type:uuid"`
	TransactionDate time.Time            `gorm:"not null;index:idx_ledger_branch_date"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain Entry.
func (m *LedgerEntryModel) ToDomain() *ledger.Entry {
	return &ledger.Entry{
		BaseEntity:      m.BaseModel.ToDomain(),
		CustomerID:      m.CustomerID,
		BranchID:        m.BranchID,
		OrderID:         m.OrderID,
		Type:            m.Type,
		Amount:          m.Amount,
		PaymentMethod:   m.PaymentMethod,
		DepositAmount:   m.DepositAmount,
		CashAmount:      m.CashAmount,
		Status:          m.Status,
		Description:     m.Description,
		ReferenceID:     m.ReferenceID,
		ProcessedBy:     m.ProcessedBy,
		TransactionDate: m.TransactionDate,
	}
}

// LedgerEntryModelFromDomain populates a persistence model from a domain Entry.
func LedgerEntryModelFromDomain(e *ledger.Entry) *LedgerEntryModel {
	m := &LedgerEntryModel{
		CustomerID:      e.CustomerID,
		BranchID:        e.BranchID,
		OrderID:         e.OrderID,
		Type:            e.Type,
		Amount:          e.Amount,
		PaymentMethod:   e.PaymentMethod,
		DepositAmount:   e.DepositAmount,
		CashAmount:      e.CashAmount,
		Status:          e.Status,
		Description:     e.Description,
		ReferenceID:     e.ReferenceID,
		ProcessedBy:     e.ProcessedBy,
		TransactionDate: e.TransactionDate,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
