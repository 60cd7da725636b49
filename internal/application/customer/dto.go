package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/laundrypos/backend/internal/domain/customer"
)

// RegisterCustomerRequest represents a request to register a new customer
type RegisterCustomerRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Name     string    `json:"name" binding:"required,min=1,max=200"`
	Phone    string    `json:"phone" binding:"max=50"`
	Email    string    `json:"email" binding:"omitempty,email,max=200"`
	Address  string    `json:"address" binding:"max=500"`
}

// UpdateCustomerRequest represents a request to update a customer's profile
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// ListCustomersRequest represents query filters for the customer list
type ListCustomersRequest struct {
	BranchID *uuid.UUID `form:"branch_id"`
	Status   string     `form:"status"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID              uuid.UUID  `json:"id"`
	BranchID        uuid.UUID  `json:"branch_id"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone,omitempty"`
	Email           string     `json:"email,omitempty"`
	Address         string     `json:"address,omitempty"`
	Status          string     `json:"status"`
	DepositBalance  int64      `json:"deposit_balance"`
	TotalDeposit    int64      `json:"total_deposit"`
	TotalOrders     int64      `json:"total_orders"`
	TotalSpent      int64      `json:"total_spent"`
	DepositTypeName string     `json:"deposit_type_name,omitempty"`
	HasExpiry       bool       `json:"has_expiry"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CustomerListResponse wraps a page of customers
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// ToCustomerResponse converts a domain Customer to CustomerResponse
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		BranchID:        c.BranchID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
		Status:          string(c.Status),
		DepositBalance:  c.DepositBalance,
		TotalDeposit:    c.TotalDeposit,
		TotalOrders:     c.TotalOrders,
		TotalSpent:      c.TotalSpent,
		DepositTypeName: c.DepositTypeName,
		HasExpiry:       c.HasExpiry,
		ExpiryDate:      c.ExpiryDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
