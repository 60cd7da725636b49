package handler

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the deposit and payment endpoints
func (h *DepositTransactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/deposits/purchase", h.PurchaseDeposit)
	rg.POST("/payments/laundry", h.PayLaundry)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.ListTransactions)
		transactions.GET("/:id", h.GetTransaction)
		transactions.POST("/:id/cancel", h.CancelTransaction)
	}

	rg.GET("/customers/:id/balance", h.GetCustomerBalance)
	rg.GET("/customers/:id/reconcile", h.ReconcileCustomer)
}

// RegisterRoutes wires the deposit plan endpoints
func (h *DepositTypeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	types := rg.Group("/deposit-types")
	{
		types.POST("", h.Create)
		types.GET("", h.List)
		types.GET("/:id", h.Get)
		types.PUT("/:id", h.Update)
		types.POST("/:id/deactivate", h.Deactivate)
		types.POST("/:id/activate", h.Activate)
	}
}

// RegisterRoutes wires the customer endpoints
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Register)
		customers.GET("", h.List)
		customers.GET("/by-phone", h.GetByPhone)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.POST("/:id/deactivate", h.Deactivate)
		customers.POST("/:id/activate", h.Activate)
	}
}

// RegisterRoutes wires the branch endpoints
func (h *BranchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	branches := rg.Group("/branches")
	{
		branches.POST("", h.Create)
		branches.GET("", h.List)
		branches.GET("/:id", h.Get)
		branches.PUT("/:id", h.Update)
		branches.POST("/:id/deactivate", h.Deactivate)
	}
}

// RegisterRoutes wires the reporting endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/deposits", h.GetDepositSummary)
		reports.GET("/deposits/customers", h.GetCustomerRows)
	}
}

// RegisterRoutes wires the health endpoints onto the root engine so they
// bypass the versioned API group and its authentication.
func (h *SystemHandler) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}
