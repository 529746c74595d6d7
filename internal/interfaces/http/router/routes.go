package router

import (
	"github.com/salonops/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every API handler the router wires up
type Handlers struct {
	System      *handler.SystemHandler
	Order       *handler.OrderHandler
	Purchase    *handler.PurchaseHandler
	Consignment *handler.ConsignmentHandler
	Transaction *handler.TransactionHandler
	Inventory   *handler.InventoryHandler
}

// RegisterAll builds the full API route tree.
// Auth middleware is passed in so tests can register routes without it.
func RegisterAll(r *Router, h Handlers, authMiddleware ...gin.HandlerFunc) {
	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)
	r.Register(system)

	orders := NewDomainGroup("orders", "/orders").
		Use(authMiddleware...).
		POST("", h.Order.Create).
		GET("", h.Order.List).
		GET("/:id", h.Order.Get).
		POST("/:id/items", h.Order.AddItem).
		DELETE("/:id/items/:itemID", h.Order.RemoveItem).
		POST("/:id/handle", h.Order.Handle).
		POST("/:id/cancel", h.Order.Cancel)
	r.Register(orders)

	purchases := NewDomainGroup("purchases", "/purchases").
		Use(authMiddleware...).
		POST("", h.Purchase.Create).
		GET("", h.Purchase.List).
		GET("/:id", h.Purchase.Get).
		POST("/:id/items", h.Purchase.AddItem).
		DELETE("/:id/items/:itemID", h.Purchase.RemoveItem).
		POST("/:id/handle", h.Purchase.Handle).
		POST("/:id/cancel", h.Purchase.Cancel)
	r.Register(purchases)

	consignments := NewDomainGroup("consignments", "/consignments").
		Use(authMiddleware...).
		POST("", h.Consignment.Create).
		GET("", h.Consignment.List).
		GET("/:id", h.Consignment.Get).
		POST("/:id/items", h.Consignment.AddItem).
		DELETE("/:id/items/:itemID", h.Consignment.RemoveItem).
		POST("/:id/handle", h.Consignment.Handle).
		POST("/:id/cancel", h.Consignment.Cancel)
	r.Register(consignments)

	items := NewDomainGroup("items", "/items").
		Use(authMiddleware...).
		POST("/:id/handle", h.Inventory.HandleItem)
	r.Register(items)

	transactions := NewDomainGroup("transactions", "/transactions").
		Use(authMiddleware...).
		GET("/:id", h.Transaction.Get).
		POST("/:id/payments", h.Transaction.ApplyPayment)
	r.Register(transactions)

	inventory := NewDomainGroup("inventory", "/inventory").
		Use(authMiddleware...).
		POST("/adjustments", h.Inventory.CreateAdjustment).
		GET("/products/:productID/records", h.Inventory.ListByProduct)
	r.Register(inventory)
}
