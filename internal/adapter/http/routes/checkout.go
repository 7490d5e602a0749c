package routes

import (
	"ingressos_checkout/internal/adapter/http/handlers"
	"ingressos_checkout/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathCheckout      = "/checkout"
	PathPaymentStatus = "/payment-status"
	PathEvents        = "/events"
	PathWebhooks      = "/webhooks"
	RoleAdmin         = "admin"
)

func addCheckoutRoutes(rg *gin.RouterGroup, h *handlers.CheckoutHandler) {
	checkout := rg.Group(PathCheckout)
	{
		checkout.POST("", h.CreateCheckout)
		checkout.POST("/:preference_id/regenerate", h.Regenerate)
		checkout.GET("/:preference_id/status", h.GetStatus)
		checkout.POST("/:preference_id/pix", h.CreatePix)
	}

	rg.GET(PathPaymentStatus, h.PaymentStatus)

	events := rg.Group(PathEvents, middleware.RequireRole(RoleAdmin))
	{
		events.GET("/:event_id/checkouts", h.ListByEvent)
	}
}

func addWebhookRoutes(rg *gin.RouterGroup, h *handlers.WebhookHandler) {
	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/mercadopago", h.Receive)
	}
}
