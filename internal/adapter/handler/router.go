package handler

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires all handlers onto a gin engine.
func NewRouter(
	bookings *BookingHandler,
	trips *TripHandler,
	pricing *PricingHandler,
	payments *PaymentHandler,
	vehicles *VehicleHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID())

	api := r.Group("/api/v1")

	api.POST("/bookings", bookings.Create)
	api.GET("/bookings", bookings.List)
	api.GET("/bookings/:id", bookings.Get)
	api.POST("/bookings/:id/cancel", bookings.Cancel)
	api.PATCH("/bookings/:id/status", bookings.UpdateStatus)
	api.POST("/bookings/:id/assign", bookings.AssignDriver)
	api.GET("/charters/pending", bookings.PendingCharters)

	api.POST("/trips", trips.Create)
	api.GET("/trips", trips.Search)
	api.GET("/trips/upcoming", trips.Upcoming)
	api.GET("/trips/:id", trips.Get)
	api.PATCH("/trips/:id", trips.Update)
	api.PATCH("/trips/:id/status", trips.UpdateStatus)
	api.DELETE("/trips/:id", trips.Delete)
	api.GET("/drivers/:id/trips", trips.ByDriver)
	api.GET("/drivers/:id/bookings", bookings.ByDriver)

	api.POST("/payments", payments.Create)
	api.GET("/payments", payments.List)
	api.GET("/payments/earnings", payments.Earnings)
	api.GET("/payments/:id", payments.Get)
	api.POST("/payments/:id/complete", payments.Complete)
	api.POST("/payments/:id/fail", payments.Fail)

	api.POST("/vehicles", vehicles.Create)
	api.GET("/vehicles/:id", vehicles.Get)
	api.PATCH("/vehicles/:id", vehicles.Update)
	api.DELETE("/vehicles/:id", vehicles.Delete)
	api.POST("/vehicles/:id/verify", vehicles.Verify)
	api.GET("/drivers/:id/vehicles", vehicles.ByDriver)

	api.GET("/pricing/quote", pricing.Quote)
	api.GET("/pricing/suggest", pricing.Suggest)
	api.GET("/pricing/surge-recommendation", pricing.SurgeRecommendation)

	api.POST("/pricing/rules", pricing.CreateRule)
	api.GET("/pricing/rules", pricing.ListRules)
	api.GET("/pricing/rules/:id", pricing.GetRule)
	api.PATCH("/pricing/rules/:id", pricing.UpdateRule)
	api.DELETE("/pricing/rules/:id", pricing.DeleteRule)

	api.POST("/pricing/surges", pricing.CreateSurge)
	api.GET("/pricing/surges", pricing.ListSurges)
	api.GET("/pricing/surges/:id", pricing.GetSurge)
	api.PATCH("/pricing/surges/:id", pricing.UpdateSurge)
	api.POST("/pricing/surges/:id/deactivate", pricing.DeactivateSurge)
	api.DELETE("/pricing/surges/:id", pricing.DeleteSurge)

	return r
}
