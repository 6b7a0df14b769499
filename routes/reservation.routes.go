package routes

import (
	"github.com/gin-gonic/gin"

	"hotel-service/handlers"
	"hotel-service/services"
)

type ReservationRouteHandler struct {
	reservationHandler handlers.ReservationHandler
	reservationService services.ReservationService
}

func NewReservationRouteHandler(reservationHandler handlers.ReservationHandler, reservationService services.ReservationService) ReservationRouteHandler {
	return ReservationRouteHandler{reservationHandler, reservationService}
}

func (rc *ReservationRouteHandler) ReservationRoute(rg *gin.RouterGroup) {
	rg.Use(handlers.ExtractTraceInfoMiddleware())

	rg.GET("/rooms", rc.reservationHandler.GetRooms)
	rg.GET("/rooms/available", rc.reservationHandler.GetAvailableRooms)

	router := rg.Group("/reservations")
	router.POST("/create", rc.reservationHandler.CreateReservation)
	router.GET("/:id", rc.reservationHandler.GetReservation)
	router.POST("/:id/cancel", rc.reservationHandler.CancelReservation)
	router.POST("/:id/payment", rc.reservationHandler.ProcessPayment)
}
