package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Router struct {
	Bookings *BookingHandler
	Rooms    *RoomHandler

	// BookingLimiter guards booking creation; nil disables it.
	BookingLimiter gin.HandlerFunc
	Middleware     []gin.HandlerFunc
}

func (rt Router) Engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(rt.Middleware...)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rooms := r.Group("/rooms/:room_id")
	rooms.GET("/availability", rt.Rooms.CheckAvailability)
	rooms.GET("/price", rt.Rooms.GetPrice)
	rooms.PUT("/pricing", rt.Rooms.ReplacePricing)
	rooms.GET("/blocked-dates", rt.Rooms.ListBlockedDates)
	rooms.POST("/blocked-dates", rt.Rooms.BlockDates)
	rooms.DELETE("/blocked-dates/:block_id", rt.Rooms.UnblockDates)
	rooms.GET("/bookings", rt.Bookings.ListRoomBookings)

	create := []gin.HandlerFunc{rt.Bookings.CreateBooking}
	if rt.BookingLimiter != nil {
		create = append([]gin.HandlerFunc{rt.BookingLimiter}, create...)
	}

	bookings := r.Group("/bookings")
	bookings.POST("", create...)
	bookings.GET("/:booking_id", rt.Bookings.GetBooking)
	bookings.PATCH("/:booking_id/status", rt.Bookings.UpdateStatus)

	return r
}
