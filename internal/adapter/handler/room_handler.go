package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/stay_booking/internal/core/domain"
	"github.com/srgjo27/stay_booking/internal/core/services"
)

// RoomHandler serves the per-room availability, pricing and blocked dates routes.
type RoomHandler struct {
	availability *services.AvailabilityService
	pricing      *services.PricingService
	log          logrus.FieldLogger
}

func NewRoomHandler(availability *services.AvailabilityService, pricing *services.PricingService, log logrus.FieldLogger) *RoomHandler {
	return &RoomHandler{availability: availability, pricing: pricing, log: log}
}

func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	roomID, ok := uuidParam(c, "room_id")
	if !ok {
		return
	}

	stay, err := stayQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	result, err := h.availability.CheckAvailability(c.Request.Context(), roomID, stay)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPrice quotes a stay, or a single night when only date is given.
func (h *RoomHandler) GetPrice(c *gin.Context) {
	roomID, ok := uuidParam(c, "room_id")
	if !ok {
		return
	}

	if c.Query("date") != "" {
		day, err := dateQuery(c, "date")
		if err != nil {
			respondError(c, h.log, err)
			return
		}

		price, err := h.pricing.PriceForDate(c.Request.Context(), roomID, day)
		if err != nil {
			respondError(c, h.log, err)
			return
		}

		c.JSON(http.StatusOK, price)
		return
	}

	stay, err := stayQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	quote, err := h.pricing.QuoteStay(c.Request.Context(), roomID, stay)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *RoomHandler) ReplacePricing(c *gin.Context) {
	roomID, ok := uuidParam(c, "room_id")
	if !ok {
		return
	}

	var pricing domain.SeasonalPricing
	if err := c.ShouldBindJSON(&pricing); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	saved, err := h.pricing.ReplaceRoomPricing(c.Request.Context(), roomID, &pricing)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (h *RoomHandler) ListBlockedDates(c *gin.Context) {
	roomID, ok := uuidParam(c, "room_id")
	if !ok {
		return
	}

	blocks, err := h.availability.ListBlockedDates(c.Request.Context(), roomID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked_dates": blocks})
}

func (h *RoomHandler) BlockDates(c *gin.Context) {
	roomID, ok := uuidParam(c, "room_id")
	if !ok {
		return
	}

	var req services.BlockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	block, err := h.availability.BlockDates(c.Request.Context(), roomID, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

func (h *RoomHandler) UnblockDates(c *gin.Context) {
	roomID, ok := uuidParam(c, "room_id")
	if !ok {
		return
	}

	blockID, ok := uuidParam(c, "block_id")
	if !ok {
		return
	}

	if err := h.availability.UnblockDates(c.Request.Context(), roomID, blockID); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
