package handlers

import (
	"net/http"
	"strings"

	"fotura/models"
	"fotura/services/scheduling"
	"fotura/utils"

	"github.com/gin-gonic/gin"
)

// SchedulingHandler exposes the scheduling core over HTTP.
type SchedulingHandler struct {
	Svc scheduling.SchedulingService
}

func NewSchedulingHandler(svc scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Svc: svc}
}

// schedulingErrorStatus maps typed scheduling errors onto HTTP statuses.
func schedulingErrorStatus(err error) int {
	switch {
	case scheduling.IsValidation(err):
		return http.StatusBadRequest
	case scheduling.IsNotFound(err):
		return http.StatusNotFound
	case scheduling.IsConflict(err):
		return http.StatusConflict
	case scheduling.IsIllegalTransition(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func respondSchedulingError(c *gin.Context, err error) {
	status := schedulingErrorStatus(err)
	if status == http.StatusInternalServerError {
		utils.JSONError(c, status, "internal error", err.Error())
		return
	}
	utils.JSONError(c, status, err.Error(), "")
}

func actorFrom(c *gin.Context, fallback string) string {
	if actor := c.GetHeader("X-Actor"); actor != "" {
		return actor
	}
	return fallback
}

// GetAvailableSlotsHandler returns the open slot starts for a date and
// service set. An empty list is a normal answer.
func (h *SchedulingHandler) GetAvailableSlotsHandler(c *gin.Context) {
	var input struct {
		Location   models.GeoPoint `json:"location"`
		ServiceIDs []string        `json:"serviceIds" binding:"required"`
		Date       string          `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	slots, err := h.Svc.GetAvailableSlots(c.Request.Context(), input.Location, input.ServiceIDs, input.Date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": input.Date, "slots": slots})
}

// CreateDraftBookingHandler records client intake as a Draft booking.
func (h *SchedulingHandler) CreateDraftBookingHandler(c *gin.Context) {
	var input scheduling.DraftRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.Actor = actorFrom(c, "client:"+input.ClientID)

	b, err := h.Svc.CreateDraftBooking(c.Request.Context(), input)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// FinalizeBookingHandler commits a Draft booking to a chosen slot.
func (h *SchedulingHandler) FinalizeBookingHandler(c *gin.Context) {
	var input scheduling.FinalizeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.BookingID = c.Param("id")
	input.Actor = actorFrom(c, "client")

	b, err := h.Svc.FinalizeDraftBooking(c.Request.Context(), input)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingHandler returns one booking with its history.
func (h *SchedulingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// AdvanceStatusHandler applies a lifecycle transition.
func (h *SchedulingHandler) AdvanceStatusHandler(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Svc.AdvanceStatus(c.Request.Context(), c.Param("id"),
		models.BookingStatus(input.Status), actorFrom(c, "admin"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// EligibleForSwapHandler returns ranked takeover candidates for a booking.
func (h *SchedulingHandler) EligibleForSwapHandler(c *gin.Context) {
	candidates, err := h.Svc.GetEligibleTechniciansForSwap(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// ReassignBookingHandler hands a booking to another technician.
func (h *SchedulingHandler) ReassignBookingHandler(c *gin.Context) {
	var input struct {
		TechnicianID string `json:"technicianId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := h.Svc.ReassignBooking(c.Request.Context(), c.Param("id"),
		input.TechnicianID, actorFrom(c, "admin"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// BlockTimeOffHandler converts a slot selection into time-off blocks.
func (h *SchedulingHandler) BlockTimeOffHandler(c *gin.Context) {
	var input struct {
		Date   string   `json:"date" binding:"required"`
		Slots  []string `json:"slots" binding:"required"`
		Reason string   `json:"reason"`
		Type   string   `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	blocks, err := h.Svc.BlockTimeOffSlots(c.Request.Context(), c.Param("id"),
		input.Date, input.Slots, input.Reason, models.BlockType(strings.ToLower(input.Type)))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"blocks": blocks})
}

// RouteOptimizationsHandler returns advisory technician-swap suggestions for
// a date.
func (h *SchedulingHandler) RouteOptimizationsHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	suggestions, err := h.Svc.FindRouteOptimizations(c.Request.Context(), date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "suggestions": suggestions})
}

// DayScheduleHandler returns one technician's bookings and blocks for a date.
func (h *SchedulingHandler) DayScheduleHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	schedule, err := h.Svc.GetDaySchedule(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
