package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tanush-em/QWERTY/internal/models"
	"github.com/tanush-em/QWERTY/internal/service"
	"github.com/tanush-em/QWERTY/pkg/response"
)

type timetableService interface {
	Weekly(ctx context.Context) ([]models.TimetableDay, error)
	ByDay(ctx context.Context, dayOfWeek string) (*models.TimetableDay, error)
	FacultySchedule(ctx context.Context, facultyID string) (*service.FacultySchedule, error)
	RoomAvailability(ctx context.Context, req service.RoomAvailabilityRequest) (*service.RoomAvailability, error)
	FreePeriods(ctx context.Context, req service.FreePeriodsRequest) ([]service.FreePeriod, error)
	Conflicts(ctx context.Context) ([]service.RoomConflict, error)
}

// TimetableHandler serves the schedule query endpoints.
type TimetableHandler struct {
	service timetableService
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(service timetableService) *TimetableHandler {
	return &TimetableHandler{service: service}
}

// Week godoc
// @Summary Full weekly timetable in weekday order
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/week [get]
func (h *TimetableHandler) Week(c *gin.Context) {
	days, err := h.service.Weekly(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days)
}

// Day godoc
// @Summary One weekday's timetable
// @Tags Timetable
// @Produce json
// @Param day path string true "Day of week"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetable/day/{day} [get]
func (h *TimetableHandler) Day(c *gin.Context) {
	day, err := h.service.ByDay(c.Request.Context(), strings.TrimSpace(c.Param("day")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, day)
}

// FacultySchedule godoc
// @Summary One faculty member's slots across the week
// @Tags Timetable
// @Produce json
// @Param id path string true "Faculty id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetable/faculty/{id} [get]
func (h *TimetableHandler) FacultySchedule(c *gin.Context) {
	schedule, err := h.service.FacultySchedule(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// RoomAvailability godoc
// @Summary Occupied slots and free periods of a room
// @Tags Timetable
// @Produce json
// @Param room query string true "Room label"
// @Param day query string false "Day of week"
// @Param startTime query string false "Window start (HH:MM)"
// @Param endTime query string false "Window end (HH:MM)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /timetable/rooms/availability [get]
func (h *TimetableHandler) RoomAvailability(c *gin.Context) {
	availability, err := h.service.RoomAvailability(c.Request.Context(), service.RoomAvailabilityRequest{
		Room:      strings.TrimSpace(c.Query("room")),
		DayOfWeek: strings.TrimSpace(c.Query("day")),
		StartTime: strings.TrimSpace(c.Query("startTime")),
		EndTime:   strings.TrimSpace(c.Query("endTime")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability)
}

// FreePeriods godoc
// @Summary Unoccupied periods across the week
// @Tags Timetable
// @Produce json
// @Param day query string false "Day of week"
// @Param facultyId query string false "Faculty id"
// @Param room query string false "Room label"
// @Success 200 {object} response.Envelope
// @Router /timetable/free-periods [get]
func (h *TimetableHandler) FreePeriods(c *gin.Context) {
	free, err := h.service.FreePeriods(c.Request.Context(), service.FreePeriodsRequest{
		DayOfWeek: strings.TrimSpace(c.Query("day")),
		FacultyID: strings.TrimSpace(c.Query("facultyId")),
		Room:      strings.TrimSpace(c.Query("room")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, free)
}

// Conflicts godoc
// @Summary Double-booked rooms across the week
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timetable/conflicts [get]
func (h *TimetableHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.service.Conflicts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conflicts)
}
