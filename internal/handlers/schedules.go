package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/db"
	"github.com/polomanager/polomanager/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Dates and clock times arrive as plain strings on the wire ("2026-09-12",
// "18:00:00") and are parsed here; datatypes.Date/Time only cover the
// database side.
const (
	eventDateLayout = "2006-01-02"
	eventTimeLayout = "15:04:05"
)

type CreateScheduleRequest struct {
	EventType   string `json:"event_type" binding:"required"`
	EventDate   string `json:"event_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description"`
	TeamID      uint   `json:"team_id" binding:"required"`
}

type UpdateScheduleRequest struct {
	EventType   *string `json:"event_type"`
	EventDate   *string `json:"event_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

func parseEventDate(raw string) (datatypes.Date, error) {
	parsed, err := time.Parse(eventDateLayout, raw)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(parsed), nil
}

func parseEventTime(raw string) (datatypes.Time, error) {
	parsed, err := time.Parse(eventTimeLayout, raw)
	if err != nil {
		return datatypes.Time(0), err
	}
	return datatypes.NewTime(parsed.Hour(), parsed.Minute(), parsed.Second(), 0), nil
}

// ListSchedulesByTeam serves a team's calendar ordered by date and start
// time. The team id comes from the query string, or from the path when
// mounted under /teams/:id.
func ListSchedulesByTeam(ctx *gin.Context) {
	teamID := ctx.Param("id")
	if teamID == "" {
		teamID = ctx.Query("team_id")
	}

	if teamID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team ID is required"})
		return
	}

	schedules := make([]models.Schedule, 0)

	err := db.DB.Where("team_id = ?", teamID).
		Order("event_date, start_time").
		Find(&schedules).Error

	if err != nil {
		log.Printf("Failed to fetch schedules: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, schedules)
}

func CreateSchedule(ctx *gin.Context) {
	var body CreateScheduleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	eventDate, err := parseEventDate(body.EventDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event date must use the YYYY-MM-DD format"})
		return
	}

	startTime, err := parseEventTime(body.StartTime)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Start time must use the HH:MM:SS format"})
		return
	}

	endTime, err := parseEventTime(body.EndTime)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "End time must use the HH:MM:SS format"})
		return
	}

	schedule := models.Schedule{
		EventType:   body.EventType,
		EventDate:   eventDate,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    body.Location,
		Description: body.Description,
		TeamID:      body.TeamID,
	}

	if err := db.DB.Create(&schedule).Error; err != nil {
		log.Printf("Failed to create schedule: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add schedule"})
		return
	}

	BroadcastTeamRefresh(schedule.TeamID)

	ctx.JSON(http.StatusCreated, gin.H{"schedule": schedule})
}

func UpdateSchedule(ctx *gin.Context) {
	var body UpdateScheduleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var schedule models.Schedule

	if err := db.DB.First(&schedule, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			log.Printf("Failed to fetch schedule: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.EventType != nil {
		updates["event_type"] = *body.EventType
	}
	if body.EventDate != nil {
		eventDate, err := parseEventDate(*body.EventDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event date must use the YYYY-MM-DD format"})
			return
		}
		updates["event_date"] = eventDate
	}
	if body.StartTime != nil {
		startTime, err := parseEventTime(*body.StartTime)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Start time must use the HH:MM:SS format"})
			return
		}
		updates["start_time"] = startTime
	}
	if body.EndTime != nil {
		endTime, err := parseEventTime(*body.EndTime)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "End time must use the HH:MM:SS format"})
			return
		}
		updates["end_time"] = endTime
	}
	if body.Location != nil {
		updates["location"] = *body.Location
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&schedule).Updates(updates).Error; err != nil {
		log.Printf("Failed to update schedule: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastTeamRefresh(schedule.TeamID)

	ctx.JSON(http.StatusOK, gin.H{"schedule": schedule})
}

func DeleteSchedule(ctx *gin.Context) {
	var schedule models.Schedule

	if err := db.DB.First(&schedule, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		} else {
			log.Printf("Failed to fetch schedule: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Delete(&schedule).Error; err != nil {
		log.Printf("Failed to delete schedule: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastTeamRefresh(schedule.TeamID)

	ctx.JSON(http.StatusOK, gin.H{"schedule": gin.H{"id": schedule.ID}})
}
