package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/db"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/polomanager/polomanager/internal/utils"
	"gorm.io/gorm"
)

type CreateTeamRequest struct {
	Name    string `json:"name" binding:"required"`
	CoachID *uint  `json:"coach_id" binding:"required"`
}

type UpdateTeamRequest struct {
	Name    string `json:"name"`
	CoachID *uint  `json:"coach_id"`
}

// CreateTeam registers a team under the authenticated manager.
func CreateTeam(ctx *gin.Context) {
	var body CreateTeamRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and coach ID are required"})
		return
	}

	managerID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User is not authenticated"})
		return
	}

	team := models.Team{
		Name:      body.Name,
		CoachID:   body.CoachID,
		ManagerID: managerID,
	}

	if err := db.DB.Create(&team).Error; err != nil {
		log.Printf("Failed to create team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"team": team})
}

func ListTeams(ctx *gin.Context) {
	var teams []models.Team

	if err := db.DB.Order("id").Find(&teams).Error; err != nil {
		log.Printf("Failed to list teams: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, teams)
}

// GetTeamDetails returns the team row together with its roster.
func GetTeamDetails(ctx *gin.Context) {
	var team models.Team

	if err := db.DB.First(&team, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			log.Printf("Failed to fetch team: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	players, err := playersOfTeam(db.DB, team.ID)

	if err != nil {
		log.Printf("Failed to fetch team players: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"team":    team,
		"players": players,
	})
}

// ListTeamPlayersByID serves the roster of an explicit team id.
func ListTeamPlayersByID(ctx *gin.Context) {
	var team models.Team

	if err := db.DB.First(&team, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			log.Printf("Failed to fetch team: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	players, err := playersOfTeam(db.DB, team.ID)

	if err != nil {
		log.Printf("Failed to fetch team players: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, players)
}

func UpdateTeam(ctx *gin.Context) {
	var body UpdateTeamRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var team models.Team

	if err := db.DB.First(&team, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			log.Printf("Failed to fetch team: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Name != "" {
		updates["name"] = body.Name
	}

	if body.CoachID != nil {
		updates["coach_id"] = *body.CoachID
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&team).Updates(updates).Error; err != nil {
		log.Printf("Failed to update team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastTeamRefresh(team.ID)

	ctx.JSON(http.StatusOK, gin.H{"team": team})
}

// DeleteTeam removes a team and everything hanging off it in one
// transaction: schedules first, then the roster's player and person rows,
// then the team itself. The deletion order is explicit rather than left to
// declared cascades.
func DeleteTeam(ctx *gin.Context) {
	teamID := ctx.Param("id")

	var deletedID uint

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, "id = ?", teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if err := tx.Delete(&models.Schedule{}, "team_id = ?", team.ID).Error; err != nil {
			return err
		}

		var playerIDs []uint
		if err := tx.Model(&models.Player{}).Where("team_id = ?", team.ID).
			Pluck("id", &playerIDs).Error; err != nil {
			return err
		}

		if len(playerIDs) > 0 {
			if err := tx.Delete(&models.Player{}, "id IN ?", playerIDs).Error; err != nil {
				return err
			}
			// Roster accounts die with the team; leaving their person rows
			// behind would orphan logins with a dangling team claim.
			if err := tx.Delete(&models.Person{}, "id IN ?", playerIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.Team{}, "id = ?", team.ID).Error; err != nil {
			return err
		}

		deletedID = team.ID
		return nil
	})

	if err != nil {
		if errors.Is(err, errNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
			return
		}
		respondTransactionError(ctx, err, "delete team")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": deletedID})
}
