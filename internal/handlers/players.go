package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/db"
	"github.com/polomanager/polomanager/internal/auth"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/polomanager/polomanager/internal/utils"
	"gorm.io/gorm"
)

type CreatePlayerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Position string `json:"position" binding:"required"`
	TeamID   uint   `json:"team_id" binding:"required"`
}

type UpdatePlayerRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Goals    *int   `json:"goals"`
}

type PlayerRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Goals    int    `json:"goals"`
}

type PlayerStats struct {
	Position string `json:"position"`
	Goals    int    `json:"goals"`
	Matches  int64  `json:"matches"`
}

// CreatePlayer provisions a player account on a roster. Person and player
// rows are written in one transaction; nothing persists on failure.
func CreatePlayer(ctx *gin.Context) {
	var body CreatePlayerRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required: name, email, position, team_id"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	tempPassword := auth.GenerateTempPassword()
	passwordHash, err := auth.HashPassword(tempPassword)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	person := models.Person{
		Name:         body.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RolePlayer,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Person
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return errDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var team models.Team
		if err := tx.First(&team, body.TeamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errTeamNotFound
			}
			return err
		}

		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		return tx.Create(&models.Player{ID: person.ID, Position: body.Position, TeamID: &team.ID}).Error
	})

	if err != nil {
		respondTransactionError(ctx, err, "create player")
		return
	}

	BroadcastTeamRefresh(body.TeamID)

	ctx.JSON(http.StatusCreated, gin.H{
		"player": PlayerRow{
			ID:       person.ID,
			Name:     person.Name,
			Position: body.Position,
		},
		"temporaryPassword": tempPassword,
	})
}

// ListTeamPlayers returns the roster of the caller's team, taken from the
// token's team claim.
func ListTeamPlayers(ctx *gin.Context) {
	claims, err := utils.GetCurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User is not authenticated"})
		return
	}

	if claims.TeamID == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No team ID associated with user"})
		return
	}

	rows, err := playersOfTeam(db.DB, *claims.TeamID)

	if err != nil {
		log.Printf("Failed to fetch players: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func playersOfTeam(tx *gorm.DB, teamID uint) ([]PlayerRow, error) {
	rows := make([]PlayerRow, 0)

	err := tx.Table("players").
		Select("players.id, people.name, players.position, players.goals").
		Joins("JOIN people ON people.id = players.id").
		Where("players.team_id = ?", teamID).
		Order("players.id").
		Scan(&rows).Error

	return rows, err
}

// GetPlayerStats reports position, goals and the number of games scheduled
// for the player's team.
func GetPlayerStats(ctx *gin.Context) {
	var player models.Player

	if err := db.DB.First(&player, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		} else {
			log.Printf("Failed to fetch player: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	stats := PlayerStats{Position: player.Position, Goals: player.Goals}

	if player.TeamID != nil {
		err := db.DB.Model(&models.Schedule{}).
			Where("team_id = ? AND event_type = ?", *player.TeamID, "Game").
			Count(&stats.Matches).Error
		if err != nil {
			log.Printf("Failed to count matches: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	ctx.JSON(http.StatusOK, stats)
}

func UpdatePlayer(ctx *gin.Context) {
	var body UpdatePlayerRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Goals != nil && *body.Goals < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Goals must not be negative"})
		return
	}

	var player models.Player

	if err := db.DB.First(&player, "id = ?", ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		} else {
			log.Printf("Failed to fetch player: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		updates := make(map[string]interface{})

		if body.Position != "" {
			updates["position"] = body.Position
		}

		if body.Goals != nil {
			updates["goals"] = *body.Goals
		}

		if len(updates) > 0 {
			if err := tx.Model(&player).Updates(updates).Error; err != nil {
				return err
			}
		}

		if body.Name != "" {
			if err := tx.Model(&models.Person{}).Where("id = ?", player.ID).
				Update("name", strings.TrimSpace(body.Name)).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		respondTransactionError(ctx, err, "update player")
		return
	}

	if player.TeamID != nil {
		BroadcastTeamRefresh(*player.TeamID)
	}

	ctx.JSON(http.StatusOK, player)
}

// DeletePlayer removes the player and person rows in one transaction. A
// missing player reports 404 with no side effects.
func DeletePlayer(ctx *gin.Context) {
	playerID := ctx.Param("id")

	var teamID *uint

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		teamID = player.TeamID

		if err := tx.Delete(&models.Player{}, "id = ?", player.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Person{}, "id = ?", player.ID).Error
	})

	if err != nil {
		if errors.Is(err, errNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		respondTransactionError(ctx, err, "delete player")
		return
	}

	if teamID != nil {
		BroadcastTeamRefresh(*teamID)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Player deleted successfully"})
}
