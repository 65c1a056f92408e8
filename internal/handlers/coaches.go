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
	"gorm.io/gorm"
)

type CreateCoachRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	TeamID uint   `json:"team_id" binding:"required"`
}

// CreateCoach provisions a coach account and assigns it to a team as one
// atomic unit. On any failure nothing is written: no person row, no coach
// row, no team assignment.
func CreateCoach(ctx *gin.Context) {
	var body CreateCoachRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required: name, email, team_id"})
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
		Role:         models.RoleCoach,
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

		if err := tx.Create(&models.Coach{ID: person.ID, TeamID: &team.ID}).Error; err != nil {
			return err
		}

		return tx.Model(&team).Update("coach_id", person.ID).Error
	})

	if err != nil {
		respondTransactionError(ctx, err, "create coach")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"coach": UserResponse{
			ID:    person.ID,
			Name:  person.Name,
			Email: person.Email,
			Role:  person.Role,
		},
		"temporaryPassword": tempPassword,
	})
}
