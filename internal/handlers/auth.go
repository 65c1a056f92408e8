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

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"required"`
	Position string      `json:"position"`
	TeamID   *uint       `json:"team_id"`
}

type UserResponse struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// resolveTeamID maps an identity to the team its token should claim. A
// manager owning several teams gets the first one; a missing match degrades
// to a nil claim and never fails the login.
func resolveTeamID(tx *gorm.DB, userID uint, role models.Role) *uint {
	switch role {
	case models.RoleManager:
		var team models.Team
		if err := tx.Where("manager_id = ?", userID).Order("id").First(&team).Error; err != nil {
			return nil
		}
		return &team.ID
	case models.RoleCoach:
		var team models.Team
		if err := tx.Where("coach_id = ?", userID).First(&team).Error; err != nil {
			return nil
		}
		return &team.ID
	case models.RolePlayer:
		var player models.Player
		if err := tx.First(&player, userID).Error; err != nil {
			return nil
		}
		return player.TeamID
	}
	return nil
}

func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var person models.Person

	err := db.DB.Where("email = ?", email).First(&person).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same response as a wrong password so the email's existence
			// is not revealed.
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Database error when fetching person: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !auth.CheckPassword(body.Password, person.PasswordHash) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	teamID := resolveTeamID(db.DB, person.ID, person.Role)

	token, err := auth.IssueToken(person.ID, person.Role, teamID)

	if err != nil {
		log.Printf("Failed to issue token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":   token,
		"role":    person.Role,
		"team_id": teamID,
	})
}

func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !body.Role.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role must be manager, coach or player"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	passwordHash, err := auth.HashPassword(body.Password)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	person := models.Person{
		Name:         body.Name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         body.Role,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Person
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return errDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if body.TeamID != nil {
			var team models.Team
			if err := tx.First(&team, *body.TeamID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errTeamNotFound
				}
				return err
			}
		}

		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		return createSubtypeRow(tx, &person, body.Position, body.TeamID)
	})

	if err != nil {
		respondTransactionError(ctx, err, "register")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"user": UserResponse{
			ID:    person.ID,
			Name:  person.Name,
			Email: person.Email,
			Role:  person.Role,
		},
	})
}

// createSubtypeRow keeps the subtype-iff-person invariant: the role-specific
// row is written in the same transaction as the Person row.
func createSubtypeRow(tx *gorm.DB, person *models.Person, position string, teamID *uint) error {
	switch person.Role {
	case models.RoleManager:
		return tx.Create(&models.Manager{ID: person.ID}).Error
	case models.RoleCoach:
		return tx.Create(&models.Coach{ID: person.ID, TeamID: teamID}).Error
	case models.RolePlayer:
		return tx.Create(&models.Player{ID: person.ID, Position: position, TeamID: teamID}).Error
	}
	return nil
}

// respondTransactionError maps the failure of a rolled-back write to its
// status code. Unknown database errors surface as a generic 500.
func respondTransactionError(ctx *gin.Context, err error, operation string) {
	switch {
	case errors.Is(err, errDuplicateEmail), errors.Is(err, gorm.ErrDuplicatedKey):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case errors.Is(err, errTeamNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
	case errors.Is(err, errNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Printf("Transaction failed in %s: %v", operation, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
