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

type CreateManagerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateManagerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

// CreateManager provisions a manager account with a one-time temporary
// password. Person and manager rows are written in one transaction.
func CreateManager(ctx *gin.Context) {
	var body CreateManagerRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
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
		Role:         models.RoleManager,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Person
		if err := tx.Where("email = ?", email).First(&existing).Error; err == nil {
			return errDuplicateEmail
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		return tx.Create(&models.Manager{ID: person.ID}).Error
	})

	if err != nil {
		respondTransactionError(ctx, err, "create manager")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"manager": UserResponse{
			ID:    person.ID,
			Name:  person.Name,
			Email: person.Email,
			Role:  person.Role,
		},
		"temporaryPassword": tempPassword,
	})
}

func ListManagers(ctx *gin.Context) {
	var managers []models.Person

	if err := db.DB.Where("role = ?", models.RoleManager).Order("id").Find(&managers).Error; err != nil {
		log.Printf("Failed to list managers: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]UserResponse, 0, len(managers))

	for _, manager := range managers {
		response = append(response, UserResponse{
			ID:    manager.ID,
			Name:  manager.Name,
			Email: manager.Email,
			Role:  manager.Role,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func GetManager(ctx *gin.Context) {
	var person models.Person

	err := db.DB.Where("id = ? AND role = ?", ctx.Param("id"), models.RoleManager).First(&person).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Manager not found"})
		} else {
			log.Printf("Failed to fetch manager: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, UserResponse{
		ID:    person.ID,
		Name:  person.Name,
		Email: person.Email,
		Role:  person.Role,
	})
}

func UpdateManager(ctx *gin.Context) {
	var body UpdateManagerRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var person models.Person

	err := db.DB.Where("id = ? AND role = ?", ctx.Param("id"), models.RoleManager).First(&person).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Manager not found"})
		} else {
			log.Printf("Failed to fetch manager: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if body.Name != "" {
		updates["name"] = strings.TrimSpace(body.Name)
	}

	if body.Email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(body.Email))
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&person).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		log.Printf("Failed to update manager: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, UserResponse{
		ID:    person.ID,
		Name:  person.Name,
		Email: person.Email,
		Role:  person.Role,
	})
}

// DeleteManager removes the manager and person rows in one transaction.
func DeleteManager(ctx *gin.Context) {
	managerID := ctx.Param("id")

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var manager models.Manager
		if err := tx.First(&manager, "id = ?", managerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound
			}
			return err
		}

		if err := tx.Delete(&models.Manager{}, "id = ?", manager.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Person{}, "id = ?", manager.ID).Error
	})

	if err != nil {
		if errors.Is(err, errNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Manager not found"})
			return
		}
		respondTransactionError(ctx, err, "delete manager")
		return
	}

	ctx.Status(http.StatusNoContent)
}

func GetTeamsByManager(ctx *gin.Context) {
	var teams []models.Team

	if err := db.DB.Where("manager_id = ?", ctx.Param("id")).Order("id").Find(&teams).Error; err != nil {
		log.Printf("Failed to fetch manager teams: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(teams) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No teams found for this manager"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"teams": teams})
}

// GetCoachByTeam returns the coach assigned to one of the manager's teams.
func GetCoachByTeam(ctx *gin.Context) {
	var team models.Team

	err := db.DB.Where("id = ? AND manager_id = ?", ctx.Param("team_id"), ctx.Param("id")).First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			log.Printf("Failed to fetch team: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if team.CoachID == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Team has no coach assigned"})
		return
	}

	var person models.Person

	if err := db.DB.First(&person, *team.CoachID).Error; err != nil {
		log.Printf("Failed to fetch coach: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"coach": UserResponse{
			ID:    person.ID,
			Name:  person.Name,
			Email: person.Email,
			Role:  person.Role,
		},
	})
}
