package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/db"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/polomanager/polomanager/internal/utils"
)

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

type MessageRow struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id,omitempty"`
	ReceiverID uint      `json:"receiver_id,omitempty"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	PeerName   string    `json:"peer_name"`
}

type ContactRow struct {
	ID   uint        `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

func SendMessage(ctx *gin.Context) {
	var body SendMessageRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Receiver ID and content are required"})
		return
	}

	senderID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User is not authenticated"})
		return
	}

	message := models.Message{
		SenderID:   senderID,
		ReceiverID: body.ReceiverID,
		Content:    body.Content,
		Timestamp:  time.Now(),
	}

	if err := db.DB.Create(&message).Error; err != nil {
		log.Printf("Failed to create message: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    message,
	})
}

func GetReceivedMessages(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User is not authenticated"})
		return
	}

	rows := make([]MessageRow, 0)

	err = db.DB.Table("messages").
		Select("messages.id, messages.sender_id, messages.content, messages.timestamp, people.name AS peer_name").
		Joins("JOIN people ON people.id = messages.sender_id").
		Where("messages.receiver_id = ?", userID).
		Order("messages.timestamp DESC").
		Scan(&rows).Error

	if err != nil {
		log.Printf("Failed to fetch received messages: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

func GetSentMessages(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User is not authenticated"})
		return
	}

	rows := make([]MessageRow, 0)

	err = db.DB.Table("messages").
		Select("messages.id, messages.receiver_id, messages.content, messages.timestamp, people.name AS peer_name").
		Joins("JOIN people ON people.id = messages.receiver_id").
		Where("messages.sender_id = ?", userID).
		Order("messages.timestamp DESC").
		Scan(&rows).Error

	if err != nil {
		log.Printf("Failed to fetch sent messages: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// GetContacts lists who the caller may message: a manager sees everyone,
// coaches and players see their team's roster plus all managers and coaches.
func GetContacts(ctx *gin.Context) {
	claims, err := utils.GetCurrentClaims(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User is not authenticated"})
		return
	}

	contacts := make([]ContactRow, 0)

	query := db.DB.Model(&models.Person{}).Select("id, name, role").Order("id")

	switch claims.Role {
	case models.RoleManager:
		err = query.Scan(&contacts).Error
	case models.RoleCoach, models.RolePlayer:
		if claims.TeamID == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "No team ID associated with user"})
			return
		}
		teamPlayers := db.DB.Model(&models.Player{}).Select("id").Where("team_id = ?", *claims.TeamID)
		err = query.Where("role IN ? OR id IN (?)",
			[]models.Role{models.RoleManager, models.RoleCoach}, teamPlayers).
			Scan(&contacts).Error
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	if err != nil {
		log.Printf("Failed to fetch contacts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, contacts)
}
