package models

import "time"

type Message struct {
	BaseModel

	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index" json:"receiver_id"`
	Content    string    `gorm:"not null" json:"content"`
	Timestamp  time.Time `gorm:"not null;autoCreateTime" json:"timestamp"`

	// Relationships
	Sender   Person `gorm:"foreignKey:SenderID" json:"-"`
	Receiver Person `gorm:"foreignKey:ReceiverID" json:"-"`
}
