package models

// Person is the base identity record shared by all roles. The unique index on
// Email is the real uniqueness enforcement point; handler-side checks are only
// a fast path for friendlier errors.
type Person struct {
	BaseModel

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"type:varchar(16);not null;index"`
}
