package models

type Team struct {
	BaseModel

	Name      string `gorm:"not null" json:"name"`
	CoachID   *uint  `gorm:"index" json:"coach_id"`
	ManagerID uint   `gorm:"not null;index" json:"manager_id"`

	// Relationships
	Manager   Manager    `gorm:"foreignKey:ManagerID" json:"-"`
	Players   []Player   `gorm:"foreignKey:TeamID" json:"-"`
	Schedules []Schedule `gorm:"foreignKey:TeamID" json:"-"`
}
