package models

// Player shares its primary key with the Person row it extends. TeamID is nil
// for a player who registered before being placed on a roster.
type Player struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Position string `gorm:"not null" json:"position"`
	Goals    int    `gorm:"not null;default:0" json:"goals"`
	TeamID   *uint  `gorm:"index" json:"team_id"`

	Person Person `gorm:"foreignKey:ID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Team   *Team  `gorm:"foreignKey:TeamID" json:"-"`
}
