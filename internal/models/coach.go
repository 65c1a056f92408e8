package models

// Coach shares its primary key with the Person row it extends. A coach is
// assigned to at most one team at a time.
type Coach struct {
	ID     uint  `gorm:"primarykey" json:"id"`
	TeamID *uint `gorm:"index" json:"team_id"`

	Person Person `gorm:"foreignKey:ID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
