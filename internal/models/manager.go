package models

// Manager shares its primary key with the Person row it extends.
type Manager struct {
	ID uint `gorm:"primarykey" json:"id"`

	Person Person `gorm:"foreignKey:ID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Teams  []Team `gorm:"foreignKey:ManagerID" json:"-"`
}
