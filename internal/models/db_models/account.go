package db_models

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:user"`

	Itineraries []SavedItinerary `gorm:"foreignKey:UserID"`
}
