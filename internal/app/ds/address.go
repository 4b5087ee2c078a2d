package ds

import "time"

// Адрес доставки пользователя
type Address struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;index"`
	RegionID  uint    `gorm:"not null"`
	CityID    uint    `gorm:"not null"`
	MetroID   *uint   `gorm:"default:null"`
	Street    string  `gorm:"type:varchar(200);not null"`
	House     string  `gorm:"type:varchar(50);not null"`
	Apartment *string `gorm:"type:varchar(50)"`
	Comment   *string `gorm:"type:text"`
	IsDefault bool    `gorm:"type:boolean;default:false;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User   User            `gorm:"foreignKey:UserID"`
	Region DictionaryItem  `gorm:"foreignKey:RegionID"`
	City   DictionaryItem  `gorm:"foreignKey:CityID"`
	Metro  *DictionaryItem `gorm:"foreignKey:MetroID"`
}
