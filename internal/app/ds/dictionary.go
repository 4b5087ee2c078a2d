package ds

import "time"

// Имена системных справочников
const (
	DictionaryRegions         = "regions"
	DictionaryCities          = "cities"
	DictionaryMetroStations   = "metro_stations"
	DictionaryMaterials       = "materials"
	DictionaryColors          = "colors"
	DictionaryDeliveryMethods = "delivery_methods"
)

// Справочник (regions, cities, materials и т.д.)
type Dictionary struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(100);unique;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Элемент справочника. ParentID связывает иерархию:
// город -> регион, станция метро -> город.
type DictionaryItem struct {
	ID           uint    `gorm:"primaryKey"`
	DictionaryID uint    `gorm:"not null;index"`
	Value        string  `gorm:"type:varchar(200);not null"`
	ParentID     *uint   `gorm:"index;default:null"`
	Code         *string `gorm:"type:varchar(50)"`
	SortOrder    int     `gorm:"type:int;default:0"`
	IsActive     bool    `gorm:"type:boolean;default:true;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Dictionary Dictionary      `gorm:"foreignKey:DictionaryID"`
	Parent     *DictionaryItem `gorm:"foreignKey:ParentID"`
}
