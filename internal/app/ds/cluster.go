package ds

import "time"

// Состояния кластера: draft -> active <-> inactive -> archived
const (
	ClusterStateDraft    = "draft"
	ClusterStateActive   = "active"
	ClusterStateInactive = "inactive"
	ClusterStateArchived = "archived"
)

// Таблица кластеров - географические группы принтеров одного владельца
type Cluster struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`

	// Локация: регион -> город -> метро (элементы справочников)
	RegionID uint  `gorm:"not null"`
	CityID   uint  `gorm:"not null"`
	MetroID  *uint `gorm:"default:null"`

	ParentClusterID *uint  `gorm:"default:null"`
	State           string `gorm:"type:varchar(20);default:'draft';not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Owner         User            `gorm:"foreignKey:UserID"`
	Region        DictionaryItem  `gorm:"foreignKey:RegionID"`
	City          DictionaryItem  `gorm:"foreignKey:CityID"`
	Metro         *DictionaryItem `gorm:"foreignKey:MetroID"`
	ParentCluster *Cluster        `gorm:"foreignKey:ParentClusterID"`
}

// М-М кластеры-способы доставки
type ClusterDelivery struct {
	ID               uint `gorm:"primaryKey"`
	ClusterID        uint `gorm:"not null;index;uniqueIndex:idx_cluster_delivery"`
	DeliveryMethodID uint `gorm:"not null;uniqueIndex:idx_cluster_delivery"`
	CreatedAt        time.Time

	Cluster        Cluster        `gorm:"foreignKey:ClusterID"`
	DeliveryMethod DictionaryItem `gorm:"foreignKey:DeliveryMethodID"`
}
