package dto

// ── 类别 / 品牌 / 供应商 目录 DTO ──

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Name        string `json:"name"        binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// UpdateCategoryRequest 更新类别请求
type UpdateCategoryRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// CategoryResponse 类别信息响应
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateBrandRequest 创建品牌请求
type CreateBrandRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateBrandRequest 更新品牌请求
type UpdateBrandRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// BrandResponse 品牌信息响应
type BrandResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateSupplierRequest 创建供应商请求
type CreateSupplierRequest struct {
	Name    string `json:"name"    binding:"required,min=2,max=100"`
	Contact string `json:"contact" binding:"omitempty,max=255"`
	Phone   string `json:"phone"   binding:"omitempty,max=30"`
}

// UpdateSupplierRequest 更新供应商请求
type UpdateSupplierRequest struct {
	Name    *string `json:"name"    binding:"omitempty,min=2,max=100"`
	Contact *string `json:"contact" binding:"omitempty,max=255"`
	Phone   *string `json:"phone"   binding:"omitempty,max=30"`
}

// SupplierResponse 供应商信息响应
type SupplierResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
