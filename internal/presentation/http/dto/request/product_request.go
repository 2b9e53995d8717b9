package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name                  string    `json:"name" binding:"required,min=2,max=255"`
	Code                  string    `json:"code" binding:"omitempty,max=100"`
	Category              string    `json:"category" binding:"omitempty,max=100"`
	Mode                  string    `json:"mode" binding:"omitempty,oneof=standard sticker laser automotive"`
	UnitType              string    `json:"unit_type" binding:"omitempty,oneof=m2 un ml"`
	CostPrice             float64   `json:"cost_price" binding:"min=0"`
	ProductionTimeMinutes float64   `json:"production_time_minutes" binding:"min=0"`
	WastePercent          float64   `json:"waste_percent" binding:"min=0"`
	SalePriceOverride     *float64  `json:"sale_price_override" binding:"omitempty,min=0"`
	Stock                 int       `json:"stock"`
	AvailableRollWidths   []float64 `json:"available_roll_widths" binding:"omitempty,dive,gt=0"`
	SupplierBaseCost      float64   `json:"supplier_base_cost" binding:"min=0"`
	SuggestedMarkup       float64   `json:"suggested_markup" binding:"min=0"`
	Notes                 *string   `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name                  *string   `json:"name" binding:"omitempty,min=2,max=255"`
	Code                  *string   `json:"code" binding:"omitempty,max=100"`
	Category              *string   `json:"category" binding:"omitempty,max=100"`
	Mode                  *string   `json:"mode" binding:"omitempty,oneof=standard sticker laser automotive"`
	UnitType              *string   `json:"unit_type" binding:"omitempty,oneof=m2 un ml"`
	CostPrice             *float64  `json:"cost_price" binding:"omitempty,min=0"`
	ProductionTimeMinutes *float64  `json:"production_time_minutes" binding:"omitempty,min=0"`
	WastePercent          *float64  `json:"waste_percent" binding:"omitempty,min=0"`
	SalePriceOverride     *float64  `json:"sale_price_override" binding:"omitempty,min=0"`
	ResetSalePrice        bool      `json:"reset_sale_price"`
	Stock                 *int      `json:"stock"`
	AvailableRollWidths   []float64 `json:"available_roll_widths" binding:"omitempty,dive,gt=0"`
	SupplierBaseCost      *float64  `json:"supplier_base_cost" binding:"omitempty,min=0"`
	SuggestedMarkup       *float64  `json:"suggested_markup" binding:"omitempty,min=0"`
	Notes                 *string   `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Mode     string `form:"mode"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// PricePreviewRequest carries the cost inputs of a product being edited
type PricePreviewRequest struct {
	CostPrice             float64 `json:"cost_price" binding:"min=0"`
	ProductionTimeMinutes float64 `json:"production_time_minutes" binding:"min=0"`
	WastePercent          float64 `json:"waste_percent" binding:"min=0"`
}
