package handler

type categoryRequest struct {
	Name string `json:"name" form:"name" validate:"required"`
}

type categoryEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Category categoryResponse `json:"category"`
}

type categoryListEnvelope struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Category []categoryResponse `json:"category"`
}

// productRequest accepts JSON or form fields. Photos are not handled here.
type productRequest struct {
	Name        string  `json:"name"        form:"name"        validate:"required"`
	Description string  `json:"description" form:"description" validate:"required"`
	Price       float64 `json:"price"       form:"price"       validate:"gte=0"`
	Category    string  `json:"category"    form:"category"    validate:"required"`
	Quantity    int     `json:"quantity"    form:"quantity"    validate:"gte=0"`
	Shipping    bool    `json:"shipping"    form:"shipping"`
}

type productFiltersRequest struct {
	Checked []string  `json:"checked"`
	Radio   []float64 `json:"radio"`
}

type productEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product productResponse `json:"product"`
}

type productWriteEnvelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Products productResponse `json:"products"`
}

type productListEnvelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	CountTotal int               `json:"countTotal,omitempty"`
	Products   []productResponse `json:"products"`
}

type productCountEnvelope struct {
	Success bool  `json:"success"`
	Total   int64 `json:"total"`
}

type productCategoryEnvelope struct {
	Success  bool              `json:"success"`
	Category categoryResponse  `json:"category"`
	Products []productResponse `json:"products"`
}
