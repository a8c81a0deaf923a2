package request

// CustomerRequest represents a customer create/update request
type CustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerFilterRequest represents customer filter parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
