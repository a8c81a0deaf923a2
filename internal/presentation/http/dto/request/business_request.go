package request

// RegisterBusinessRequest represents a business registration request
type RegisterBusinessRequest struct {
	BusinessName string  `json:"business_name" binding:"required,min=2,max=255"`
	OwnerName    string  `json:"owner_name" binding:"required,min=2,max=255"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	Phone        *string `json:"phone"`
	GSTNumber    *string `json:"gst_number"`
	Address      *string `json:"address"`
}

// UpdateBusinessProfileRequest represents a business profile update
type UpdateBusinessProfileRequest struct {
	Name      string  `json:"name" binding:"omitempty,min=2,max=255"`
	Email     *string `json:"email" binding:"omitempty"`
	Phone     *string `json:"phone"`
	GSTNumber *string `json:"gst_number"`
	Address   *string `json:"address"`
}

// RejectBusinessRequest represents an admin rejection
type RejectBusinessRequest struct {
	Reason string `json:"reason"`
}

// BusinessFilterRequest represents business filter parameters
type BusinessFilterRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
