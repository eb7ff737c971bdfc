package models

// Error describes a single API error
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the JSON envelope for failed requests
type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

// SuccessResponse is the JSON envelope for generic successful requests
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}

// PaginationInfo describes the page window of a list response
type PaginationInfo struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNext     bool  `json:"hasNext"`
	HasPrevious bool  `json:"hasPrevious"`
}

// ProductListResponse is the paged product list envelope
type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// HomeResponse aggregates the public storefront home payload
type HomeResponse struct {
	Success    bool        `json:"success"`
	HeroSlides []HeroSlide `json:"heroSlides"`
	Featured   []Product   `json:"featured"`
	Brands     []Brand     `json:"brands"`
	Categories []Category  `json:"categories"`
}
