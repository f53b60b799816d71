package dto

import "time"

// CreateCompanyRequest alta de empresa.
type CreateCompanyRequest struct {
	Name string `json:"name"`
}

// CompanyResponse representación pública de una empresa.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanyListResponse listado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}
