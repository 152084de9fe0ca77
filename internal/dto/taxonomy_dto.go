package dto

type CreateTaxonomyRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	Slug         string `json:"slug" validate:"required,max=200"`
	Introduction string `json:"introduction"`
}

type TaxonomyResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Introduction string `json:"introduction,omitempty"`
}
