package model

type Organization struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	PrimaryColor string `json:"primary_color"`
	LogoURL      string `json:"logo_url"`
}

type GetMyOrganizationRequest struct{}

type GetMyOrganizationResponse struct {
	Organization Organization `json:"organization"`
}

type UpdateOrganizationRequest struct {
	Name         *string `json:"name"`
	PrimaryColor *string `json:"primary_color"`
	LogoURL      *string `json:"logo_url"`
}

type UpdateOrganizationResponse struct {
	Organization Organization `json:"organization"`
}

type GetOrganizationBySlugRequest struct {
	Slug string `json:"slug"`
}

type GetOrganizationBySlugResponse struct {
	Organization Organization `json:"organization"`
}

type UploadLogoRequest struct{}

type UploadLogoResponse struct {
	Url string `json:"url"`
}
