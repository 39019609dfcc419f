package model

// AccessToken is the object embedded in the JWT issued at login.
type AccessToken struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	OrganizationID string `json:"organization_id"`
}

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	OrganizationName string `json:"organization_name"`
}

type RegisterResponse struct {
	AccessToken  string       `json:"access_token"`
	Organization Organization `json:"organization"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	Organization Organization `json:"organization"`
}
