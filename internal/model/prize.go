package model

type Prize struct {
	ID          string `json:"id"`
	Place       int    `json:"place"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"link"`
}

type CreatePrizeRequest struct {
	Place       int    `json:"place"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Link        string `json:"link"`
}

type CreatePrizeResponse struct {
	Prize Prize `json:"prize"`
}

type GetPrizesRequest struct{}

type GetPrizesResponse struct {
	Prizes []Prize `json:"prizes"`
}

type GetPrizesBySlugRequest struct {
	Slug string `json:"slug"`
}

type GetPrizesBySlugResponse struct {
	Prizes []Prize `json:"prizes"`
}

type UpdatePrizeRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Link        *string `json:"link"`
}

type UpdatePrizeResponse struct {
	Prize Prize `json:"prize"`
}

type DeletePrizeRequest struct {
	ID string `json:"id"`
}

type DeletePrizeResponse struct{}
