package model

type Entry struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Feedback    string `json:"feedback"`
	IsWinner    bool   `json:"is_winner"`
	WinnerPlace int    `json:"winner_place,omitempty"`
	IsNotified  bool   `json:"is_notified"`
	NotifiedAt  string `json:"notified_at,omitempty"`
}

type SubmitEntryRequest struct {
	OrganizationSlug string `json:"organization_slug"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Feedback         string `json:"feedback"`
}

type SubmitEntryResponse struct {
	Entry Entry `json:"entry"`
}

type GetEntryRequest struct {
	ID string `json:"id"`
}

type GetEntryResponse struct {
	Entry Entry `json:"entry"`
}

type GetEntriesRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type GetEntriesResponse struct {
	Entries []Entry `json:"entries"`
	Total   int64   `json:"total"`
}

// Pointer fields distinguish "leave unchanged" (absent) from "set to the
// given value". An empty string clears nothing because every field here is
// required to be non-empty when present.
type UpdateEntryRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Feedback *string `json:"feedback"`
}

type UpdateEntryResponse struct {
	Entry Entry `json:"entry"`
}

type DeleteEntryRequest struct {
	ID string `json:"id"`
}

type DeleteEntryResponse struct{}

type DrawEntryRequest struct{}

type DrawEntryResponse struct {
	Entry Entry `json:"entry"`
}

type AssignWinnerRequest struct {
	EntryID string `json:"entry_id"`
	Place   int    `json:"place"`
}

type AssignWinnerResponse struct {
	Entry Entry `json:"entry"`
}
