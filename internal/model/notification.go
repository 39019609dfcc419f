package model

type NotifyWinnerRequest struct {
	EntryID string `json:"entry_id"`

	// SendNow delivers the mail immediately. When false the call only
	// validates and reports the recipient, leaving the entry untouched for a
	// later delivery.
	SendNow bool `json:"send_now"`
}

type NotifyWinnerResponse struct {
	Recipient  string `json:"recipient"`
	Queued     bool   `json:"queued"`
	MessageID  string `json:"message_id,omitempty"`
	NotifiedAt string `json:"notified_at,omitempty"`
}
