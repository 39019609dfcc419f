package entity

import "database/sql"

// Entry is a customer feedback submission and the unit eligible to win a
// prize draw.
//
// Two composite unique indexes carry the concurrency guarantees of the draw:
// the email one makes submissions unique per organization (the same address
// may enter the draws of two different organizations), and the winner-place
// one makes a prize place hold at most one winner per organization. Entries
// that have not won keep a NULL place, which the index ignores.
type Entry struct {
	Base

	OrganizationID string       `gorm:"uniqueIndex:idx_entries_org_email,priority:1;uniqueIndex:idx_entries_org_place,priority:1"`
	Organization   Organization `gorm:"foreignKey:OrganizationID"`

	Name     string
	Email    string `gorm:"uniqueIndex:idx_entries_org_email,priority:2"`
	Feedback string `gorm:"type:text"`

	IsWinner    bool
	WinnerPlace sql.NullInt64 `gorm:"uniqueIndex:idx_entries_org_place,priority:2"`

	IsNotified bool
	NotifiedAt sql.NullTime
}
