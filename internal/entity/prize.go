package entity

type Prize struct {
	Base

	OrganizationID string       `gorm:"uniqueIndex:idx_prizes_org_place,priority:1"`
	Organization   Organization `gorm:"foreignKey:OrganizationID"`

	// Place is the rank of the prize (1st, 2nd, ...), unique within the
	// organization.
	Place int `gorm:"uniqueIndex:idx_prizes_org_place,priority:2"`

	Name        string
	Description string `gorm:"type:text"`
	ImageURL    string
	Link        string
}
