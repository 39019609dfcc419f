package entity

// Member is an admin account belonging to an organization. Every
// authenticated request resolves to a member, whose organization is the
// scoping boundary for all data access.
type Member struct {
	Base

	Email          string `gorm:"unique"`
	HashedPassword string

	OrganizationID string
	Organization   Organization `gorm:"foreignKey:OrganizationID"`
}
