package entity

const DefaultPrimaryColor = "#7c3aed"

type Organization struct {
	Base

	Name string

	// Slug is the public url-safe identifier of the organization. It is
	// allocated once at registration and never changes afterwards, even if
	// the organization is renamed.
	Slug string `gorm:"unique"`

	PrimaryColor string
	LogoURL      string
}
