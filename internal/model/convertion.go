package model

import (
	"time"

	"github.com/luckdraw/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertOrganization(organization *entity.Organization) Organization {
	if organization == nil {
		return Organization{}
	}

	return Organization{
		ID:           organization.ID,
		CreatedAt:    organization.CreatedAt.Format(DefaultTimeLayout),
		Name:         organization.Name,
		Slug:         organization.Slug,
		PrimaryColor: organization.PrimaryColor,
		LogoURL:      organization.LogoURL,
	}
}

func ConvertEntry(entry *entity.Entry) Entry {
	if entry == nil {
		return Entry{}
	}

	result := Entry{
		ID:         entry.ID,
		CreatedAt:  entry.CreatedAt.Format(DefaultTimeLayout),
		Name:       entry.Name,
		Email:      entry.Email,
		Feedback:   entry.Feedback,
		IsWinner:   entry.IsWinner,
		IsNotified: entry.IsNotified,
	}

	if entry.WinnerPlace.Valid {
		result.WinnerPlace = int(entry.WinnerPlace.Int64)
	}

	if entry.NotifiedAt.Valid {
		result.NotifiedAt = entry.NotifiedAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertEntries(entries []entity.Entry) []Entry {
	modelEntries := []Entry{}
	for i := range entries {
		modelEntries = append(modelEntries, ConvertEntry(&entries[i]))
	}
	return modelEntries
}

func ConvertPrize(prize *entity.Prize) Prize {
	if prize == nil {
		return Prize{}
	}

	return Prize{
		ID:          prize.ID,
		Place:       prize.Place,
		Name:        prize.Name,
		Description: prize.Description,
		ImageURL:    prize.ImageURL,
		Link:        prize.Link,
	}
}

func ConvertPrizes(prizes []entity.Prize) []Prize {
	modelPrizes := []Prize{}
	for i := range prizes {
		modelPrizes = append(modelPrizes, ConvertPrize(&prizes[i]))
	}
	return modelPrizes
}
