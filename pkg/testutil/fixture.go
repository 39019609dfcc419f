package testutil

import (
	"context"
	"database/sql"

	"github.com/luckdraw/backend/internal/entity"
	"github.com/luckdraw/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const (
	Organization1ID = "organization1"
	Organization2ID = "organization2"

	Member1ID       = "member1"
	Member1Email    = "owner1@example.com"
	Member1Password = "password-one"
	Member2ID       = "member2"
	Member2Email    = "owner2@example.com"
	Member2Password = "password-two"

	Entry1ID = "entry1"
	Entry2ID = "entry2"
	Entry3ID = "entry3"

	Prize1ID = "prize1"
	Prize2ID = "prize2"
)

// CreateFixtureDb populates the database of ctx with two organizations, their
// admin members, a few entries and prizes for organization1.
func CreateFixtureDb(ctx context.Context) {
	InsertOrganizations(ctx)
	InsertMembers(ctx)
	InsertEntries(ctx)
	InsertPrizes(ctx)
}

func InsertOrganizations(ctx context.Context) {
	organizationRepo := repository.NewOrganizationRepository(nil)

	err := organizationRepo.Create(ctx, &entity.Organization{
		Base:         entity.Base{ID: Organization1ID},
		Name:         "Joe's Salon",
		Slug:         "joes-salon",
		PrimaryColor: entity.DefaultPrimaryColor,
	})
	if err != nil {
		panic(err)
	}

	err = organizationRepo.Create(ctx, &entity.Organization{
		Base:         entity.Base{ID: Organization2ID},
		Name:         "Corner Cafe",
		Slug:         "corner-cafe",
		PrimaryColor: "#0ea5e9",
	})
	if err != nil {
		panic(err)
	}
}

func InsertMembers(ctx context.Context) {
	memberRepo := repository.NewMemberRepository()

	for _, member := range []struct {
		id, email, password, organizationID string
	}{
		{Member1ID, Member1Email, Member1Password, Organization1ID},
		{Member2ID, Member2Email, Member2Password, Organization2ID},
	} {
		hashed, err := bcrypt.GenerateFromPassword([]byte(member.password), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}

		err = memberRepo.Create(ctx, &entity.Member{
			Base:           entity.Base{ID: member.id},
			Email:          member.email,
			HashedPassword: string(hashed),
			OrganizationID: member.organizationID,
		})
		if err != nil {
			panic(err)
		}
	}
}

func InsertEntries(ctx context.Context) {
	entryRepo := repository.NewEntryRepository()

	err := entryRepo.Create(ctx, &entity.Entry{
		Base:           entity.Base{ID: Entry1ID},
		OrganizationID: Organization1ID,
		Name:           "Alice",
		Email:          "alice@example.com",
		Feedback:       "Great haircut, will come back!",
	})
	if err != nil {
		panic(err)
	}

	err = entryRepo.Create(ctx, &entity.Entry{
		Base:           entity.Base{ID: Entry2ID},
		OrganizationID: Organization1ID,
		Name:           "Bob",
		Email:          "bob@example.com",
		Feedback:       "Friendly staff.",
	})
	if err != nil {
		panic(err)
	}

	err = entryRepo.Create(ctx, &entity.Entry{
		Base:           entity.Base{ID: Entry3ID},
		OrganizationID: Organization1ID,
		Name:           "Carol",
		Email:          "carol@example.com",
		Feedback:       "Loved the head massage.",
		IsWinner:       true,
		WinnerPlace:    sql.NullInt64{Int64: 1, Valid: true},
	})
	if err != nil {
		panic(err)
	}
}

func InsertPrizes(ctx context.Context) {
	prizeRepo := repository.NewPrizeRepository()

	err := prizeRepo.Create(ctx, &entity.Prize{
		Base:           entity.Base{ID: Prize1ID},
		OrganizationID: Organization1ID,
		Place:          1,
		Name:           "Free haircut for a year",
		Description:    "One free haircut every month for twelve months.",
	})
	if err != nil {
		panic(err)
	}

	err = prizeRepo.Create(ctx, &entity.Prize{
		Base:           entity.Base{ID: Prize2ID},
		OrganizationID: Organization1ID,
		Place:          2,
		Name:           "Styling kit",
	})
	if err != nil {
		panic(err)
	}
}
