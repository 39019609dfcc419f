package domain

import (
	"context"
	"errors"
	"regexp"
	"unicode"

	"github.com/luckdraw/backend/internal/repository"
	"github.com/luckdraw/backend/pkg/errorx"
	"github.com/luckdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var (
	emailPattern        = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	primaryColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func checkEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errorx.New(errorx.BadRequest, "Invalid email address")
	}

	return nil
}

func checkPassword(password string) error {
	if len(password) < 8 {
		return errorx.New(errorx.BadRequest, "Password too short (at least 8 characters)")
	}

	return nil
}

func checkOrganizationName(name string) error {
	if len(name) < 2 {
		return errorx.New(errorx.BadRequest, "Organization name too short (at least 2 characters)")
	}

	if len(name) > 64 {
		return errorx.New(errorx.BadRequest, "Organization name too long (at most 64 characters)")
	}

	return nil
}

func checkPrimaryColor(color string) error {
	if !primaryColorPattern.MatchString(color) {
		return errorx.New(errorx.BadRequest, "Invalid primary color")
	}

	return nil
}

// generateOrganizationSlug lowercases the name and collapses every run of
// non-alphanumeric characters into a single hyphen.
func generateOrganizationSlug(name string) string {
	slug := []rune{}
	pendingHyphen := false
	for _, c := range name {
		if isAsciiAlphanumeric(c) {
			if pendingHyphen && len(slug) > 0 {
				slug = append(slug, '-')
			}

			slug = append(slug, unicode.ToLower(c))
			pendingHyphen = false
		} else {
			pendingHyphen = true
		}
	}

	if len(slug) == 0 {
		return "draw"
	}

	return string(slug)
}

func isAsciiAlphanumeric(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// requestOrganizationID resolves the authenticated member to its organization,
// the scoping boundary of every admin operation.
func requestOrganizationID(ctx context.Context, memberRepo repository.MemberRepository) (string, error) {
	memberID := xcontext.RequestUserID(ctx)
	if memberID == "" {
		return "", errorx.New(errorx.Unauthenticated, "You need to login before")
	}

	member, err := memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errorx.New(errorx.Unauthenticated, "You need to login before")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return "", errorx.Unknown
	}

	return member.OrganizationID, nil
}
