package game

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/osse101/CloverPit_Go/internal/domain"
)

var (
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
	sessionIDPattern = regexp.MustCompile(fmt.Sprintf(`^[a-f0-9]{%d}$`, domain.SessionIDLength))
)

// normalizePlayerName trims and NFC-normalises a player name, then checks its length and content
func normalizePlayerName(name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))

	length := utf8.RuneCountInString(name)
	if length < domain.PlayerNameMinLength || length > domain.PlayerNameMaxLength {
		return "", fmt.Errorf(ErrFmtPlayerNameLength, domain.ErrValidationFailure, domain.PlayerNameMinLength, domain.PlayerNameMaxLength)
	}
	if htmlTagPattern.MatchString(name) {
		return "", fmt.Errorf(ErrFmtPlayerNameHTML, domain.ErrValidationFailure)
	}
	return name, nil
}

func validateSessionID(sessionID string) error {
	if !sessionIDPattern.MatchString(sessionID) {
		return fmt.Errorf(ErrFmtSessionIDFormat, domain.ErrValidationFailure)
	}
	return nil
}

func validateItemID(itemID int) error {
	if itemID < 1 {
		return fmt.Errorf(ErrFmtItemIDInvalid, domain.ErrValidationFailure, itemID)
	}
	return nil
}
