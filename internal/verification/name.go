package verification

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tqdat410/balance-of-interests/internal/constants"
)

var (
	ErrNameLength     = fmt.Errorf(constants.ErrNameLengthFmt, constants.NameMinLength, constants.NameMaxLength)
	ErrNameNotAllowed = errors.New("name contains a disallowed word")
)

// blockedNameFragments are matched as case-insensitive substrings against
// the trimmed display name. Reserved words first, then common profanity in
// the languages the game ships in.
var blockedNameFragments = []string{
	// Reserved words
	"admin",
	"administrator",
	"moderator",
	"system",
	"root",

	// English
	"fuck",
	"shit",
	"bitch",
	"asshole",
	"cunt",

	// Vietnamese
	"đụ",
	"địt",
	"vcl",
	"đéo",
	"buồi",
	"lồn",
	"cặc",
	"óc chó",
	"điếm",
	"đĩ",
	"cứt",
}

// ValidateName trims the submitted display name, enforces length bounds
// and rejects names containing a blocked fragment. It returns the trimmed
// name that should be persisted.
func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	if n < constants.NameMinLength || n > constants.NameMaxLength {
		return "", ErrNameLength
	}
	lower := strings.ToLower(trimmed)
	for _, frag := range blockedNameFragments {
		if strings.Contains(lower, frag) {
			return "", ErrNameNotAllowed
		}
	}
	return trimmed, nil
}
