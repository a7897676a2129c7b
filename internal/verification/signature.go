package verification

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/tqdat410/balance-of-interests/internal/constants"
	"github.com/tqdat410/balance-of-interests/internal/game"
)

// SignatureData is the exact set of fields covered by the match signature.
// GameSessionID is the per-match nonce: it is regenerated for every match,
// so a captured signature cannot be replayed for a different one.
type SignatureData struct {
	GameSessionID string
	FinalRound    int
	GovBar        int
	BusBar        int
	WorBar        int
	Duration      int
	Ending        game.Ending
}

// message serializes the signed fields in fixed order with a fixed
// delimiter: nonce|round|gov|bus|wor|duration|ending. The meter order is
// the canonical entity order (Government, Businesses, Workers).
func (d SignatureData) message() string {
	parts := []string{
		d.GameSessionID,
		strconv.Itoa(d.FinalRound),
		strconv.Itoa(d.GovBar),
		strconv.Itoa(d.BusBar),
		strconv.Itoa(d.WorBar),
		strconv.Itoa(d.Duration),
		string(d.Ending),
	}
	return strings.Join(parts, constants.SignatureDelimiter)
}

// Sign computes the hex-encoded HMAC-SHA256 of the signature message under
// the shared secret. Client and server both call this; the server compares
// its result against the submitted signature.
func Sign(data SignatureData, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data.message()))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature matches the expected HMAC for
// data under secret. Comparison is constant-time.
func VerifySignature(data SignatureData, signature, secret string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data.message()))
	return hmac.Equal(got, mac.Sum(nil))
}
