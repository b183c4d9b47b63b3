package stripe

import "strings"

// Mode distinguishes Stripe's test and live environments.
type Mode string

const (
	ModeUnknown Mode = ""
	ModeTest    Mode = "test"
	ModeLive    Mode = "live"
)

func (m Mode) String() string {
	return string(m)
}

// testPrefixes covers the Stripe object families the platform stores
// references to: connected accounts, checkout sessions, payment intents,
// transfers, charges, and webhook events.
var testPrefixes = []string{
	"acct_test_",
	"cs_test_",
	"pi_test_",
	"tr_test_",
	"ch_test_",
	"evt_test_",
}

// ModeFromSecretKey derives the mode from an API secret key prefix.
func ModeFromSecretKey(key string) Mode {
	switch {
	case strings.HasPrefix(key, "sk_test"), strings.HasPrefix(key, "rk_test"):
		return ModeTest
	case strings.HasPrefix(key, "sk_live"), strings.HasPrefix(key, "rk_live"):
		return ModeLive
	default:
		return ModeUnknown
	}
}

// ClassifyIdentifier reports which mode a stored Stripe object identifier
// belongs to. Identifiers without a test prefix are live; an empty
// identifier belongs to no mode at all.
func ClassifyIdentifier(id string) Mode {
	if id == "" {
		return ModeUnknown
	}
	for _, p := range testPrefixes {
		if strings.HasPrefix(id, p) {
			return ModeTest
		}
	}
	return ModeLive
}

// MatchesMode reports whether the identifier belongs to the given mode.
// Empty identifiers never match, so rows without a Stripe reference are
// excluded from mode-filtered aggregates instead of polluting them.
func MatchesMode(id string, mode Mode) bool {
	if id == "" || mode == ModeUnknown {
		return false
	}
	return ClassifyIdentifier(id) == mode
}
