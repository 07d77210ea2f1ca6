package intent

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// rule is one local classification strategy. Rules are tried in order and the
// first match wins.
type rule struct {
	name  string
	match func(text string) (domain.Intent, bool)
}

var rules = []rule{
	{name: "bare_name", match: matchBareName},
	{name: "club_token", match: matchClubToken},
	{name: "regatta_phrase", match: matchRegattaPhrase},
}

var (
	bareNameRe      = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+){0,2}$`)
	clubKeywordRe   = regexp.MustCompile(`(?i)^(?:yacht club|club|team)\s+(.+)$`)
	clubAcronymRe   = regexp.MustCompile(`^[A-Z]{2,5}$`)
	regattaPhraseRe = regexp.MustCompile(`(?i)(?:results?|positions?|race|sailors?|competitors?)\s+(?:(?:of|in|for|from)\s+)?(.+?)(?:\s+regatta|\s+race|\s+results?)?$`)
)

func matchBareName(text string) (domain.Intent, bool) {
	if !bareNameRe.MatchString(text) {
		return domain.Intent{}, false
	}
	return domain.SailorSearch(text), true
}

func matchClubToken(text string) (domain.Intent, bool) {
	if m := clubKeywordRe.FindStringSubmatch(text); m != nil {
		if club := cleanPhrase(m[1]); club != "" {
			return domain.ClubSkippers(club), true
		}
	}
	if clubAcronymRe.MatchString(text) {
		return domain.ClubSkippers(text), true
	}
	return domain.Intent{}, false
}

func matchRegattaPhrase(text string) (domain.Intent, bool) {
	m := regattaPhraseRe.FindStringSubmatch(text)
	if m == nil {
		return domain.Intent{}, false
	}
	name := cleanPhrase(m[1])
	if name == "" {
		return domain.Intent{}, false
	}
	return domain.RegattaResults(name), true
}

// cleanPhrase trims whitespace and trailing sentence punctuation.
func cleanPhrase(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "?.!"))
}

// looksLikeName is the fallback used when the classifier reply is unusable:
// one to three words starting with a capital letter.
func looksLikeName(text string) bool {
	words := strings.Fields(text)
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	first := words[0][0]
	return first >= 'A' && first <= 'Z'
}
