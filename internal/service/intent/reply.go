package intent

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

var errNoJSON = errors.New("no JSON object found in reply")

// flexInt accepts both JSON numbers and numeric strings within the int32 range.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	if math.IsNaN(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return fmt.Errorf("number out of range: %s", s)
	}
	*f = flexInt(n)
	return nil
}

type classifierReply struct {
	QueryType     string  `json:"queryType"`
	Skipper       string  `json:"skipper"`
	Name          string  `json:"name"`
	BoatName      string  `json:"boatName"`
	ClubName      string  `json:"clubName"`
	YachtClub     string  `json:"yachtClub"`
	YachtClubAlt  string  `json:"yacht_club"`
	RegattaName   string  `json:"regattaName"`
	Year          flexInt `json:"year"`
	Limit         flexInt `json:"limit"`
	Metric        string  `json:"metric"`
	DateRange     string  `json:"dateRange"`
	Location      string  `json:"location"`
	NeedsLocation bool    `json:"needsLocation"`
}

// extractJSON returns the text between the first '{' and the last '}'.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}

// parseReply converts a classifier reply into an intent. text is the trimmed
// user input, used to backfill a sailor search without a name.
func parseReply(raw, text string) (domain.Intent, error) {
	js, err := extractJSON(raw)
	if err != nil {
		return domain.Intent{}, err
	}

	var r classifierReply
	if err := json.Unmarshal([]byte(js), &r); err != nil {
		return domain.Intent{}, fmt.Errorf("decode reply: %w", err)
	}

	in := r.toIntent(text)
	if !in.HasRequiredParams() {
		return domain.Intent{}, fmt.Errorf("reply %q lacks required parameters", r.QueryType)
	}
	return in, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (r classifierReply) toIntent(text string) domain.Intent {
	t := domain.IntentType(strings.TrimSpace(r.QueryType))
	club := firstNonBlank(r.ClubName, r.YachtClub, r.YachtClubAlt)

	switch t {
	case domain.IntentSailorSearch:
		name := firstNonBlank(r.Skipper, r.Name)
		if name == "" {
			name = text
		}
		return domain.SailorSearch(name)
	case domain.IntentBoatSearch:
		return domain.BoatSearch(firstNonBlank(r.BoatName, r.Name))
	case domain.IntentClubSkippers:
		return domain.ClubSkippers(club)
	case domain.IntentTopSailors:
		return domain.Intent{Type: t, YachtClub: club, Limit: positive(r.Limit)}
	case domain.IntentRegattaResults:
		return domain.RegattaResults(firstNonBlank(r.RegattaName, r.Name))
	case domain.IntentRegattaCount:
		return domain.Intent{Type: t, Year: positive(r.Year)}
	case domain.IntentRegattaStats:
		return domain.Intent{Type: t, Metric: strings.ToLower(strings.TrimSpace(r.Metric))}
	case domain.IntentRegattaSearch:
		in := domain.Intent{Type: t, Year: positive(r.Year), Limit: positive(r.Limit)}
		if dr := domain.DateRange(strings.ToLower(strings.TrimSpace(r.DateRange))); dr.IsValid() {
			in.DateRange = dr
		}
		return in
	case domain.IntentTopClubs:
		return domain.Intent{Type: t, Limit: positive(r.Limit)}
	case domain.IntentLocationQuery:
		loc := strings.TrimSpace(r.Location)
		return domain.Intent{Type: t, Location: loc, NeedsLocation: loc == ""}
	case domain.IntentUnknown:
		return domain.Unknown(text)
	}
	return domain.Intent{Type: t}
}

func positive(n flexInt) int {
	if n < 0 {
		return 0
	}
	return int(n)
}
