package regattacsv

// Header synonyms per record field, in priority order. Matching is case-insensitive
// on the whole trimmed header.
var (
	regattaNameHeaders = []string{"regatta name", "regatta", "event name", "event", "regatta_name"}
	regattaDateHeaders = []string{"regatta date", "date", "event date", "regatta_date"}
	categoryHeaders    = []string{"category", "class", "boat class", "division"}
	positionHeaders    = []string{"position", "place", "rank", "finish"}
	sailNumberHeaders  = []string{"sail number", "sail #", "sail", "number", "sail_number"}
	boatNameHeaders    = []string{"boat name", "boat", "vessel", "boat_name"}
	skipperHeaders     = []string{"skipper", "sailor", "racer", "person", "competitor", "name", "kid", "adult"}
	yachtClubHeaders   = []string{"yacht club", "club", "team", "organization", "yacht_club"}
	resultsHeaders     = []string{"results", "races", "race results", "scores"}
	totalPointsHeaders = []string{"total points", "points", "score", "total", "total_points"}
)
