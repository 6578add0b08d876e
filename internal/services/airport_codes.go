package services

import (
	"regexp"
	"strings"
	"unicode"

	"tripmaker/internal/models/response_models"
)

type cityAirport struct {
	city string
	code string
	word *regexp.Regexp // set for Latin-script names only
}

// Order matters: the first matching city wins.
var cityAirports = buildCityAirports([][2]string{
	{"인천", "ICN"}, {"서울", "ICN"}, {"부산", "PUS"}, {"제주", "CJU"}, {"대구", "TAE"}, {"청주", "CJJ"},
	{"오사카", "KIX"}, {"도쿄", "NRT"}, {"후쿠오카", "FUK"}, {"삿포로", "CTS"}, {"오키나와", "OKA"},
	{"다낭", "DAD"}, {"나트랑", "CXR"}, {"방콕", "BKK"}, {"세부", "CEB"}, {"발리", "DPS"},
	{"싱가포르", "SIN"}, {"롬복", "LOP"}, {"길리", "LOP"},
	{"파리", "CDG"}, {"로마", "FCO"}, {"런던", "LHR"}, {"뉴욕", "JFK"},

	{"首尔", "ICN"}, {"仁川", "ICN"}, {"釜山", "PUS"}, {"济州", "CJU"}, {"大邱", "TAE"},
	{"大阪", "KIX"}, {"东京", "NRT"}, {"福冈", "FUK"}, {"札幌", "CTS"}, {"冲绳", "OKA"},
	{"岘港", "DAD"}, {"芽庄", "CXR"}, {"曼谷", "BKK"}, {"宿务", "CEB"}, {"巴厘", "DPS"},
	{"新加坡", "SIN"}, {"巴黎", "CDG"}, {"罗马", "FCO"}, {"伦敦", "LHR"}, {"纽约", "JFK"},

	{"Incheon", "ICN"}, {"Seoul", "ICN"}, {"Busan", "PUS"}, {"Jeju", "CJU"}, {"Daegu", "TAE"}, {"Cheongju", "CJJ"},
	{"Osaka", "KIX"}, {"Tokyo", "NRT"}, {"Fukuoka", "FUK"}, {"Sapporo", "CTS"}, {"Okinawa", "OKA"},
	{"Da Nang", "DAD"}, {"Danang", "DAD"}, {"Nha Trang", "CXR"}, {"Bangkok", "BKK"}, {"Cebu", "CEB"},
	{"Bali", "DPS"}, {"Singapore", "SIN"}, {"Lombok", "LOP"}, {"Gili", "LOP"},
	{"Paris", "CDG"}, {"Rome", "FCO"}, {"London", "LHR"}, {"New York", "JFK"},
})

func buildCityAirports(pairs [][2]string) []cityAirport {
	out := make([]cityAirport, 0, len(pairs))
	for _, p := range pairs {
		ca := cityAirport{city: p[0], code: p[1]}
		if isLatin(p[0]) {
			ca.word = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\b`)
		}
		out = append(out, ca)
	}
	return out
}

func isLatin(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.In(r, unicode.Latin) {
			return false
		}
	}
	return true
}

// FindIataCode returns the airport of the first table city found in text.
func FindIataCode(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	for _, ca := range cityAirports {
		if ca.word != nil {
			if ca.word.MatchString(text) {
				return ca.code, true
			}
			continue
		}
		if strings.Contains(text, ca.city) {
			return ca.code, true
		}
	}
	return "", false
}

// ExtractAirportCodes derives arrival and departure airports from the first
// and last day of the plan, falling back to the title and then destination.
// Departure is copied from arrival only when arrival came from that fallback.
// Codes the model wrote itself are ignored.
func ExtractAirportCodes(plan *response_models.ItineraryPlan) (arrival, departure *string) {
	if plan == nil {
		return nil, nil
	}

	var in, out string
	if n := len(plan.Itinerary); n > 0 {
		in, _ = FindIataCode(dayText(plan.TripTitle, plan.Itinerary[0]))
		out, _ = FindIataCode(dayText(plan.TripTitle, plan.Itinerary[n-1]))
	}

	if in == "" {
		var ok bool
		if in, ok = FindIataCode(plan.TripTitle); !ok {
			in, _ = FindIataCode(plan.Destination)
		}
		if out == "" {
			out = in
		}
	}

	return optionalString(in), optionalString(out)
}

func dayText(title string, day response_models.DayPlan) string {
	parts := make([]string, 0, len(day.Places)+1)
	parts = append(parts, title)
	for _, p := range day.Places {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, " ")
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
