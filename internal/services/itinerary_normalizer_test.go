package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripmaker/internal/models/response_models"
	"tripmaker/pkg/utils"
)

const kyotoModelOutput = `{
  "tripTitle": "교토 2박 3일 문화 여행",
  "arrivalIata": "ZZZ",
  "weather": "맑음, 8~15도",
  "travelTips": ["IC 카드를 준비하세요"],
  "estimatedCost": 1500000,
  "itinerary": [
    {"day": 1, "date": "2025-03-01", "places": [
      {"order": 1, "name": "기요미즈데라", "category": "관광지", "lat": "34.9949", "lng": 135.7850},
      {"name": "니시키 시장", "category": "음식점", "lat": "35.0116", "lng": null}
    ]},
    {"day": "2", "date": "2025-03-02", "places": [
      {"order": "1", "name": "후시미 이나리", "lat": 34.9671, "lng": 135.7727}
    ]},
    {"day": 3, "date": "2025-03-03", "places": []}
  ]
}`

func TestDecodeAndNormalize(t *testing.T) {
	raw, err := DecodeItinerary(kyotoModelOutput)
	require.NoError(t, err)

	plan := NormalizeItinerary(raw, "교토")
	require.Len(t, plan.Itinerary, 3)
	assert.Equal(t, "교토 2박 3일 문화 여행", plan.TripTitle)
	assert.Equal(t, "1500000", plan.EstimatedCost)
	assert.Equal(t, []string{}, plan.BudgetBreakdown)
	assert.Equal(t, []response_models.RecommendedHotel{}, plan.RecommendedHotels)

	day1 := plan.Itinerary[0].Places
	require.NotNil(t, day1[0].Coordinates)
	assert.Equal(t, response_models.Coordinates{Lat: 34.9949, Lng: 135.7850}, *day1[0].Coordinates)
	assert.Nil(t, day1[1].Coordinates, "one missing axis means no coordinates")
	assert.Equal(t, 2, day1[1].Order, "missing order falls back to position")

	assert.Equal(t, 2, plan.Itinerary[1].Day)
	assert.Equal(t, 1, plan.MissingCoordinates())

	// No table city appears anywhere, and model-supplied codes are ignored.
	assert.Nil(t, plan.ArrivalIata)
	assert.Nil(t, plan.DepartureIata)
}

func TestNormalize_AirportFromTitle(t *testing.T) {
	raw, err := DecodeItinerary(`{"tripTitle":"오사카 여행","itinerary":[{"day":1,"places":[{"name":"도톤보리"}]}]}`)
	require.NoError(t, err)

	plan := NormalizeItinerary(raw, "오사카")
	require.NotNil(t, plan.ArrivalIata)
	require.NotNil(t, plan.DepartureIata)
	assert.Equal(t, "KIX", *plan.ArrivalIata)
	assert.Equal(t, "KIX", *plan.DepartureIata)
}

func TestExtractAirportCodes_OpenJaw(t *testing.T) {
	plan := &response_models.ItineraryPlan{
		Destination: "일본",
		TripTitle:   "일본 일주",
		Itinerary: []response_models.DayPlan{
			{Day: 1, Places: []response_models.Place{{Name: "오사카성"}}},
			{Day: 2, Places: []response_models.Place{{Name: "교토역"}}},
			{Day: 3, Places: []response_models.Place{{Name: "도쿄 타워"}}},
		},
	}

	arrival, departure := ExtractAirportCodes(plan)
	require.NotNil(t, arrival)
	require.NotNil(t, departure)
	assert.Equal(t, "KIX", *arrival)
	assert.Equal(t, "NRT", *departure)
}

func TestExtractAirportCodes_DepartureUnknown(t *testing.T) {
	plan := &response_models.ItineraryPlan{
		Destination: "일본",
		TripTitle:   "일본 일주",
		Itinerary: []response_models.DayPlan{
			{Day: 1, Places: []response_models.Place{{Name: "오사카성"}}},
			{Day: 2, Places: []response_models.Place{{Name: "교토역"}}},
		},
	}

	arrival, departure := ExtractAirportCodes(plan)
	require.NotNil(t, arrival)
	assert.Equal(t, "KIX", *arrival)
	assert.Nil(t, departure)
}

func TestFindIataCode(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"Osaka Castle", "KIX", true},
		{"3 days in new york", "JFK", true},
		{"Parisian cafe", "", false},
		{"岘港海滩", "DAD", true},
		{"제주 올레길", "CJU", true},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := FindIataCode(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.want, got, tc.text)
	}
}

func TestDecodeItinerary_Malformed(t *testing.T) {
	cases := []struct {
		name string
		text string
		path string
	}{
		{"missing title", `{"itinerary":[{"day":1,"places":[]}]}`, "tripTitle"},
		{"no days", `{"tripTitle":"t","itinerary":[]}`, "itinerary"},
		{"gap in days", `{"tripTitle":"t","itinerary":[{"day":1},{"day":3}]}`, "itinerary[1].day"},
		{"day not a number", `{"tripTitle":"t","itinerary":[{"day":"first"}]}`, "itinerary[0].day"},
		{"empty place name", `{"tripTitle":"t","itinerary":[{"day":1,"places":[{"name":" "}]}]}`, "itinerary[0].places[0].name"},
		{"wrong type", `{"tripTitle":"t","itinerary":{"day":1}}`, "itinerary"},
		{"not json", `plan coming soon`, "$"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeItinerary(tc.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, utils.ErrMalformedOutput))

			var malformed *utils.MalformedOutputError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tc.path, malformed.Path)
		})
	}
}
