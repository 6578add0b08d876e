package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tripmaker/internal/models/response_models"
	"tripmaker/pkg/utils"
)

// RawItinerary mirrors the JSON shape the model is asked to return. Numeric
// fields are FlexString because models quote them inconsistently.
type RawItinerary struct {
	TripTitle         *string                            `json:"tripTitle"`
	Weather           string                             `json:"weather"`
	TravelTips        []string                           `json:"travelTips"`
	BudgetBreakdown   []string                           `json:"budgetBreakdown"`
	EstimatedCost     utils.FlexString                   `json:"estimatedCost"`
	RecommendedHotels []response_models.RecommendedHotel `json:"recommendedHotels"`
	Itinerary         []RawDay                           `json:"itinerary"`
}

type RawDay struct {
	Day    utils.FlexString `json:"day"`
	Date   string           `json:"date"`
	Places []RawPlace       `json:"places"`
}

type RawPlace struct {
	Order             utils.FlexString `json:"order"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	Description       string           `json:"description"`
	Address           string           `json:"address"`
	GoogleSearchQuery string           `json:"googleSearchQuery"`
	Lat               utils.FlexString `json:"lat"`
	Lng               utils.FlexString `json:"lng"`
}

// DecodeItinerary parses cleaned model output and checks it field by field.
// Any mismatch is a *utils.MalformedOutputError.
func DecodeItinerary(text string) (*RawItinerary, error) {
	var raw RawItinerary
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, jsonShapeError(err)
	}

	if raw.TripTitle == nil || strings.TrimSpace(*raw.TripTitle) == "" {
		return nil, utils.NewMalformedOutput("tripTitle", "missing or empty")
	}
	if len(raw.Itinerary) == 0 {
		return nil, utils.NewMalformedOutput("itinerary", "no days")
	}

	for i, day := range raw.Itinerary {
		path := fmt.Sprintf("itinerary[%d]", i)
		n, err := strconv.Atoi(day.Day.Value)
		if !day.Day.Valid || err != nil {
			return nil, utils.NewMalformedOutput(path+".day", "not an integer: %q", day.Day.Value)
		}
		if n != i+1 {
			return nil, utils.NewMalformedOutput(path+".day", "expected %d, got %d", i+1, n)
		}
		for j, place := range day.Places {
			if strings.TrimSpace(place.Name) == "" {
				return nil, utils.NewMalformedOutput(fmt.Sprintf("%s.places[%d].name", path, j), "missing or empty")
			}
		}
	}

	return &raw, nil
}

func jsonShapeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if path == "" {
			path = "$"
		}
		return utils.NewMalformedOutput(path, "expected %s, got %s", typeErr.Type, typeErr.Value)
	}
	return utils.NewMalformedOutput("$", "invalid JSON: %v", err)
}

// NormalizeItinerary converts a decoded model response into the plan served
// to clients: coordinates become numeric, order gaps are filled, and airport
// codes are derived from the text.
func NormalizeItinerary(raw *RawItinerary, destination string) *response_models.ItineraryPlan {
	plan := &response_models.ItineraryPlan{
		Destination:       destination,
		Weather:           raw.Weather,
		TravelTips:        nonNilStrings(raw.TravelTips),
		BudgetBreakdown:   nonNilStrings(raw.BudgetBreakdown),
		EstimatedCost:     raw.EstimatedCost.Value,
		RecommendedHotels: raw.RecommendedHotels,
		Itinerary:         make([]response_models.DayPlan, 0, len(raw.Itinerary)),
	}
	if raw.TripTitle != nil {
		plan.TripTitle = strings.TrimSpace(*raw.TripTitle)
	}
	if plan.RecommendedHotels == nil {
		plan.RecommendedHotels = []response_models.RecommendedHotel{}
	}

	for i, rd := range raw.Itinerary {
		day := response_models.DayPlan{
			Day:    i + 1,
			Date:   rd.Date,
			Places: make([]response_models.Place, 0, len(rd.Places)),
		}
		for j, rp := range rd.Places {
			day.Places = append(day.Places, normalizePlace(rp, j+1))
		}
		plan.Itinerary = append(plan.Itinerary, day)
	}

	plan.ArrivalIata, plan.DepartureIata = ExtractAirportCodes(plan)
	return plan
}

func normalizePlace(rp RawPlace, position int) response_models.Place {
	order, err := strconv.Atoi(rp.Order.Value)
	if !rp.Order.Valid || err != nil || order < 1 {
		order = position
	}

	place := response_models.Place{
		Order:             order,
		Name:              strings.TrimSpace(rp.Name),
		Category:          rp.Category,
		Description:       rp.Description,
		Address:           rp.Address,
		GoogleSearchQuery: rp.GoogleSearchQuery,
	}

	lat, latOK := rp.Lat.Float()
	lng, lngOK := rp.Lng.Float()
	if latOK && lngOK {
		place.Coordinates = &response_models.Coordinates{Lat: lat, Lng: lng}
	}
	return place
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
