package response_models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Place struct {
	Order             int          `json:"order"`
	Name              string       `json:"name"`
	Category          string       `json:"category"`
	Description       string       `json:"description"`
	Address           string       `json:"address"`
	GoogleSearchQuery string       `json:"googleSearchQuery"`
	Coordinates       *Coordinates `json:"coordinates,omitempty"`
}

type DayPlan struct {
	Day    int     `json:"day"`
	Date   string  `json:"date"`
	Places []Place `json:"places"`
}

type RecommendedHotel struct {
	Name              string `json:"name"`
	PriceRange        string `json:"priceRange"`
	Description       string `json:"description"`
	Address           string `json:"address"`
	GoogleSearchQuery string `json:"googleSearchQuery"`
}

type ItineraryPlan struct {
	Destination       string             `json:"destination"`
	TripTitle         string             `json:"tripTitle"`
	ArrivalIata       *string            `json:"arrivalIata"`
	DepartureIata     *string            `json:"departureIata"`
	Weather           string             `json:"weather"`
	TravelTips        []string           `json:"travelTips"`
	BudgetBreakdown   []string           `json:"budgetBreakdown"`
	EstimatedCost     string             `json:"estimatedCost"`
	RecommendedHotels []RecommendedHotel `json:"recommendedHotels"`
	Itinerary         []DayPlan          `json:"itinerary"`
}

// Clone returns a deep copy sharing no slices or pointers with p.
func (p *ItineraryPlan) Clone() *ItineraryPlan {
	if p == nil {
		return nil
	}
	out := *p
	out.ArrivalIata = cloneString(p.ArrivalIata)
	out.DepartureIata = cloneString(p.DepartureIata)
	out.TravelTips = append([]string(nil), p.TravelTips...)
	out.BudgetBreakdown = append([]string(nil), p.BudgetBreakdown...)
	out.RecommendedHotels = append([]RecommendedHotel(nil), p.RecommendedHotels...)

	out.Itinerary = make([]DayPlan, len(p.Itinerary))
	for i, day := range p.Itinerary {
		day.Places = append([]Place(nil), day.Places...)
		for j := range day.Places {
			if c := day.Places[j].Coordinates; c != nil {
				cp := *c
				day.Places[j].Coordinates = &cp
			}
		}
		out.Itinerary[i] = day
	}
	return &out
}

// MissingCoordinates counts places still lacking a coordinate pair.
func (p *ItineraryPlan) MissingCoordinates() int {
	n := 0
	for _, day := range p.Itinerary {
		for _, place := range day.Places {
			if place.Coordinates == nil {
				n++
			}
		}
	}
	return n
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

type GeneratePlanResponse struct {
	Plan       *ItineraryPlan   `json:"result"`
	Reconciled *ReconcileReport `json:"reconciled,omitempty"`
}

type ReconcileReport struct {
	Attempted int  `json:"attempted"`
	Resolved  int  `json:"resolved"`
	Updated   bool `json:"updated"`
}

type ReconcileResponse struct {
	Plan *ItineraryPlan `json:"result"`
	ReconcileReport
}
