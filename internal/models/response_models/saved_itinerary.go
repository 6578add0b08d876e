package response_models

type SavedItinerarySummary struct {
	ID          string   `json:"id"`
	Destination string   `json:"destination"`
	Title       string   `json:"title"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Themes      []string `json:"themes"`
	Iata        *string  `json:"iata"`
	CreatedAt   int64    `json:"createdAt"`
	SavedAt     string   `json:"savedAt"`
}

type SavedItineraryDetail struct {
	SavedItinerarySummary
	Plan *ItineraryPlan `json:"plan"`
}
