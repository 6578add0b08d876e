package response_models

type FlightSegment struct {
	DepTime  string `json:"depTime"`
	Duration int    `json:"duration"`
}

type FlightOption struct {
	ID             string        `json:"id"`
	Price          float64       `json:"price"`
	Airline        string        `json:"airline"`
	CarrierCode    string        `json:"carrierCode"`
	Transfers      int           `json:"transfers"`
	Outbound       FlightSegment `json:"outbound"`
	LinkTrip       *string       `json:"linkTrip"`
	LinkTripMobile *string       `json:"linkTripMobile"`
	LinkGlobal     string        `json:"linkGlobal"`
	IsFallback     bool          `json:"isFallback"`
}

// FlightLinks are the booking deep links; Regional and Mobile are nil
// outside the Korean locale.
type FlightLinks struct {
	Regional *string `json:"linkTrip"`
	Mobile   *string `json:"linkTripMobile"`
	Global   string  `json:"linkGlobal"`
}
