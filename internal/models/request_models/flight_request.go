package request_models

type FlightSearchRequest struct {
	DestinationCode  string   `json:"destinationCode" binding:"required,len=3,alpha"`
	DestinationName  string   `json:"destinationName"`
	ReturnOriginCode string   `json:"returnOriginCode" binding:"omitempty,len=3,alpha"`
	DepartureDate    string   `json:"departureDate"`
	ReturnDate       string   `json:"returnDate"`
	Language         Language `json:"language"`
}
