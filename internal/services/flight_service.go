package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripmaker/internal/models/request_models"
	"tripmaker/internal/models/response_models"
	"tripmaker/pkg/utils"
)

const (
	originAirport     = "ICN"
	flightResultLimit = 30
	fallbackTicketID  = "fallback_ticket"
)

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// airportCode upper-cases raw and requires a three letter IATA code, since it
// is spliced into booking URLs as is.
func airportCode(raw, field string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !iataPattern.MatchString(code) {
		return "", fmt.Errorf("%w: %s must be a 3-letter airport code", utils.ErrInvalidInput, field)
	}
	return code, nil
}

// AffiliateIDs are the partner tracking parameters appended to booking links.
type AffiliateIDs struct {
	Marker     string // Travelpayouts / Aviasales
	AllianceID string // Trip.com
	SID        string
	Sub3       string
}

type FlightLinkParams struct {
	DestinationCode  string
	ReturnOriginCode string
	DepartureDate    string
	ReturnDate       string
	Language         request_models.Language
}

// BuildFlightLinks constructs the booking deep links. The regional Trip.com
// link exists only for Korean; the Aviasales link is always present.
func BuildFlightLinks(aff AffiliateIDs, p FlightLinkParams) (response_models.FlightLinks, error) {
	dest, err := airportCode(p.DestinationCode, "destinationCode")
	if err != nil {
		return response_models.FlightLinks{}, err
	}
	var inbound string
	if strings.TrimSpace(p.ReturnOriginCode) != "" {
		if inbound, err = airportCode(p.ReturnOriginCode, "returnOriginCode"); err != nil {
			return response_models.FlightLinks{}, err
		}
	}

	depToken, err := utils.DayMonthToken(p.DepartureDate)
	if err != nil {
		return response_models.FlightLinks{}, err
	}

	roundTrip := strings.TrimSpace(p.ReturnDate) != ""
	var retToken string
	if roundTrip {
		if retToken, err = utils.DayMonthToken(p.ReturnDate); err != nil {
			return response_models.FlightLinks{}, err
		}
	}

	korean := p.Language.Normalize() == request_models.LanguageKorean
	links := response_models.FlightLinks{}

	if korean {
		var sb strings.Builder
		sb.WriteString("https://kr.trip.com/flights/showfarefirst?")
		fmt.Fprintf(&sb, "dcity=%s&acity=%s&ddate=%s", strings.ToLower(originAirport), strings.ToLower(dest), url.QueryEscape(p.DepartureDate))
		sb.WriteString("&class=y&quantity=1&locale=ko-KR&curr=KRW")
		sb.WriteString("&lowpricesource=searchform&searchboxarg=t&nonstoponly=off")
		if roundTrip {
			fmt.Fprintf(&sb, "&rdate=%s&triptype=rt", url.QueryEscape(p.ReturnDate))
		} else {
			sb.WriteString("&triptype=ow")
		}
		fmt.Fprintf(&sb, "&Allianceid=%s&SID=%s&trip_sub3=%s",
			url.QueryEscape(aff.AllianceID), url.QueryEscape(aff.SID), url.QueryEscape(aff.Sub3))

		regional := sb.String()
		mobile := regional
		links.Regional = &regional
		links.Mobile = &mobile
	}

	var path string
	switch {
	case !roundTrip:
		path = originAirport + depToken + dest + "1"
	default:
		if inbound == "" || inbound == dest {
			path = originAirport + depToken + dest + retToken + "1"
		} else {
			path = originAirport + depToken + dest + "-" + inbound + retToken + originAirport + "1"
		}
	}

	currency, locale := "USD", "en"
	if korean {
		currency, locale = "KRW", "ko"
	}
	q := url.Values{}
	q.Set("marker", aff.Marker)
	q.Set("currency", currency)
	q.Set("locale", locale)
	links.Global = "https://www.aviasales.com/search/" + path + "?" + q.Encode()

	return links, nil
}

type FlightServiceInterface interface {
	SearchFlights(ctx context.Context, req request_models.FlightSearchRequest) ([]response_models.FlightOption, error)
}

type flightService struct {
	http    *http.Client
	baseURL string
	token   string
	aff     AffiliateIDs
	log     *zap.Logger
}

func NewFlightService(baseURL, token string, aff AffiliateIDs, log *zap.Logger) FlightServiceInterface {
	if baseURL == "" {
		baseURL = "https://api.travelpayouts.com"
	}
	return &flightService{
		http:    &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		aff:     aff,
		log:     log.Named("flights"),
	}
}

type pricesForDatesResponse struct {
	Success bool               `json:"success"`
	Data    []pricesForDateRow `json:"data"`
}

type pricesForDateRow struct {
	FlightNumber utils.FlexString `json:"flight_number"`
	Price        float64          `json:"price"`
	Airline      string           `json:"airline"`
	DepartureAt  string           `json:"departure_at"`
	Duration     int              `json:"duration"`
	Transfers    int              `json:"transfers"`
}

func (f *flightService) SearchFlights(ctx context.Context, req request_models.FlightSearchRequest) ([]response_models.FlightOption, error) {
	if strings.TrimSpace(req.DestinationCode) == "" || strings.TrimSpace(req.DepartureDate) == "" {
		return nil, fmt.Errorf("%w: destinationCode and departureDate are required", utils.ErrInvalidInput)
	}
	lang := req.Language.Normalize()

	links, err := BuildFlightLinks(f.aff, FlightLinkParams{
		DestinationCode:  req.DestinationCode,
		ReturnOriginCode: req.ReturnOriginCode,
		DepartureDate:    req.DepartureDate,
		ReturnDate:       req.ReturnDate,
		Language:         lang,
	})
	if err != nil {
		return nil, err
	}

	rows := f.fetchPrices(ctx, req, lang)

	options := make([]response_models.FlightOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, toFlightOption(row, links))
	}
	if len(options) == 0 {
		options = append(options, fallbackTicket(links, lang))
	}
	return options, nil
}

// fetchPrices returns nil on any upstream problem; the caller substitutes
// the fallback ticket.
func (f *flightService) fetchPrices(ctx context.Context, req request_models.FlightSearchRequest, lang request_models.Language) []pricesForDateRow {
	if f.token == "" {
		f.log.Debug("price lookup skipped, no token configured")
		return nil
	}

	currency := "usd"
	if lang == request_models.LanguageKorean {
		currency = "krw"
	}

	q := url.Values{}
	q.Set("origin", originAirport)
	q.Set("destination", strings.ToUpper(strings.TrimSpace(req.DestinationCode)))
	q.Set("departure_at", req.DepartureDate)
	q.Set("currency", currency)
	q.Set("sorting", "price")
	q.Set("direct", "false")
	q.Set("limit", fmt.Sprint(flightResultLimit))
	q.Set("token", f.token)
	if req.ReturnDate != "" {
		q.Set("return_at", req.ReturnDate)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/aviasales/v3/prices_for_dates?"+q.Encode(), nil)
	if err != nil {
		f.log.Warn("build request", zap.Error(err))
		return nil
	}

	resp, err := f.http.Do(httpReq)
	if err != nil {
		f.log.Warn("price lookup failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		f.log.Warn("price lookup bad status", zap.Int("status", resp.StatusCode))
		return nil
	}

	var payload pricesForDatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		f.log.Warn("price lookup decode", zap.Error(err))
		return nil
	}
	if !payload.Success {
		return nil
	}
	if len(payload.Data) > flightResultLimit {
		payload.Data = payload.Data[:flightResultLimit]
	}
	return payload.Data
}

func toFlightOption(row pricesForDateRow, links response_models.FlightLinks) response_models.FlightOption {
	prefix := row.FlightNumber.Value
	if !row.FlightNumber.Valid {
		prefix = "FL"
	}

	return response_models.FlightOption{
		ID:          prefix + row.DepartureAt + "-" + uuid.NewString()[:8],
		Price:       row.Price,
		Airline:     row.Airline,
		CarrierCode: row.Airline,
		Transfers:   row.Transfers,
		Outbound: response_models.FlightSegment{
			DepTime:  departureClock(row.DepartureAt),
			Duration: row.Duration,
		},
		LinkTrip:       links.Regional,
		LinkTripMobile: links.Mobile,
		LinkGlobal:     links.Global,
	}
}

func fallbackTicket(links response_models.FlightLinks, lang request_models.Language) response_models.FlightOption {
	airline := "Search All Airlines"
	if lang == request_models.LanguageKorean {
		airline = "Trip.com 최저가 검색"
	}
	return response_models.FlightOption{
		ID:             fallbackTicketID,
		Price:          0,
		Airline:        airline,
		CarrierCode:    "ALL",
		Outbound:       response_models.FlightSegment{DepTime: "--:--"},
		LinkTrip:       links.Regional,
		LinkTripMobile: links.Mobile,
		LinkGlobal:     links.Global,
		IsFallback:     true,
	}
}

// departureClock takes HH:MM from an RFC 3339 timestamp.
func departureClock(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format("15:04")
	}
	if _, after, ok := strings.Cut(ts, "T"); ok && len(after) >= 5 {
		return after[:5]
	}
	return "--:--"
}
