package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmaker/internal/models/request_models"
	"tripmaker/pkg/utils"
)

var testAffiliates = AffiliateIDs{Marker: "M1", AllianceID: "A1", SID: "S1", Sub3: "D1"}

func TestBuildFlightLinks_OneWayKorean(t *testing.T) {
	links, err := BuildFlightLinks(testAffiliates, FlightLinkParams{
		DestinationCode: "kix",
		DepartureDate:   "2025-03-01",
		Language:        request_models.LanguageKorean,
	})
	require.NoError(t, err)

	require.NotNil(t, links.Regional)
	assert.Equal(t,
		"https://kr.trip.com/flights/showfarefirst?dcity=icn&acity=kix&ddate=2025-03-01"+
			"&class=y&quantity=1&locale=ko-KR&curr=KRW&lowpricesource=searchform&searchboxarg=t&nonstoponly=off"+
			"&triptype=ow&Allianceid=A1&SID=S1&trip_sub3=D1",
		*links.Regional)
	require.NotNil(t, links.Mobile)
	assert.Equal(t, *links.Regional, *links.Mobile)

	assert.Equal(t, "https://www.aviasales.com/search/ICN0103KIX1?currency=KRW&locale=ko&marker=M1", links.Global)
}

func TestBuildFlightLinks_RoundTrip(t *testing.T) {
	links, err := BuildFlightLinks(testAffiliates, FlightLinkParams{
		DestinationCode: "KIX",
		DepartureDate:   "2025-03-01",
		ReturnDate:      "2025-03-05",
		Language:        request_models.LanguageKorean,
	})
	require.NoError(t, err)

	assert.True(t, strings.Contains(*links.Regional, "&rdate=2025-03-05&triptype=rt"))
	assert.True(t, strings.HasPrefix(links.Global, "https://www.aviasales.com/search/ICN0103KIX05031?"))
}

func TestBuildFlightLinks_OpenJawEnglish(t *testing.T) {
	links, err := BuildFlightLinks(testAffiliates, FlightLinkParams{
		DestinationCode:  "KIX",
		ReturnOriginCode: "nrt",
		DepartureDate:    "2025-03-01",
		ReturnDate:       "2025-03-05",
		Language:         request_models.LanguageEnglish,
	})
	require.NoError(t, err)

	assert.Nil(t, links.Regional)
	assert.Nil(t, links.Mobile)
	assert.Equal(t, "https://www.aviasales.com/search/ICN0103KIX-NRT0503ICN1?currency=USD&locale=en&marker=M1", links.Global)
}

func TestBuildFlightLinks_ChineseGetsGlobalOnly(t *testing.T) {
	links, err := BuildFlightLinks(testAffiliates, FlightLinkParams{
		DestinationCode: "BKK",
		DepartureDate:   "2025-12-24",
		Language:        request_models.LanguageChinese,
	})
	require.NoError(t, err)
	assert.Nil(t, links.Regional)
	assert.Contains(t, links.Global, "ICN2412BKK1")
}

func TestBuildFlightLinks_Invalid(t *testing.T) {
	_, err := BuildFlightLinks(testAffiliates, FlightLinkParams{DepartureDate: "2025-03-01"})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))

	_, err = BuildFlightLinks(testAffiliates, FlightLinkParams{DestinationCode: "KIX", DepartureDate: "1 March"})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))

	for _, code := range []string{"kix?marker=999999#", "KIX&Allianceid=1", "KI", "KIXX", "K1X", "ICN/KIX"} {
		_, err = BuildFlightLinks(testAffiliates, FlightLinkParams{
			DestinationCode: code,
			DepartureDate:   "2025-03-01",
			Language:        request_models.LanguageKorean,
		})
		assert.True(t, errors.Is(err, utils.ErrInvalidInput), code)
	}

	_, err = BuildFlightLinks(testAffiliates, FlightLinkParams{
		DestinationCode:  "KIX",
		ReturnOriginCode: "NRT#x",
		DepartureDate:    "2025-03-01",
		ReturnDate:       "2025-03-05",
	})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
}

func TestSearchFlights_RejectsCodeBeforeUpstream(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	svc := NewFlightService(srv.URL, "tok", testAffiliates, zap.NewNop())
	_, err := svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{
		DestinationCode: "KIX&marker=1",
		DepartureDate:   "2025-03-01",
	})

	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
	assert.Zero(t, hits.Load())
}

const pricesBody = `{"success":true,"data":[
 {"flight_number":"7C1301","price":189000,"airline":"7C","departure_at":"2025-03-01T09:35:00+09:00","duration":110,"transfers":0},
 {"flight_number":741,"price":215000,"airline":"LJ","departure_at":"2025-03-01T14:10:00+09:00","duration":115,"transfers":1},
 {"price":250000,"airline":"KE","departure_at":"2025-03-01T18:00:00+09:00","duration":100,"transfers":0}
]}`

func TestSearchFlights_MapsPrices(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/aviasales/v3/prices_for_dates", r.URL.Path)
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		_, _ = w.Write([]byte(pricesBody))
	}))
	defer srv.Close()

	svc := NewFlightService(srv.URL, "tok", testAffiliates, zap.NewNop())
	flights, err := svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{
		DestinationCode: "KIX",
		DepartureDate:   "2025-03-01",
		ReturnDate:      "2025-03-05",
		Language:        request_models.LanguageKorean,
	})
	require.NoError(t, err)
	require.Len(t, flights, 3)

	assert.Equal(t, "ICN", query["origin"])
	assert.Equal(t, "KIX", query["destination"])
	assert.Equal(t, "krw", query["currency"])
	assert.Equal(t, "2025-03-05", query["return_at"])
	assert.Equal(t, "tok", query["token"])

	first := flights[0]
	assert.True(t, strings.HasPrefix(first.ID, "7C13012025-03-01T09:35:00+09:00-"))
	assert.Equal(t, float64(189000), first.Price)
	assert.Equal(t, "7C", first.CarrierCode)
	assert.Equal(t, "09:35", first.Outbound.DepTime)
	assert.Equal(t, 110, first.Outbound.Duration)
	assert.False(t, first.IsFallback)
	require.NotNil(t, first.LinkTrip)
	assert.Contains(t, first.LinkGlobal, "ICN0103KIX05031")

	assert.True(t, strings.HasPrefix(flights[1].ID, "741"))
	assert.True(t, strings.HasPrefix(flights[2].ID, "FL2025-03-01T18:00"))
	assert.NotEqual(t, flights[0].ID, flights[1].ID)
}

func TestSearchFlights_FallbackTicket(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"empty data": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
		},
		"upstream error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"unsuccessful": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"bad token"}`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			svc := NewFlightService(srv.URL, "tok", testAffiliates, zap.NewNop())
			flights, err := svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{
				DestinationCode: "KIX",
				DepartureDate:   "2025-03-01",
				Language:        request_models.LanguageKorean,
			})
			require.NoError(t, err)
			require.Len(t, flights, 1)

			ticket := flights[0]
			assert.Equal(t, "fallback_ticket", ticket.ID)
			assert.True(t, ticket.IsFallback)
			assert.Equal(t, "Trip.com 최저가 검색", ticket.Airline)
			assert.Equal(t, "ALL", ticket.CarrierCode)
			assert.Equal(t, "--:--", ticket.Outbound.DepTime)
			assert.Zero(t, ticket.Price)
			assert.NotNil(t, ticket.LinkTrip)
			assert.NotEmpty(t, ticket.LinkGlobal)
		})
	}
}

func TestSearchFlights_NoTokenSkipsUpstream(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	svc := NewFlightService(srv.URL, "", testAffiliates, zap.NewNop())
	flights, err := svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{
		DestinationCode: "KIX",
		DepartureDate:   "2025-03-01",
		Language:        request_models.LanguageEnglish,
	})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "Search All Airlines", flights[0].Airline)
	assert.Nil(t, flights[0].LinkTrip)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestSearchFlights_RequiresDestinationAndDate(t *testing.T) {
	svc := NewFlightService("", "", testAffiliates, zap.NewNop())
	_, err := svc.SearchFlights(context.Background(), request_models.FlightSearchRequest{DepartureDate: "2025-03-01"})
	assert.True(t, errors.Is(err, utils.ErrInvalidInput))
}
