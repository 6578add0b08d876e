package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripmaker/internal/models/request_models"
)

const tourListBody = `{"response":{"header":{"resultCode":"0000","resultMsg":"OK"},"body":{"items":{"item":[
 {"title":"기요미즈데라","addr1":"교토시 히가시야마구","mapx":"135.7850","mapy":"34.9949","contenttypeid":"12"},
 {"title":"니시키 시장","addr1":"교토시 나카교구","mapx":"135.7649","mapy":"35.0050","contenttypeid":39}
]}}}}`

func newTourServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestTourAPI_FetchPlaces(t *testing.T) {
	var gotPath, gotKeyword, gotKey string
	srv := newTourServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKeyword = r.URL.Query().Get("keyword")
		gotKey = r.URL.Query().Get("serviceKey")
		_, _ = w.Write([]byte(tourListBody))
	})

	client := NewTourAPIClient(srv.URL, "key+with/slash", time.Second, zap.NewNop())
	places := client.FetchPlaces(context.Background(), "교토", request_models.LanguageKorean)

	require.Len(t, places, 2)
	assert.Equal(t, "/KorService1/searchKeyword1", gotPath)
	assert.Equal(t, "교토", gotKeyword)
	assert.Equal(t, "key+with/slash", gotKey)

	assert.Equal(t, TourPlace{
		Name: "기요미즈데라", Category: "관광지/명소", Address: "교토시 히가시야마구", Lat: "34.9949", Lng: "135.7850",
	}, places[0])
	assert.Equal(t, "음식점/카페", places[1].Category)
}

func TestTourAPI_LanguageSelectsServiceAndLabels(t *testing.T) {
	var gotPath string
	srv := newTourServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"response":{"body":{"items":{"item":{"title":"Gwangjang Market","contenttypeid":"82","mapx":"127.0","mapy":"37.5"}}}}}`))
	})

	client := NewTourAPIClient(srv.URL, "k", time.Second, zap.NewNop())
	places := client.FetchPlaces(context.Background(), "Seoul", request_models.LanguageEnglish)

	assert.Equal(t, "/EngService1/searchKeyword1", gotPath)
	require.Len(t, places, 1)
	assert.Equal(t, "Restaurant/Cafe", places[0].Category)
}

func TestTourAPI_DegradesToNil(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"empty items": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":{"body":{"items":""}}}`))
		},
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<OpenAPI_ServiceResponse>SERVICE_KEY_IS_NOT_REGISTERED_ERROR</OpenAPI_ServiceResponse>`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newTourServer(t, handler)
			client := NewTourAPIClient(srv.URL, "k", time.Second, zap.NewNop())
			assert.Nil(t, client.FetchPlaces(context.Background(), "교토", request_models.LanguageKorean))
		})
	}
}

func TestTourAPI_Timeout(t *testing.T) {
	srv := newTourServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	client := NewTourAPIClient(srv.URL, "k", 50*time.Millisecond, zap.NewNop())
	start := time.Now()
	places := client.FetchPlaces(context.Background(), "교토", request_models.LanguageKorean)

	assert.Nil(t, places)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRenderPlaceList(t *testing.T) {
	assert.Equal(t, "", RenderPlaceList(nil))

	got := RenderPlaceList([]TourPlace{
		{Name: "A", Category: "관광지/명소", Address: "addr", Lat: "1.5", Lng: "2.5"},
		{Name: "B", Category: "음식점/카페"},
	})
	assert.Equal(t,
		"- A (관광지/명소, Address: addr, lat: 1.5, lng: 2.5)\n- B (음식점/카페, Address: , lat: , lng: )",
		got)
}
