package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmaker/internal/models/request_models"
	"tripmaker/pkg/utils"
)

const maxTourPlaces = 40

// TourPlace is one record from the Korea Tourism Organization directory.
type TourPlace struct {
	Name     string
	Category string
	Address  string
	Lat      string
	Lng      string
}

type TourDataService interface {
	// FetchPlaces never fails: any upstream problem yields nil.
	FetchPlaces(ctx context.Context, keyword string, lang request_models.Language) []TourPlace
}

type tourAPIClient struct {
	http       *http.Client
	baseURL    string
	serviceKey string
	timeout    time.Duration
	log        *zap.Logger
}

func NewTourAPIClient(baseURL, serviceKey string, timeout time.Duration, log *zap.Logger) TourDataService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &tourAPIClient{
		http:       &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		timeout:    timeout,
		log:        log.Named("tourapi"),
	}
}

func tourServiceName(lang request_models.Language) string {
	switch lang.Normalize() {
	case request_models.LanguageEnglish:
		return "EngService1"
	case request_models.LanguageChinese:
		return "ChsService1"
	default:
		return "KorService1"
	}
}

type tourAPIEnvelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

type tourAPIItem struct {
	Title         string           `json:"title"`
	Addr1         string           `json:"addr1"`
	MapX          utils.FlexString `json:"mapx"`
	MapY          utils.FlexString `json:"mapy"`
	ContentTypeID utils.FlexString `json:"contenttypeid"`
}

func (t *tourAPIClient) FetchPlaces(ctx context.Context, keyword string, lang request_models.Language) []TourPlace {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	lang = lang.Normalize()

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("serviceKey", t.serviceKey)
	q.Set("numOfRows", fmt.Sprint(maxTourPlaces))
	q.Set("pageNo", "1")
	q.Set("MobileOS", "ETC")
	q.Set("MobileApp", "TripMaker")
	q.Set("_type", "json")
	q.Set("listYN", "Y")
	q.Set("arrange", "O")
	q.Set("keyword", keyword)
	endpoint := fmt.Sprintf("%s/%s/searchKeyword1?%s", t.baseURL, tourServiceName(lang), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		t.log.Warn("build request", zap.Error(err))
		return nil
	}

	resp, err := t.http.Do(req)
	if err != nil {
		t.log.Warn("tour data unavailable", zap.String("keyword", keyword), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		t.log.Warn("tour data bad status", zap.String("keyword", keyword), zap.Int("status", resp.StatusCode))
		return nil
	}

	var env tourAPIEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.log.Warn("tour data decode", zap.String("keyword", keyword), zap.Error(err))
		return nil
	}

	items, err := decodeTourItems(env.Response.Body.Items)
	if err != nil {
		t.log.Warn("tour data items", zap.String("keyword", keyword), zap.Error(err))
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	if len(items) > maxTourPlaces {
		items = items[:maxTourPlaces]
	}

	places := make([]TourPlace, 0, len(items))
	for _, it := range items {
		places = append(places, TourPlace{
			Name:     strings.TrimSpace(it.Title),
			Category: tourCategory(it.ContentTypeID.Value, lang),
			Address:  strings.TrimSpace(it.Addr1),
			Lat:      it.MapY.Value,
			Lng:      it.MapX.Value,
		})
	}

	t.log.Debug("tour data fetched", zap.String("keyword", keyword), zap.Int("count", len(places)))
	return places
}

// decodeTourItems handles the directory's three shapes for "items":
// an empty string, {"item": {...}} for a single hit, and {"item": [...]}.
func decodeTourItems(raw json.RawMessage) ([]tourAPIItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	item := bytes.TrimSpace(wrapper.Item)
	switch {
	case len(item) == 0:
		return nil, nil
	case item[0] == '[':
		var items []tourAPIItem
		err := json.Unmarshal(item, &items)
		return items, err
	case item[0] == '{':
		var single tourAPIItem
		err := json.Unmarshal(item, &single)
		return []tourAPIItem{single}, err
	default:
		return nil, nil
	}
}

// Content type 39 (Korean service) and 82 (foreign-language services) are food.
func tourCategory(contentTypeID string, lang request_models.Language) string {
	food := contentTypeID == "39" || contentTypeID == "82"

	switch lang {
	case request_models.LanguageEnglish:
		if food {
			return "Restaurant/Cafe"
		}
		return "Tourist Attraction"
	case request_models.LanguageChinese:
		if food {
			return "餐厅/咖啡馆"
		}
		return "旅游景点"
	default:
		if food {
			return "음식점/카페"
		}
		return "관광지/명소"
	}
}

// RenderPlaceList formats places one per line for prompt injection.
func RenderPlaceList(places []TourPlace) string {
	if len(places) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, p := range places {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "- %s (%s, Address: %s, lat: %s, lng: %s)", p.Name, p.Category, p.Address, p.Lat, p.Lng)
	}
	return sb.String()
}
