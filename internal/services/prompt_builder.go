package services

import (
	"fmt"
	"strings"

	"tripmaker/internal/models/request_models"
	"tripmaker/pkg/utils"
)

// BudgetText renders the per-person budget line. Budget is in units of
// 10,000 KRW, so 150 reads as 1,500,000.
func BudgetText(req request_models.TripRequest) string {
	lang := req.Language.Normalize()

	if req.IsLuxury {
		if lang == request_models.LanguageKorean {
			return "1인당 2,000만원 ~ 5,000만원"
		}
		return "Unlimited"
	}

	switch lang {
	case request_models.LanguageEnglish:
		return fmt.Sprintf("Per person %d0,000 KRW", req.Budget)
	case request_models.LanguageChinese:
		return fmt.Sprintf("每人 %d0,000 韩元", req.Budget)
	default:
		return fmt.Sprintf("1인당 %d0,000 원", req.Budget)
	}
}

// PlanDays returns the inclusive day count of the request's date range.
func PlanDays(req request_models.TripRequest) (int, error) {
	start, err := utils.ParseTripDate(req.StartDate)
	if err != nil {
		return 0, err
	}
	end, err := utils.ParseTripDate(req.EndDate)
	if err != nil {
		return 0, err
	}
	return utils.TripDays(start, end), nil
}

const itinerarySchema = `{
  "tripTitle": "Title in %[1]s",
  "arrivalIata": "3-letter IATA",
  "departureIata": "3-letter IATA",
  "weather": "Weather info",
  "travelTips": ["Tip1", "Tip2"],
  "budgetBreakdown": ["Detail..."],
  "estimatedCost": "Total Cost",
  "recommendedHotels": [
    {
      "name": "Hotel Name",
      "priceRange": "Price",
      "description": "Desc",
      "address": "Address",
      "googleSearchQuery": "Name + City"
    }
  ],
  "itinerary": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "places": [
        {
          "order": 1,
          "name": "Place Name",
          "category": "Category",
          "description": "Description",
          "address": "Address",
          "googleSearchQuery": "Name + City",
          "lat": "Latitude number from Real Places List (or null if not available)",
          "lng": "Longitude number from Real Places List (or null if not available)"
        }
      ]
    }
  ]
}`

// BuildItineraryPrompt assembles the generation prompt. tourBlock is the
// rendered directory list and may be empty.
func BuildItineraryPrompt(req request_models.TripRequest, tourBlock string) (string, error) {
	days, err := PlanDays(req)
	if err != nil {
		return "", err
	}
	targetLang := req.Language.DisplayName()

	special := strings.TrimSpace(req.Request)
	if special == "" {
		special = "No special request"
	}

	var sb strings.Builder
	sb.WriteString("You are a professional travel planner.\n")
	fmt.Fprintf(&sb, "Plan a **%d-day trip** to **%s** (%s ~ %s).\n\n", days, req.Destination, req.StartDate, req.EndDate)

	sb.WriteString("[Traveler Info]\n")
	fmt.Fprintf(&sb, "Companion: %s, People: %d, Budget: %s, Style: %s\n",
		orDefault(req.Companion, "any"), req.People, BudgetText(req), orDefault(req.TourType, "balanced"))
	if req.HotelType != "" {
		fmt.Fprintf(&sb, "Accommodation: %s\n", req.HotelType)
	}
	if len(req.Themes) > 0 {
		fmt.Fprintf(&sb, "Themes: %s\n", strings.Join(req.Themes, ", "))
	}

	fmt.Fprintf(&sb, "\n[USER REQUEST]\n%q\n", special)

	if tourBlock != "" {
		sb.WriteString("\n[TOUR API REAL DATA - CRITICAL PRIORITY]\n")
		sb.WriteString("You MUST use the following REAL places to build the itinerary.\n")
		sb.WriteString("IMPORTANT: If you use a place from this list, you MUST include its exact 'lat' and 'lng' in the JSON output!\n")
		sb.WriteString("<Real Places List>\n")
		sb.WriteString(tourBlock)
		sb.WriteString("\n</Real Places List>\n")
	}

	sb.WriteString("\n[Rules]\n")
	fmt.Fprintf(&sb, "- Exactly %d entries in \"itinerary\", with \"day\" numbered 1..%d and no gaps.\n", days, days)
	fmt.Fprintf(&sb, "- Write every text field in %s.\n", targetLang)
	sb.WriteString("- \"order\" starts at 1 within each day.\n")

	sb.WriteString("\n[Output Format (JSON Only)]\nReturn ONLY the following JSON. No markdown, no comments.\n")
	fmt.Fprintf(&sb, itinerarySchema, targetLang)
	sb.WriteByte('\n')

	return sb.String(), nil
}

// BuildQuizPrompt asks for three fresh multiple-choice questions about the
// destination. The wording asks the model to vary questions between calls.
func BuildQuizPrompt(destination string) string {
	return fmt.Sprintf(`
당신은 여행 전문가입니다.
**%s** 여행과 관련된 **재미있는 상식 퀴즈 3문제**를 새로 만들어주세요.

[조건]
1. 한국어로 작성하세요.
2. 4지 선다형(options)으로 만드세요.
3. 정답(answer)은 0~3 사이의 숫자 인덱스입니다.
4. 뻔한 문제보다는 흥미로운 문화, 음식, 장소, 역사 관련 문제를 섞어주세요.
5. 매번 요청할 때마다 다른 문제를 내려고 노력하세요.

[출력 형식 (JSON Only)]
{
  "quiz": [
    {
      "question": "Q1. 질문 내용?",
      "options": ["보기1", "보기2", "보기3", "보기4"],
      "answer": 0,
      "rationale": "정답에 대한 짧은 해설"
    }
  ]
}
`, destination)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
