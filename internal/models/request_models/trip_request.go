package request_models

import (
	"fmt"
	"strings"

	"tripmaker/pkg/utils"
)

type Language string

const (
	LanguageKorean  Language = "ko"
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

// Normalize maps anything other than en/zh to Korean.
func (l Language) Normalize() Language {
	switch Language(strings.ToLower(strings.TrimSpace(string(l)))) {
	case LanguageEnglish:
		return LanguageEnglish
	case LanguageChinese:
		return LanguageChinese
	default:
		return LanguageKorean
	}
}

// DisplayName is the language name used inside prompts.
func (l Language) DisplayName() string {
	switch l.Normalize() {
	case LanguageEnglish:
		return "English"
	case LanguageChinese:
		return "Chinese"
	default:
		return "Korean"
	}
}

type Companion string

const (
	CompanionSolo     Companion = "solo"
	CompanionCouple   Companion = "couple"
	CompanionFriends  Companion = "friends"
	CompanionFamily   Companion = "family"
	CompanionBusiness Companion = "business"
)

var companionAliases = map[string]Companion{
	"solo": CompanionSolo, "혼자": CompanionSolo,
	"couple": CompanionCouple, "연인": CompanionCouple, "커플": CompanionCouple,
	"friends": CompanionFriends, "친구": CompanionFriends,
	"family": CompanionFamily, "가족": CompanionFamily,
	"business": CompanionBusiness, "비즈니스": CompanionBusiness, "출장": CompanionBusiness,
}

// ParseCompanion accepts the English ids and the Korean form labels.
func ParseCompanion(s string) (Companion, bool) {
	c, ok := companionAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

type TripRequest struct {
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"startDate" binding:"required"`
	EndDate     string   `json:"endDate" binding:"required"`
	Companion   string   `json:"companion"`
	People      int      `json:"people" binding:"omitempty,min=1,max=20"`
	Budget      int      `json:"budget" binding:"omitempty,min=0"`
	IsLuxury    bool     `json:"isLuxury"`
	HotelType   string   `json:"hotelType"`
	TourType    string   `json:"tourType"`
	Themes      []string `json:"themes"`
	Request     string   `json:"request"`
	Language    Language `json:"language"`
}

// Validate rejects requests that must never reach an upstream call and
// fills in defaults for optional fields.
func (r *TripRequest) Validate() error {
	r.Destination = strings.TrimSpace(r.Destination)
	if r.Destination == "" {
		return fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	if r.StartDate == "" || r.EndDate == "" {
		return fmt.Errorf("%w: startDate and endDate are required", utils.ErrInvalidInput)
	}

	start, err := utils.ParseTripDate(r.StartDate)
	if err != nil {
		return err
	}
	end, err := utils.ParseTripDate(r.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: endDate must not be before startDate", utils.ErrInvalidInput)
	}

	if r.People == 0 {
		r.People = 1
	}
	if r.People < 1 || r.People > 20 {
		return fmt.Errorf("%w: people must be between 1 and 20", utils.ErrInvalidInput)
	}
	if r.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", utils.ErrInvalidInput)
	}
	if r.Companion != "" {
		c, ok := ParseCompanion(r.Companion)
		if !ok {
			return fmt.Errorf("%w: unknown companion %q", utils.ErrInvalidInput, r.Companion)
		}
		r.Companion = string(c)
	}

	r.Language = r.Language.Normalize()
	return nil
}
