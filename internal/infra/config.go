package infra

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	PostgresURL string
	CORSOrigins []string

	// TrustedProxies lists the proxy IPs/CIDRs whose X-Forwarded-For is honored.
	TrustedProxies []string

	LLMProvider    string
	LLMAPIKey      string
	LLMBaseURL     string
	PlanModel      string
	QuizModel      string
	RateLimitRPS   float64
	RateLimitBurst int

	TourAPIKey     string
	TourAPIBaseURL string
	TourAPITimeout time.Duration

	GoogleMapsAPIKey  string
	GoogleMapsBaseURL string
	GeocodeDelay      time.Duration

	TravelpayoutsToken   string
	TravelpayoutsMarker  string
	TravelpayoutsBaseURL string
	TripAllianceID       string
	TripSID              string
	TripSub3             string

	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	SMTPFrom       string
	SMTPUseSSL     bool
	QuoteRecipient string
	AppBaseURL     string

	JWTSecret string
	JWTTTL    time.Duration
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      getEnvWithDefault("APP_ENV", "production"),
		Port:        getEnvWithDefault("PORT", "8080"),
		PostgresURL: os.Getenv("POSTGRES_URL"),
		CORSOrigins: splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:3000")),

		TrustedProxies: splitList(os.Getenv("TRUSTED_PROXIES")),

		LLMProvider: strings.ToLower(getEnvWithDefault("LLM_PROVIDER", "gemini")),
		LLMBaseURL:  os.Getenv("OPENAI_BASE_URL"),

		TourAPIKey:     os.Getenv("TOUR_API_KEY"),
		TourAPIBaseURL: getEnvWithDefault("TOUR_API_BASE_URL", "https://apis.data.go.kr/B551011"),

		GoogleMapsAPIKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		GoogleMapsBaseURL: getEnvWithDefault("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),

		TravelpayoutsToken:   os.Getenv("TRAVELPAYOUTS_TOKEN"),
		TravelpayoutsMarker:  os.Getenv("TRAVELPAYOUTS_MARKER"),
		TravelpayoutsBaseURL: getEnvWithDefault("TRAVELPAYOUTS_BASE_URL", "https://api.travelpayouts.com"),
		TripAllianceID:       os.Getenv("TRIP_ALLIANCE_ID"),
		TripSID:              os.Getenv("TRIP_SID"),
		TripSub3:             os.Getenv("TRIP_SUB3"),

		SMTPHost:       getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
		QuoteRecipient: os.Getenv("QUOTE_RECIPIENT"),
		AppBaseURL:     getEnvWithDefault("APP_BASE_URL", "http://localhost:3000"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	switch cfg.LLMProvider {
	case "openai":
		cfg.LLMAPIKey = os.Getenv("OPENAI_API_KEY")
		cfg.PlanModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		cfg.QuizModel = getEnvWithDefault("OPENAI_QUIZ_MODEL", cfg.PlanModel)
	default:
		cfg.LLMAPIKey = os.Getenv("GEMINI_API_KEY")
		cfg.PlanModel = getEnvWithDefault("GEMINI_MODEL", "gemini-2.5-flash")
		cfg.QuizModel = getEnvWithDefault("GEMINI_QUIZ_MODEL", "gemini-2.5-flash-lite")
	}

	var err error
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.SMTPUseSSL, err = getEnvBool("SMTP_USE_SSL", cfg.SMTPPort == 465); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getEnvFloat("RATE_LIMIT_RPS", 0.2); err != nil {
		return nil, err
	}
	if cfg.TourAPITimeout, err = getEnvDuration("TOUR_API_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.GeocodeDelay, err = getEnvDuration("GEOCODE_DELAY", 300*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = getEnvDuration("JWT_TTL", 60*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUsername
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.PostgresURL == "" {
		missing = append(missing, "POSTGRES_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.LLMAPIKey == "" {
		if c.LLMProvider == "openai" {
			missing = append(missing, "OPENAI_API_KEY")
		} else {
			missing = append(missing, "GEMINI_API_KEY")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if c.LLMProvider != "gemini" && c.LLMProvider != "openai" {
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, def int) (int, error) {
	raw := getEnvWithDefault(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, def float64) (float64, error) {
	raw := getEnvWithDefault(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	raw := getEnvWithDefault(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	raw := getEnvWithDefault(key, "")
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if v < 0 {
		return 0, errors.New(key + ": must not be negative")
	}
	return v, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
