package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	dbm "tripmaker/internal/models/db_models"
	"tripmaker/internal/models/request_models"
	"tripmaker/internal/models/response_models"
	"tripmaker/internal/repositories"
	"tripmaker/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type SavedItineraryServiceInterface interface {
	Save(ctx context.Context, userID string, req request_models.SaveItineraryRequest) (*response_models.SavedItinerarySummary, error)
	List(ctx context.Context, userID string, page, pageSize int) ([]response_models.SavedItinerarySummary, error)
	Get(ctx context.Context, userID, id string) (*response_models.SavedItineraryDetail, error)
	Delete(ctx context.Context, userID, id string) error
}

type SavedItineraryService struct {
	repo repositories.SavedItineraryRepository
	log  *zap.Logger
}

func NewSavedItineraryService(repo repositories.SavedItineraryRepository, log *zap.Logger) SavedItineraryServiceInterface {
	return &SavedItineraryService{repo: repo, log: log.Named("saved_itineraries")}
}

func (s *SavedItineraryService) Save(ctx context.Context, userID string, req request_models.SaveItineraryRequest) (*response_models.SavedItinerarySummary, error) {
	owner, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Destination) == "" || req.Plan == nil {
		return nil, fmt.Errorf("%w: destination and plan are required", utils.ErrInvalidInput)
	}

	payload, err := json.Marshal(req.Plan)
	if err != nil {
		return nil, fmt.Errorf("%w: plan is not serializable", utils.ErrInvalidInput)
	}

	it := &dbm.SavedItinerary{
		UserID:      owner,
		Destination: strings.TrimSpace(req.Destination),
		Title:       req.Plan.TripTitle,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Language:    string(req.Language.Normalize()),
		Themes:      pq.StringArray(req.Themes),
		Plan:        datatypes.JSON(payload),
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
	}

	s.log.Info("itinerary saved", zap.String("user_id", userID), zap.String("itinerary_id", it.ID.String()))
	summary := toSummary(*it)
	return &summary, nil
}

func (s *SavedItineraryService) List(ctx context.Context, userID string, page, pageSize int) ([]response_models.SavedItinerarySummary, error) {
	owner, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rows, err := s.repo.ListByUser(ctx, owner, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.SavedItinerarySummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSummary(row))
	}
	return out, nil
}

func (s *SavedItineraryService) Get(ctx context.Context, userID, id string) (*response_models.SavedItineraryDetail, error) {
	owner, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	itID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrItineraryNotFound
	}

	row, err := s.repo.FindForUser(ctx, owner, itID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
	}
	if row == nil {
		return nil, utils.ErrItineraryNotFound
	}

	var plan response_models.ItineraryPlan
	if err := json.Unmarshal(row.Plan, &plan); err != nil {
		return nil, fmt.Errorf("%w: stored plan unreadable: %w", utils.ErrDatabaseError, err)
	}

	return &response_models.SavedItineraryDetail{
		SavedItinerarySummary: toSummary(*row),
		Plan:                  &plan,
	}, nil
}

func (s *SavedItineraryService) Delete(ctx context.Context, userID, id string) error {
	owner, err := parseUserID(userID)
	if err != nil {
		return err
	}
	itID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrItineraryNotFound
	}

	deleted, err := s.repo.DeleteForUser(ctx, owner, itID)
	if err != nil {
		return fmt.Errorf("%w: %w", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrItineraryNotFound
	}
	return nil
}

func toSummary(row dbm.SavedItinerary) response_models.SavedItinerarySummary {
	themes := []string(row.Themes)
	if themes == nil {
		themes = []string{}
	}
	var iata *string
	if code, ok := FindIataCode(row.Destination); ok {
		iata = &code
	}
	return response_models.SavedItinerarySummary{
		ID:          row.ID.String(),
		Destination: row.Destination,
		Title:       row.Title,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Themes:      themes,
		Iata:        iata,
		CreatedAt:   row.CreatedAt,
		SavedAt:     utils.FormatDisplayKST(row.CreatedAt),
	}
}
