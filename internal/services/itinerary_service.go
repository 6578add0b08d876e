package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmaker/internal/models/request_models"
	"tripmaker/internal/models/response_models"
	"tripmaker/pkg/utils"
)

const (
	planTemperature = 0.7
	quizTemperature = 1.0
	quizQuestions   = 3
	quizOptions     = 4

	// maxReconcilePlaces bounds the paid lookups one reconcile request may queue.
	maxReconcilePlaces = 100
)

type ItineraryServiceInterface interface {
	GeneratePlan(ctx context.Context, req request_models.TripRequest) (*response_models.GeneratePlanResponse, error)
	GenerateQuiz(ctx context.Context, destination string) ([]response_models.QuizQuestion, error)
	Reconcile(ctx context.Context, plan *response_models.ItineraryPlan) (*response_models.ReconcileResponse, error)
}

type ModelSettings struct {
	PlanModel string
	QuizModel string
}

type ItineraryService struct {
	llm        utils.LLMClient
	tours      TourDataService
	reconciler GeocodeReconciler
	models     ModelSettings
	log        *zap.Logger
}

// NewItineraryService wires the generation pipeline. reconciler may be nil
// when no map provider is configured; places then keep whatever
// coordinates the model supplied.
func NewItineraryService(
	llm utils.LLMClient,
	tours TourDataService,
	reconciler GeocodeReconciler,
	models ModelSettings,
	log *zap.Logger,
) ItineraryServiceInterface {
	return &ItineraryService{
		llm:        llm,
		tours:      tours,
		reconciler: reconciler,
		models:     models,
		log:        log.Named("itinerary"),
	}
}

func (s *ItineraryService) GeneratePlan(ctx context.Context, req request_models.TripRequest) (*response_models.GeneratePlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	days, err := PlanDays(req)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	places := s.tours.FetchPlaces(ctx, req.Destination, req.Language)
	s.log.Debug("tour data step",
		zap.String("destination", req.Destination),
		zap.Int("places", len(places)),
		zap.Duration("took", time.Since(startTime)))

	prompt, err := BuildItineraryPrompt(req, RenderPlaceList(places))
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Generate(ctx, utils.GenerationRequest{
		Prompt:      prompt,
		Model:       s.models.PlanModel,
		Temperature: planTemperature,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
	}

	cleaned := utils.CleanJSONResponse(text)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: %w", utils.ErrGenerationFailed, utils.ErrEmptyModelResponse)
	}

	raw, err := DecodeItinerary(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
	}
	if len(raw.Itinerary) != days {
		s.log.Warn("day count differs from requested range",
			zap.Int("requested", days), zap.Int("returned", len(raw.Itinerary)))
	}

	plan := NormalizeItinerary(raw, req.Destination)
	resp := &response_models.GeneratePlanResponse{Plan: plan}

	if s.reconciler != nil && plan.MissingCoordinates() > 0 {
		res := s.reconciler.Reconcile(ctx, plan)
		resp.Plan = res.Plan
		resp.Reconciled = &response_models.ReconcileReport{
			Attempted: res.Attempted,
			Resolved:  res.Resolved,
			Updated:   res.Updated,
		}
	}

	s.log.Info("plan generated",
		zap.String("destination", req.Destination),
		zap.Int("days", len(plan.Itinerary)),
		zap.Duration("took", time.Since(startTime)))
	return resp, nil
}

func (s *ItineraryService) Reconcile(ctx context.Context, plan *response_models.ItineraryPlan) (*response_models.ReconcileResponse, error) {
	if plan == nil || len(plan.Itinerary) == 0 {
		return nil, fmt.Errorf("%w: plan with at least one day is required", utils.ErrInvalidInput)
	}
	if missing := plan.MissingCoordinates(); missing > maxReconcilePlaces {
		return nil, fmt.Errorf("%w: %d places without coordinates, at most %d per request",
			utils.ErrInvalidInput, missing, maxReconcilePlaces)
	}
	if s.reconciler == nil {
		return &response_models.ReconcileResponse{Plan: plan}, nil
	}

	res := s.reconciler.Reconcile(ctx, plan)
	return &response_models.ReconcileResponse{
		Plan: res.Plan,
		ReconcileReport: response_models.ReconcileReport{
			Attempted: res.Attempted,
			Resolved:  res.Resolved,
			Updated:   res.Updated,
		},
	}, nil
}

type rawQuizQuestion struct {
	Question  string           `json:"question"`
	Options   []string         `json:"options"`
	Answer    utils.FlexString `json:"answer"`
	Rationale string           `json:"rationale"`
}

func (s *ItineraryService) GenerateQuiz(ctx context.Context, destination string) ([]response_models.QuizQuestion, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}

	text, err := s.llm.Generate(ctx, utils.GenerationRequest{
		Prompt:      BuildQuizPrompt(destination),
		Model:       s.models.QuizModel,
		Temperature: quizTemperature,
		JSONOnly:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
	}

	quiz, err := decodeQuiz(utils.CleanJSONResponse(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrGenerationFailed, err)
	}
	return quiz, nil
}

// decodeQuiz accepts {"quiz": [...]} or a bare array.
func decodeQuiz(text string) ([]response_models.QuizQuestion, error) {
	var raw []rawQuizQuestion
	if strings.HasPrefix(text, "[") {
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return nil, jsonShapeError(err)
		}
	} else {
		var wrapper struct {
			Quiz []rawQuizQuestion `json:"quiz"`
		}
		if err := json.Unmarshal([]byte(text), &wrapper); err != nil {
			return nil, jsonShapeError(err)
		}
		raw = wrapper.Quiz
	}

	if len(raw) != quizQuestions {
		return nil, utils.NewMalformedOutput("quiz", "expected %d questions, got %d", quizQuestions, len(raw))
	}

	out := make([]response_models.QuizQuestion, 0, len(raw))
	for i, q := range raw {
		path := fmt.Sprintf("quiz[%d]", i)
		if strings.TrimSpace(q.Question) == "" {
			return nil, utils.NewMalformedOutput(path+".question", "missing or empty")
		}
		if len(q.Options) != quizOptions {
			return nil, utils.NewMalformedOutput(path+".options", "expected %d options, got %d", quizOptions, len(q.Options))
		}
		answer, err := strconv.Atoi(q.Answer.Value)
		if !q.Answer.Valid || err != nil || answer < 0 || answer >= quizOptions {
			return nil, utils.NewMalformedOutput(path+".answer", "must be 0-%d, got %q", quizOptions-1, q.Answer.Value)
		}
		out = append(out, response_models.QuizQuestion{
			Question:  q.Question,
			Options:   q.Options,
			Answer:    answer,
			Rationale: q.Rationale,
		})
	}
	return out, nil
}
