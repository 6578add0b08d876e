package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	dbm "tripmaker/internal/models/db_models"
	"tripmaker/internal/models/request_models"
	"tripmaker/internal/models/response_models"
	"tripmaker/pkg/utils"
)

type fakeLLM struct {
	mu       sync.Mutex
	requests []utils.GenerationRequest
	generate func(ctx context.Context, req utils.GenerationRequest) (string, error)
}

func (f *fakeLLM) Generate(ctx context.Context, req utils.GenerationRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.generate(ctx, req)
}

func (f *fakeLLM) Close() error { return nil }

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeTours struct {
	places []TourPlace
}

func (f *fakeTours) FetchPlaces(context.Context, string, request_models.Language) []TourPlace {
	return f.places
}

type fakeReconciler struct {
	called int
	result func(plan *response_models.ItineraryPlan) ReconcileResult
}

func (f *fakeReconciler) Reconcile(_ context.Context, plan *response_models.ItineraryPlan) ReconcileResult {
	f.called++
	return f.result(plan)
}

type geocodeCall struct {
	query string
	at    time.Time
}

type fakeGeocoder struct {
	mu      sync.Mutex
	calls   []geocodeCall
	results map[string]*response_models.Coordinates
	errs    map[string]error
}

func (f *fakeGeocoder) FindPlace(_ context.Context, query string) (*response_models.Coordinates, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, geocodeCall{query: query, at: time.Now()})
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

type fakeMail struct {
	mu      sync.Mutex
	resets  map[string]string
	quotes  []request_models.QuoteRequest
	failErr error
}

func newFakeMail() *fakeMail {
	return &fakeMail{resets: map[string]string{}}
}

func (f *fakeMail) SendQuoteRequest(_ context.Context, req request_models.QuoteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotes = append(f.quotes, req)
	return f.failErr
}

func (f *fakeMail) SendMailToResetPassword(_ context.Context, email, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return f.failErr
	}
	f.resets[email] = token
	return nil
}

type fakeAccountRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*dbm.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byID: map[uuid.UUID]*dbm.Account{}}
}

func (f *fakeAccountRepo) Insert(_ context.Context, account *dbm.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	cp := *account
	f.byID[account.ID] = &cp
	return nil
}

func (f *fakeAccountRepo) FindById(_ context.Context, id uuid.UUID) (*dbm.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.byID[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*dbm.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.byID {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id].PasswordHash = hash
	return nil
}

type fakeSavedRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]dbm.SavedItinerary
	clock    int64
	lastPage [2]int
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{rows: map[uuid.UUID]dbm.SavedItinerary{}, clock: 1740787200}
}

func (f *fakeSavedRepo) Create(_ context.Context, it *dbm.SavedItinerary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it.ID = uuid.New()
	f.clock++
	it.CreatedAt = f.clock
	f.rows[it.ID] = *it
	return nil
}

func (f *fakeSavedRepo) ListByUser(_ context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.SavedItinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPage = [2]int{page, pageSize}
	var out []dbm.SavedItinerary
	for _, row := range f.rows {
		if row.UserID == userID {
			row.Plan = nil
			out = append(out, row)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].CreatedAt > out[j-1].CreatedAt; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

func (f *fakeSavedRepo) FindForUser(_ context.Context, userID, id uuid.UUID) (*dbm.SavedItinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeSavedRepo) DeleteForUser(_ context.Context, userID, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.UserID != userID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}
