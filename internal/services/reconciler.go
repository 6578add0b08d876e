package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripmaker/internal/models/response_models"
)

const DefaultGeocodeDelay = 300 * time.Millisecond

// ReconcileResult reports one sweep. Plan is a new snapshot when Updated,
// otherwise the plan that was passed in.
type ReconcileResult struct {
	Plan      *response_models.ItineraryPlan
	Attempted int
	Resolved  int
	Updated   bool
}

// GeocodeReconciler backfills coordinates for places the model left without them.
type GeocodeReconciler interface {
	Reconcile(ctx context.Context, plan *response_models.ItineraryPlan) ReconcileResult
}

type geocodeReconciler struct {
	geocoder Geocoder
	delay    time.Duration
	log      *zap.Logger
}

func NewGeocodeReconciler(geocoder Geocoder, delay time.Duration, log *zap.Logger) GeocodeReconciler {
	if delay <= 0 {
		delay = DefaultGeocodeDelay
	}
	return &geocodeReconciler{geocoder: geocoder, delay: delay, log: log.Named("reconciler")}
}

type placeRef struct {
	day   int
	index int
	query string
}

type placeLookup struct {
	ref    placeRef
	coords *response_models.Coordinates
}

func (r *geocodeReconciler) Reconcile(ctx context.Context, plan *response_models.ItineraryPlan) ReconcileResult {
	result := ReconcileResult{Plan: plan}
	if plan == nil {
		return result
	}

	pending := pendingPlaces(plan)
	if len(pending) == 0 {
		return result
	}

	queue := make(chan placeRef, len(pending))
	for _, ref := range pending {
		queue <- ref
	}
	close(queue)

	lookups := make(chan placeLookup)
	go r.work(ctx, queue, lookups)

	// Only this goroutine touches the draft; observers keep seeing plan.
	draft := plan.Clone()
	for l := range lookups {
		result.Attempted++
		if l.coords == nil {
			continue
		}
		cp := *l.coords
		draft.Itinerary[l.ref.day].Places[l.ref.index].Coordinates = &cp
		result.Resolved++
	}

	if result.Resolved > 0 {
		result.Plan = draft
		result.Updated = true
	}

	r.log.Info("reconcile sweep finished",
		zap.Int("pending", len(pending)),
		zap.Int("attempted", result.Attempted),
		zap.Int("resolved", result.Resolved))
	return result
}

// work drains the queue one place at a time, waiting the fixed delay before
// every search. It stops early when ctx ends.
func (r *geocodeReconciler) work(ctx context.Context, queue <-chan placeRef, out chan<- placeLookup) {
	defer close(out)

	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	first := true

	for ref := range queue {
		if !first {
			timer.Reset(r.delay)
		}
		first = false

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		coords, err := r.geocoder.FindPlace(ctx, ref.query)
		if err != nil {
			r.log.Warn("geocode failed", zap.String("query", ref.query), zap.Error(err))
			coords = nil
		}
		out <- placeLookup{ref: ref, coords: coords}
	}
}

func pendingPlaces(plan *response_models.ItineraryPlan) []placeRef {
	var refs []placeRef
	for d, day := range plan.Itinerary {
		for i, place := range day.Places {
			if place.Coordinates != nil {
				continue
			}
			refs = append(refs, placeRef{
				day:   d,
				index: i,
				query: strings.TrimSpace(plan.Destination + " " + place.Name),
			})
		}
	}
	return refs
}
