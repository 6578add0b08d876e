package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tripmaker/internal/models/db_models"
)

type SavedItineraryRepository interface {
	Create(ctx context.Context, it *dbm.SavedItinerary) error
	ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.SavedItinerary, error)
	FindForUser(ctx context.Context, userID, id uuid.UUID) (*dbm.SavedItinerary, error)
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

type savedItineraryRepository struct {
	db *gorm.DB
}

func NewSavedItineraryRepository(db *gorm.DB) SavedItineraryRepository {
	return &savedItineraryRepository{db: db}
}

func (r *savedItineraryRepository) Create(ctx context.Context, it *dbm.SavedItinerary) error {
	return r.db.WithContext(ctx).Create(it).Error
}

// ListByUser returns the user's itineraries newest first. The plan payload
// is left out of list rows.
func (r *savedItineraryRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]dbm.SavedItinerary, error) {
	var out []dbm.SavedItinerary
	err := r.db.WithContext(ctx).
		Omit("plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&out).Error
	return out, err
}

// FindForUser returns nil, nil when the id does not exist or belongs to
// another user.
func (r *savedItineraryRepository) FindForUser(ctx context.Context, userID, id uuid.UUID) (*dbm.SavedItinerary, error) {
	var it dbm.SavedItinerary
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&it).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func (r *savedItineraryRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&dbm.SavedItinerary{})
	return res.RowsAffected > 0, res.Error
}
