package session

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository/gormerr"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errs = gormerr.Mapping{NotFound: domain.ErrSessionNotFound}

type repository struct {
	db *gorm.DB
}

// New creates a session repository backed by db.
func New(db *gorm.DB) session.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.SessionCreate) error {
	s := &model.Session{
		ID:        create.ID,
		UserID:    create.UserID,
		ExpiresAt: create.ExpiresAt.UTC(),
		IPAddress: create.IPAddress,
		UserAgent: create.UserAgent,
	}
	return errs.Map(r.db.WithContext(ctx).Create(s).Error)
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.SessionRead, error) {
	var s model.Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, errs.Map(err)
	}
	return mapModelToDTO(&s), nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.SessionRead, error) {
	var rows []model.Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.SessionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Session{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *repository) DeleteByUserExcept(ctx context.Context, userID, keep uuid.UUID) ([]uuid.UUID, error) {
	db := r.db.WithContext(ctx)
	var ids []uuid.UUID
	if err := db.Model(&model.Session{}).
		Where("user_id = ? AND id <> ?", userID, keep).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := db.Where("id IN ?", ids).Delete(&model.Session{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func mapModelToDTO(s *model.Session) *dto.SessionRead {
	return &dto.SessionRead{
		ID:        s.ID,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
		IPAddress: s.IPAddress,
		UserAgent: s.UserAgent,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
