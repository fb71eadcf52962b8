package category

import (
	"context"

	"github.com/amirasaad/fintrack/infra/repository/gormerr"
	"github.com/amirasaad/fintrack/infra/repository/model"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/repository/category"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errs = gormerr.Mapping{NotFound: domain.ErrCategoryNotFound}

type repository struct {
	db *gorm.DB
}

// New creates a category repository backed by db.
func New(db *gorm.DB) category.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.CategoryCreate) error {
	c := mapCreateDTOToModel(create)
	return errs.Map(r.db.WithContext(ctx).Create(&c).Error)
}

func (r *repository) CreateMany(ctx context.Context, creates []*dto.CategoryCreate) error {
	if len(creates) == 0 {
		return nil
	}
	rows := make([]model.Category, 0, len(creates))
	for _, c := range creates {
		rows = append(rows, mapCreateDTOToModel(c))
	}
	return errs.Map(r.db.WithContext(ctx).Create(&rows).Error)
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.CategoryRead, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, errs.Map(err)
	}
	return ToDTO(&c), nil
}

func (r *repository) List(ctx context.Context) ([]*dto.CategoryRead, error) {
	var rows []model.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*dto.CategoryRead, 0, len(rows))
	for i := range rows {
		result = append(result, ToDTO(&rows[i]))
	}
	return result, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, update *dto.CategoryUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}
	if update.Type != nil {
		updates["type"] = *update.Type
	}
	if len(updates) == 0 {
		_, err := r.Get(ctx, id)
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Transaction{}).
		Where("category_id = ?", id).
		Update("category_id", gorm.Expr("NULL")).Error; err != nil {
		return err
	}
	res := db.Delete(&model.Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func mapCreateDTOToModel(create *dto.CategoryCreate) model.Category {
	return model.Category{
		ID:    create.ID,
		Name:  create.Name,
		Icon:  create.Icon,
		Color: create.Color,
		Type:  create.Type,
	}
}

// ToDTO maps a category model to its read DTO.
func ToDTO(c *model.Category) *dto.CategoryRead {
	return &dto.CategoryRead{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
}
