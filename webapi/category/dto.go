package category

import (
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/google/uuid"
)

// CreateCategoryRequest is the body of POST /categories. Type defaults to expense.
type CreateCategoryRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Icon  *string `json:"icon" validate:"omitempty,max=50"`
	Color *string `json:"color" validate:"omitempty,max=20"`
	Type  string  `json:"type" validate:"omitempty,oneof=income expense"`
}

// UpdateCategoryRequest is the body of PUT /categories/:id.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Icon  *string `json:"icon" validate:"omitempty,max=50"`
	Color *string `json:"color" validate:"omitempty,max=20"`
	Type  *string `json:"type" validate:"omitempty,oneof=income expense"`
}

// CategoryDTO is the public view of a category.
type CategoryDTO struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Icon      *string                `json:"icon"`
	Color     *string                `json:"color"`
	Type      domain.TransactionType `json:"type"`
	CreatedAt time.Time              `json:"createdAt"`
}

// ToDTO renders a category.
func ToDTO(c *dto.CategoryRead) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
}

func toDTOs(cs []*dto.CategoryRead) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToDTO(c))
	}
	return out
}
