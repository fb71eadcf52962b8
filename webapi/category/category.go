package category

import (
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	categorysvc "github.com/amirasaad/fintrack/pkg/service/category"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the category endpoints under r. Categories are shared by
// all users but still require authentication.
func Routes(r fiber.Router, categorySvc *categorysvc.Service, protected fiber.Handler) {
	g := r.Group("/categories", protected)
	g.Get("/", ListCategories(categorySvc))
	g.Post("/", CreateCategory(categorySvc))
	g.Post("/seed", SeedCategories(categorySvc))
	g.Get("/:id", GetCategory(categorySvc))
	g.Put("/:id", UpdateCategory(categorySvc))
	g.Delete("/:id", DeleteCategory(categorySvc))
}

// ListCategories returns every category.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/categories [get]
// @Security Bearer
func ListCategories(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cs, err := categorySvc.List(c.UserContext())
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, toDTOs(cs))
	}
}

// GetCategory returns one category.
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /api/categories/{id} [get]
// @Security Bearer
func GetCategory(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		cat, err := categorySvc.Get(c.UserContext(), id)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToDTO(cat))
	}
}

// CreateCategory creates a category.
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/categories [post]
// @Security Bearer
func CreateCategory(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCategoryRequest](c)
		if input == nil {
			return err
		}
		cat, err := categorySvc.Create(c.UserContext(), dto.CategoryCreate{
			Name:  input.Name,
			Icon:  input.Icon,
			Color: input.Color,
			Type:  domain.TransactionType(input.Type),
		})
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, ToDTO(cat))
	}
}

// UpdateCategory changes a category.
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/categories/{id} [put]
// @Security Bearer
func UpdateCategory(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[UpdateCategoryRequest](c)
		if input == nil {
			return err
		}
		update := dto.CategoryUpdate{Name: input.Name, Icon: input.Icon, Color: input.Color}
		if input.Type != nil {
			t := domain.TransactionType(*input.Type)
			update.Type = &t
		}
		cat, err := categorySvc.Update(c.UserContext(), id, update)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, ToDTO(cat))
	}
}

// DeleteCategory removes a category; its transactions become uncategorized.
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /api/categories/{id} [delete]
// @Security Bearer
func DeleteCategory(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		if err := categorySvc.Delete(c.UserContext(), id); err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.MessageResponseJSON(c, fiber.StatusOK, "Category deleted successfully")
	}
}

// SeedCategories inserts the default categories.
// @Summary Seed default categories
// @Tags categories
// @Produce json
// @Success 201 {object} common.Response
// @Router /api/categories/seed [post]
// @Security Bearer
func SeedCategories(categorySvc *categorysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cs, err := categorySvc.SeedDefaults(c.UserContext())
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, toDTOs(cs))
	}
}
