package api

import (
	"errors"
	"time"

	"fincontrol/database"
	"fincontrol/middleware"
	"fincontrol/service"

	"github.com/gin-gonic/gin"
)

// CategoryHandler categorias de transação
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// CategoryRequest nome da categoria
type CategoryRequest struct {
	Name string `json:"name" binding:"required" example:"Eventos"`
}

// CategoryItem categoria com o nome de quem criou
type CategoryItem struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	CreatedByID   uint      `json:"created_by_id"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// List lista todas as categorias
// @Summary Listar categorias
// @Description Todas as categorias, em ordem alfabética, com o nome de quem criou
// @Tags Categorias
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]CategoryItem}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var items []CategoryItem
	err := database.DB.Table("categories").
		Select("categories.id, categories.name, categories.created_by_id, users.name AS created_by_name, categories.created_at").
		Joins("LEFT JOIN users ON users.id = categories.created_by_id").
		Where("categories.deleted_at IS NULL").
		Order("categories.name ASC").
		Scan(&items).Error
	if err != nil {
		ServerError(c, "cat-list", err, "Falha ao listar categorias")
		return
	}
	if items == nil {
		items = []CategoryItem{}
	}
	Success(c, items)
}

// Create cria uma categoria
// @Summary Criar categoria
// @Description O nome é único por criador, sem diferenciar maiúsculas
// @Tags Categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoryRequest true "Categoria"
// @Success 200 {object} Response{data=models.Category} "Categoria criada"
// @Failure 400 {object} Response "Nome inválido ou já existente"
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, service.ErrCategoryNameRequired.Error())
		return
	}

	category, err := service.CreateCategory(c.Request.Context(), database.DB, middleware.GetCurrentUserID(c), req.Name)
	if err != nil {
		respondCategoryError(c, "cat-create", err, "Erro ao criar categoria")
		return
	}
	SuccessWithMessage(c, "Categoria criada", category)
}

// Update renomeia uma categoria
// @Summary Renomear categoria
// @Tags Categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da categoria"
// @Param request body CategoryRequest true "Novo nome"
// @Success 200 {object} Response{data=models.Category} "Categoria atualizada"
// @Failure 400 {object} Response "Nome inválido ou já existente"
// @Failure 403 {object} Response "Categoria de outro usuário"
// @Failure 404 {object} Response "Categoria não encontrada"
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, service.ErrCategoryNameRequired.Error())
		return
	}

	category, err := service.RenameCategory(c.Request.Context(), database.DB, middleware.GetCurrentUserID(c), id, req.Name)
	if err != nil {
		respondCategoryError(c, "cat-update", err, "Erro ao atualizar categoria")
		return
	}
	SuccessWithMessage(c, "Categoria atualizada", category)
}

// Delete exclui uma categoria sem transações vinculadas
// @Summary Excluir categoria
// @Description Bloqueado enquanto houver transações usando a categoria
// @Tags Categorias
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da categoria"
// @Success 200 {object} Response "Categoria excluída"
// @Failure 403 {object} Response "Categoria de outro usuário"
// @Failure 404 {object} Response "Categoria não encontrada"
// @Failure 409 {object} Response "Categoria com transações vinculadas"
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := service.DeleteCategory(c.Request.Context(), database.DB, middleware.GetCurrentUserID(c), id); err != nil {
		respondCategoryError(c, "cat-delete", err, "Erro ao deletar categoria")
		return
	}
	SuccessWithMessage(c, "Categoria excluída", nil)
}

func respondCategoryError(c *gin.Context, prefix string, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCategoryNameRequired),
		errors.Is(err, service.ErrCategoryNameTooLong),
		errors.Is(err, service.ErrCategoryExists):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrCategoryForbidden):
		Forbidden(c, err.Error())
	case errors.Is(err, service.ErrCategoryNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrCategoryInUse):
		Conflict(c, err.Error())
	default:
		ServerError(c, prefix, err, fallback)
	}
}
