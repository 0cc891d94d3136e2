package api

import (
	"errors"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/middleware"
	"fincontrol/models"
	"fincontrol/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// WelcomeMailer envia o aviso de conta criada
type WelcomeMailer interface {
	Enabled() bool
	SendWelcomeEmail(to *models.User, loginURL string) error
}

// UserHandler gestão de usuários (somente administradores)
type UserHandler struct {
	cfg    *config.Config
	mailer WelcomeMailer
}

// NewUserHandler cria o handler de usuários
func NewUserHandler(cfg *config.Config, mailer WelcomeMailer) *UserHandler {
	return &UserHandler{cfg: cfg, mailer: mailer}
}

// CreateUserRequest novo usuário
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Bruno Lima"`
	Email    string `json:"email" binding:"required" example:"bruno@empresa.com"`
	Password string `json:"password" binding:"required" example:"senha-inicial"`
	Role     string `json:"role" example:"user"`
}

// UpdateUserRequest alteração de usuário; senha e papel são opcionais
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Bruno Lima"`
	Email    string `json:"email" binding:"required" example:"bruno@empresa.com"`
	Password string `json:"password" example:"nova-senha"`
	Role     string `json:"role" example:"admin"`
}

// List lista usuários
// @Summary Listar usuários
// @Tags Usuários
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]models.User}
// @Failure 403 {object} Response "Acesso restrito"
// @Router /api/v1/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users := []models.User{}
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		ServerError(c, "users", err, "Falha ao listar usuários")
		return
	}
	Success(c, users)
}

// Create cria um usuário
// @Summary Criar usuário
// @Tags Usuários
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "Dados do usuário"
// @Success 200 {object} Response{data=models.User} "Usuário criado"
// @Failure 400 {object} Response "Dados inválidos ou e-mail em uso"
// @Router /api/v1/admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Nome, e-mail e senha são obrigatórios")
		return
	}

	user, err := service.CreateUser(c.Request.Context(), database.DB, service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if service.IsInputError(err) {
			BadRequest(c, err.Error())
			return
		}
		ServerError(c, "users", err, "Falha ao criar usuário")
		return
	}

	h.sendWelcome(*user)

	SuccessWithMessage(c, "Usuário criado", user)
}

// sendWelcome envia o e-mail em segundo plano; falhas só vão para o log
func (h *UserHandler) sendWelcome(user models.User) {
	if h.mailer == nil || !h.mailer.Enabled() {
		return
	}
	loginURL := h.cfg.Server.BaseURL
	go func() {
		if err := h.mailer.SendWelcomeEmail(&user, loginURL); err != nil {
			log.WithError(err).WithField("user_id", user.ID).Warn("falha ao enviar e-mail de boas-vindas")
		}
	}()
}

// Update altera um usuário
// @Summary Atualizar usuário
// @Tags Usuários
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do usuário"
// @Param request body UpdateUserRequest true "Dados do usuário"
// @Success 200 {object} Response{data=models.User} "Usuário atualizado"
// @Failure 400 {object} Response "Dados inválidos"
// @Failure 404 {object} Response "Usuário não encontrado"
// @Failure 409 {object} Response "Último administrador"
// @Router /api/v1/admin/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Nome e e-mail são obrigatórios")
		return
	}

	in, err := service.CleanUserInput(service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, true)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		NotFound(c, "Usuário não encontrado")
		return
	}

	if in.Email != user.Email {
		taken, err := service.EmailInUse(c.Request.Context(), database.DB, in.Email, user.ID)
		if err != nil {
			ServerError(c, "users", err, "Falha ao atualizar usuário")
			return
		}
		if taken {
			BadRequest(c, service.ErrEmailTaken.Error())
			return
		}
	}

	if user.IsAdmin() && in.Role == models.RoleUser {
		err := service.EnsureAnotherAdmin(c.Request.Context(), database.DB, user.ID)
		if errors.Is(err, service.ErrLastAdmin) {
			Conflict(c, err.Error())
			return
		}
		if err != nil {
			ServerError(c, "users", err, "Falha ao atualizar usuário")
			return
		}
	}

	updates := map[string]interface{}{
		"name":  in.Name,
		"email": in.Email,
	}
	if in.Role != "" {
		updates["role"] = in.Role
	}
	if in.Password != "" {
		hash, err := service.HashPassword(in.Password)
		if err != nil {
			ServerError(c, "users", err, "Falha ao atualizar usuário")
			return
		}
		updates["password"] = hash
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		ServerError(c, "users", err, "Falha ao atualizar usuário")
		return
	}
	user.Name = in.Name
	user.Email = in.Email
	if in.Role != "" {
		user.Role = in.Role
	}

	SuccessWithMessage(c, "Usuário atualizado", user)
}

// Delete remove um usuário
// @Summary Excluir usuário
// @Description O administrador não pode excluir a própria conta
// @Tags Usuários
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do usuário"
// @Success 200 {object} Response "Usuário excluído"
// @Failure 400 {object} Response "Não é possível excluir a si mesmo"
// @Failure 404 {object} Response "Usuário não encontrado"
// @Router /api/v1/admin/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if id == middleware.GetCurrentUserID(c) {
		BadRequest(c, "Você não pode excluir a própria conta")
		return
	}

	result := database.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		ServerError(c, "users", result.Error, "Falha ao excluir usuário")
		return
	}
	if result.RowsAffected == 0 {
		NotFound(c, "Usuário não encontrado")
		return
	}

	SuccessWithMessage(c, "Usuário excluído", nil)
}
