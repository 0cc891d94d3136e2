package api

import (
	"errors"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/middleware"
	"fincontrol/models"
	"fincontrol/service"
	"fincontrol/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler login e perfil do usuário autenticado
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler cria o handler de autenticação
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// LoginRequest credenciais
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ana@empresa.com"`
	Password string `json:"password" binding:"required" example:"senha-segura"`
}

// LoginResponse token e dados do usuário
type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UpdateProfileRequest alteração do próprio perfil
type UpdateProfileRequest struct {
	Name            string `json:"name" binding:"required" example:"Ana Souza"`
	Email           string `json:"email" binding:"required" example:"ana@empresa.com"`
	CurrentPassword string `json:"current_password" example:"senha-atual"`
	NewPassword     string `json:"new_password" example:"nova-senha"`
}

// Login autentica por e-mail e senha
// @Summary Login
// @Description Autentica por e-mail e senha e devolve um token JWT
// @Tags Autenticação
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credenciais"
// @Success 200 {object} Response{data=LoginResponse} "Login realizado"
// @Failure 400 {object} Response "Parâmetros inválidos"
// @Failure 401 {object} Response "E-mail ou senha incorretos"
// @Failure 429 {object} Response "Muitas tentativas"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Informe e-mail e senha")
		return
	}

	var user models.User
	err := database.DB.Where("email = ?", validation.NormalizeEmail(req.Email)).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ServerError(c, "login", err, "Falha ao autenticar")
		return
	}
	found := &user
	if err != nil {
		found = nil
	}
	if !service.CheckLogin(found, req.Password) {
		Unauthorized(c, "E-mail ou senha incorretos")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		ServerError(c, "login", err, "Falha ao gerar token")
		return
	}

	Success(c, LoginResponse{Token: token, User: &user})
}

// GetProfile dados do usuário autenticado
// @Summary Meu perfil
// @Tags Autenticação
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 401 {object} Response "Não autenticado"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "Usuário não encontrado")
		return
	}

	Success(c, user)
}

// UpdateProfile altera nome, e-mail e opcionalmente a senha do próprio usuário
// @Summary Atualizar meu perfil
// @Description Trocar a senha exige a senha atual
// @Tags Autenticação
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Dados do perfil"
// @Success 200 {object} Response{data=models.User} "Perfil atualizado"
// @Failure 400 {object} Response "Dados inválidos"
// @Failure 401 {object} Response "Senha atual incorreta"
// @Router /api/v1/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Nome e e-mail são obrigatórios")
		return
	}

	in, err := service.CleanUserInput(service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.NewPassword,
	}, true)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		NotFound(c, "Usuário não encontrado")
		return
	}

	updates := map[string]interface{}{
		"name":  in.Name,
		"email": in.Email,
	}

	if in.Password != "" {
		if req.CurrentPassword == "" {
			BadRequest(c, service.ErrPasswordMissing.Error())
			return
		}
		if !service.CheckPassword(user.Password, req.CurrentPassword) {
			Unauthorized(c, service.ErrWrongPassword.Error())
			return
		}
		hash, err := service.HashPassword(in.Password)
		if err != nil {
			ServerError(c, "profile", err, "Falha ao atualizar perfil")
			return
		}
		updates["password"] = hash
	}

	if in.Email != user.Email {
		taken, err := service.EmailInUse(c.Request.Context(), database.DB, in.Email, user.ID)
		if err != nil {
			ServerError(c, "profile", err, "Falha ao atualizar perfil")
			return
		}
		if taken {
			BadRequest(c, service.ErrEmailTaken.Error())
			return
		}
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		ServerError(c, "profile", err, "Falha ao atualizar perfil")
		return
	}
	user.Name = in.Name
	user.Email = in.Email

	SuccessWithMessage(c, "Perfil atualizado", user)
}
