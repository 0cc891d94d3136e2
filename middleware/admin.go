package middleware

import (
	"errors"
	"net/http"

	"fincontrol/database"
	"fincontrol/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// RequireAdmin deve vir depois de JWTAuth. O papel é relido do banco a cada
// requisição, então rebaixar um administrador vale de imediato.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "Acesso restrito a administradores",
			})
			return
		}
		c.Next()
	}
}

// LoadCurrentUser carrega o usuário do token para os handlers que dependem do papel
func LoadCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadCurrentUser(c); ok {
			c.Next()
		}
	}
}

func loadCurrentUser(c *gin.Context) (*models.User, bool) {
	if u := GetCurrentUser(c); u != nil {
		return u, true
	}

	userID := GetCurrentUserID(c)
	if userID == 0 {
		abortUnauthorized(c, "Não autenticado")
		return nil, false
	}

	var user models.User
	err := database.DB.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		abortUnauthorized(c, "Usuário não encontrado")
		return nil, false
	}
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("falha ao carregar usuário autenticado")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Erro interno",
		})
		return nil, false
	}

	c.Set(currentUserKey, &user)
	return &user, true
}

// GetCurrentUser usuário carregado por RequireAdmin/LoadCurrentUser
func GetCurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
