package api

import (
	"fmt"
	"net/http"
	"strconv"

	"fincontrol/config"
	"fincontrol/logger"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Response envelope padrão das respostas
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse resposta paginada
type PageResponse struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	List     interface{} `json:"list"`
}

// Success resposta de sucesso
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage sucesso com mensagem
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error resposta de erro
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// SafeErrorMessage não expõe detalhes internos em produção
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// ServerError registra o erro com um ID e devolve 500 com esse ID para suporte
func ServerError(c *gin.Context, prefix string, err error, fallback string) {
	errorID := logger.NewErrorID(prefix)
	log.WithError(err).WithFields(log.Fields{
		"error_id": errorID,
		"path":     c.FullPath(),
	}).Error(fallback)
	_ = c.Error(err)
	InternalError(c, fmt.Sprintf("%s (ID do erro: %s)", SafeErrorMessage(err, fallback), errorID))
}

// parseID lê o parâmetro :id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "ID inválido")
		return 0, false
	}
	return uint(id), true
}

// normalizePage aplica os padrões de paginação: página 1, 10 itens, máximo 100
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
