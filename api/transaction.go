package api

import (
	"encoding/json"
	"errors"
	"time"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/middleware"
	"fincontrol/models"
	"fincontrol/service"
	"fincontrol/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DecisionNotifier avisa o autor quando a transação é revisada
type DecisionNotifier interface {
	Enabled() bool
	NotifyDecision(to *models.User, tx *models.Transaction) error
}

// TransactionHandler lançamento, consulta e revisão de transações
type TransactionHandler struct {
	cfg      *config.Config
	notifier DecisionNotifier
}

// NewTransactionHandler cria o handler de transações
func NewTransactionHandler(cfg *config.Config, notifier DecisionNotifier) *TransactionHandler {
	return &TransactionHandler{cfg: cfg, notifier: notifier}
}

func (h *TransactionHandler) ledger() *service.Ledger {
	return service.NewLedger(database.DB, h.cfg.Finance.BalanceScope)
}

// CreateTransactionRequest nova transação. amount aceita número ou texto decimal.
type CreateTransactionRequest struct {
	Type        string      `json:"type" binding:"required" example:"EXPENSE"`
	Amount      json.Number `json:"amount" binding:"required" swaggertype:"string" example:"150.75"`
	Description string      `json:"description" example:"Aluguel de som"`
	CategoryID  uint        `json:"category_id" binding:"required" example:"1"`
}

// TransactionListRequest filtros da listagem
type TransactionListRequest struct {
	Page       int    `form:"page" example:"1"`
	PageSize   int    `form:"page_size" example:"10"`
	Type       string `form:"type" example:"INCOME"`
	Status     string `form:"status" example:"PENDING"`
	CategoryID uint   `form:"category_id" example:"1"`
	StartTime  string `form:"start_time" example:"2025-01-01"`
	EndTime    string `form:"end_time" example:"2025-12-31"`
}

// TransactionItem transação com categoria e autor
type TransactionItem struct {
	ID             uint            `json:"id"`
	Type           string          `json:"type"`
	Status         string          `json:"status"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string"`
	Description    string          `json:"description"`
	CategoryID     uint            `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	CreatedByID    uint            `json:"created_by_id"`
	CreatedByName  string          `json:"created_by_name"`
	CreatedByEmail string          `json:"created_by_email"`
	ReviewedAt     *time.Time      `json:"reviewed_at"`
	CreatedAt      time.Time       `json:"created_at"`
}

const transactionItemColumns = "transactions.id, transactions.type, transactions.status, transactions.amount, " +
	"transactions.description, transactions.category_id, categories.name AS category_name, " +
	"transactions.created_by_id, users.name AS created_by_name, users.email AS created_by_email, " +
	"transactions.reviewed_at, transactions.created_at"

// transactionItems consulta base com categoria e autor
func transactionItems() *gorm.DB {
	return database.DB.Table("transactions").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Joins("LEFT JOIN users ON users.id = transactions.created_by_id").
		Where("transactions.deleted_at IS NULL")
}

// Create lança uma transação
// @Summary Lançar transação
// @Description Toda transação nasce PENDING. Saídas acima do saldo aprovado disponível são recusadas.
// @Tags Transações
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "Transação"
// @Success 200 {object} Response{data=models.Transaction} "Transação criada"
// @Failure 400 {object} Response "Dados inválidos ou saldo insuficiente"
// @Router /api/v1/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Tipo, valor e categoria são obrigatórios")
		return
	}

	amount, err := validation.ParseAmount(req.Amount.String())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	tx, err := h.ledger().CreateTransaction(c.Request.Context(), service.NewTransaction{
		Type:        req.Type,
		Amount:      amount,
		Description: validation.SanitizeText(req.Description, validation.MaxDescriptionLength),
		CategoryID:  req.CategoryID,
		CreatedByID: middleware.GetCurrentUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidType),
			errors.Is(err, service.ErrCategoryNotFound),
			errors.Is(err, service.ErrInsufficientBalance):
			BadRequest(c, err.Error())
		default:
			ServerError(c, "tx-create", err, "Erro ao criar transação")
		}
		return
	}

	SuccessWithMessage(c, "Transação criada e aguardando aprovação", tx)
}

// List lista transações
// @Summary Listar transações
// @Description Todas as transações, mais recentes primeiro, com filtros e paginação
// @Tags Transações
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Param type query string false "INCOME ou EXPENSE"
// @Param status query string false "PENDING, APPROVED ou REJECTED"
// @Param category_id query int false "Categoria"
// @Param start_time query string false "Data inicial (2025-01-01)"
// @Param end_time query string false "Data final (2025-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]TransactionItem}}
// @Failure 400 {object} Response "Filtro inválido"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	var req TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "Parâmetros inválidos")
		return
	}
	req.Page, req.PageSize = normalizePage(req.Page, req.PageSize)

	query := transactionItems()
	if req.Type != "" {
		if !models.IsValidTransactionType(req.Type) {
			BadRequest(c, service.ErrInvalidType.Error())
			return
		}
		query = query.Where("transactions.type = ?", req.Type)
	}
	if req.Status != "" {
		if !models.IsValidTransactionStatus(req.Status) {
			BadRequest(c, "Status inválido")
			return
		}
		query = query.Where("transactions.status = ?", req.Status)
	}
	if req.CategoryID != 0 {
		query = query.Where("transactions.category_id = ?", req.CategoryID)
	}
	query, ok := applyDateRange(c, query, "transactions.created_at", req.StartTime, req.EndTime)
	if !ok {
		return
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		ServerError(c, "tx-list", err, "Erro ao listar transações")
		return
	}

	items := []TransactionItem{}
	err := query.Session(&gorm.Session{}).
		Select(transactionItemColumns).
		Order("transactions.created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Scan(&items).Error
	if err != nil {
		ServerError(c, "tx-list", err, "Erro ao listar transações")
		return
	}

	Success(c, PageResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		List:     items,
	})
}

// Get detalhe de uma transação
// @Summary Detalhe da transação
// @Tags Transações
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da transação"
// @Success 200 {object} Response{data=TransactionItem}
// @Failure 404 {object} Response "Transação não encontrada"
// @Router /api/v1/transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var items []TransactionItem
	err := transactionItems().
		Select(transactionItemColumns).
		Where("transactions.id = ?", id).
		Limit(1).
		Scan(&items).Error
	if err != nil {
		ServerError(c, "tx-get", err, "Erro ao buscar transação")
		return
	}
	if len(items) == 0 {
		NotFound(c, service.ErrTransactionNotFound.Error())
		return
	}
	Success(c, items[0])
}

// Pending lista transações aguardando revisão
// @Summary Transações pendentes
// @Description Somente administradores; mais recentes primeiro
// @Tags Aprovações
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=[]TransactionItem}
// @Failure 403 {object} Response "Acesso restrito"
// @Router /api/v1/admin/transactions/pending [get]
func (h *TransactionHandler) Pending(c *gin.Context) {
	items := []TransactionItem{}
	err := transactionItems().
		Select(transactionItemColumns).
		Where("transactions.status = ?", models.StatusPending).
		Order("transactions.created_at DESC").
		Scan(&items).Error
	if err != nil {
		ServerError(c, "tx-pending", err, "Erro ao listar pendências")
		return
	}
	Success(c, items)
}

// PendingCount quantidade de pendências visíveis ao usuário
// @Summary Contagem de pendências
// @Description Administradores veem o total; demais usuários, apenas as próprias
// @Tags Transações
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=map[string]int64}
// @Router /api/v1/transactions/pending-count [get]
func (h *TransactionHandler) PendingCount(c *gin.Context) {
	count, err := h.ledger().PendingCount(c.Request.Context(), middleware.GetCurrentUser(c))
	if err != nil {
		ServerError(c, "tx-pending-count", err, "Erro ao contar pendências")
		return
	}
	Success(c, gin.H{"count": count})
}

// Approve aprova uma transação pendente
// @Summary Aprovar transação
// @Tags Aprovações
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da transação"
// @Success 200 {object} Response{data=models.Transaction} "Transação aprovada"
// @Failure 403 {object} Response "Acesso restrito"
// @Failure 404 {object} Response "Transação não encontrada"
// @Failure 409 {object} Response "Transação já revisada"
// @Router /api/v1/admin/transactions/{id}/approve [post]
func (h *TransactionHandler) Approve(c *gin.Context) {
	h.decide(c, models.StatusApproved, "Transação aprovada")
}

// Reject rejeita uma transação pendente
// @Summary Rejeitar transação
// @Tags Aprovações
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID da transação"
// @Success 200 {object} Response{data=models.Transaction} "Transação rejeitada"
// @Failure 403 {object} Response "Acesso restrito"
// @Failure 404 {object} Response "Transação não encontrada"
// @Failure 409 {object} Response "Transação já revisada"
// @Router /api/v1/admin/transactions/{id}/reject [post]
func (h *TransactionHandler) Reject(c *gin.Context) {
	h.decide(c, models.StatusRejected, "Transação rejeitada")
}

func (h *TransactionHandler) decide(c *gin.Context, status, message string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tx, err := h.ledger().Decide(c.Request.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTransactionNotFound):
			NotFound(c, err.Error())
		case errors.Is(err, service.ErrNotPending):
			Conflict(c, err.Error())
		case errors.Is(err, service.ErrInvalidDecision):
			BadRequest(c, err.Error())
		default:
			ServerError(c, "tx-decide", err, "Erro ao atualizar transação")
		}
		return
	}

	log.WithFields(log.Fields{
		"transaction_id": tx.ID,
		"status":         tx.Status,
		"reviewer_id":    middleware.GetCurrentUserID(c),
	}).Info("transação revisada")

	h.notifyDecision(tx)
	SuccessWithMessage(c, message, tx)
}

// notifyDecision envia o aviso em segundo plano; falhas só vão para o log
func (h *TransactionHandler) notifyDecision(tx *models.Transaction) {
	if h.notifier == nil || !h.notifier.Enabled() {
		return
	}
	var author models.User
	if err := database.DB.First(&author, tx.CreatedByID).Error; err != nil {
		log.WithError(err).WithField("transaction_id", tx.ID).Warn("autor da transação não encontrado para aviso")
		return
	}
	go func() {
		if err := h.notifier.NotifyDecision(&author, tx); err != nil {
			log.WithError(err).WithField("transaction_id", tx.ID).Warn("falha ao enviar aviso de revisão")
		}
	}()
}

// applyDateRange filtra por intervalo de datas inclusivo (AAAA-MM-DD)
func applyDateRange(c *gin.Context, query *gorm.DB, column, start, end string) (*gorm.DB, bool) {
	if start != "" {
		from, err := validation.ParseDate(start)
		if err != nil {
			BadRequest(c, err.Error())
			return nil, false
		}
		query = query.Where(column+" >= ?", from)
	}
	if end != "" {
		to, err := validation.ParseDate(end)
		if err != nil {
			BadRequest(c, err.Error())
			return nil, false
		}
		query = query.Where(column+" < ?", to.AddDate(0, 0, 1))
	}
	return query, true
}
