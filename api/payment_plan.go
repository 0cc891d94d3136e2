package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/middleware"
	"fincontrol/models"
	"fincontrol/service"
	"fincontrol/validation"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var errPlanNotFound = errors.New("Plano de pagamento não encontrado")

// PaymentPlanHandler planos de pagamento do próprio usuário
type PaymentPlanHandler struct {
	cfg   *config.Config
	store service.ProofStore
}

// NewPaymentPlanHandler cria o handler de planos de pagamento
func NewPaymentPlanHandler(cfg *config.Config, store service.ProofStore) *PaymentPlanHandler {
	return &PaymentPlanHandler{cfg: cfg, store: store}
}

// PaymentPlanRequest criação e atualização completa
type PaymentPlanRequest struct {
	Name        string      `json:"name" binding:"required" example:"Banda do evento"`
	Supplier    string      `json:"supplier" example:"Som & Luz Ltda"`
	Event       string      `json:"event" example:"Festa de fim de ano"`
	Value       json.Number `json:"value" binding:"required" swaggertype:"string" example:"2500.00"`
	DueDate     string      `json:"due_date" binding:"required" example:"2025-12-10"`
	Status      string      `json:"status" example:"PENDING"`
	Responsible string      `json:"responsible" example:"Carla"`
	ProofURL    *string     `json:"proof_url" example:"https://drive.example.com/recibo.pdf"`
}

// PlanStatusRequest alteração apenas da situação
type PlanStatusRequest struct {
	Status string `json:"status" binding:"required" example:"PAID"`
}

// planFields valida a requisição e devolve os campos a gravar. current é o
// comprovante atual do plano, nil na criação.
func (h *PaymentPlanHandler) planFields(req PaymentPlanRequest, current *string) (*models.PaymentPlan, error) {
	name := validation.SanitizeText(req.Name, 0)
	if name == "" || len([]rune(name)) > validation.MaxNameLength {
		return nil, fmt.Errorf("Nome é obrigatório e deve ter no máximo %d caracteres", validation.MaxNameLength)
	}
	value, err := validation.ParseAmount(req.Value.String())
	if err != nil {
		return nil, err
	}
	due, err := validation.ParseDate(req.DueDate)
	if err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = models.PlanStatusPending
	}
	if !models.IsValidPlanStatus(status) {
		return nil, errors.New("Status inválido, use PENDING, PAID ou OVERDUE")
	}

	plan := &models.PaymentPlan{
		Name:        name,
		Supplier:    validation.SanitizeText(req.Supplier, validation.MaxNameLength),
		Event:       validation.SanitizeText(req.Event, validation.MaxNameLength),
		Value:       value,
		DueDate:     due,
		Status:      status,
		Responsible: validation.SanitizeText(req.Responsible, validation.MaxResponsibleLength),
	}
	if req.ProofURL != nil && strings.TrimSpace(*req.ProofURL) != "" {
		proof := strings.TrimSpace(*req.ProofURL)
		switch {
		case current != nil && proof == *current:
			// mantém o comprovante já anexado
		case h.store != nil && h.store.Owns(proof):
			// arquivos do armazenamento só entram pelo envio de comprovante
			return nil, errors.New("Use o envio de comprovante para anexar arquivos")
		case !validProofURL(proof):
			return nil, errors.New("URL do comprovante inválida, use http ou https")
		}
		plan.ProofURL = &proof
	}
	return plan, nil
}

func validProofURL(raw string) bool {
	if len(raw) > 500 {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ownedPlan busca o plano do usuário atual; planos de terceiros respondem 404
func ownedPlan(c *gin.Context, id uint) (*models.PaymentPlan, error) {
	var plan models.PaymentPlan
	err := database.DB.Where("id = ? AND created_by_id = ?", id, middleware.GetCurrentUserID(c)).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errPlanNotFound
	}
	return &plan, err
}

func (h *PaymentPlanHandler) loadPlan(c *gin.Context, prefix string) (*models.PaymentPlan, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	plan, err := ownedPlan(c, id)
	if errors.Is(err, errPlanNotFound) {
		NotFound(c, err.Error())
		return nil, false
	}
	if err != nil {
		ServerError(c, prefix, err, "Erro ao buscar plano de pagamento")
		return nil, false
	}
	return plan, true
}

// copyProof copia o valor; o gorm pode escrever no ponteiro do modelo
func copyProof(proof *string) *string {
	if proof == nil {
		return nil
	}
	v := *proof
	return &v
}

// discardProof remove o arquivo antigo; falha só vai para o log
func (h *PaymentPlanHandler) discardProof(proof *string) {
	if proof == nil || h.store == nil {
		return
	}
	if err := h.store.Delete(*proof); err != nil {
		log.WithError(err).WithField("proof_url", *proof).Warn("falha ao remover comprovante")
	}
}

// Create cria um item de plano de pagamento
// @Summary Criar plano de pagamento
// @Tags Planos de pagamento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentPlanRequest true "Plano"
// @Success 200 {object} Response{data=models.PaymentPlan} "Plano criado"
// @Failure 400 {object} Response "Dados inválidos"
// @Router /api/v1/payment-plans [post]
func (h *PaymentPlanHandler) Create(c *gin.Context) {
	var req PaymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Nome, valor e vencimento são obrigatórios")
		return
	}
	plan, err := h.planFields(req, nil)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	plan.CreatedByID = middleware.GetCurrentUserID(c)

	if err := database.DB.WithContext(c.Request.Context()).Create(plan).Error; err != nil {
		ServerError(c, "plan-create", err, "Erro ao criar plano de pagamento")
		return
	}
	SuccessWithMessage(c, "Plano de pagamento criado", plan)
}

// List lista os planos do usuário
// @Summary Listar planos de pagamento
// @Description Apenas os planos do próprio usuário, por vencimento
// @Tags Planos de pagamento
// @Produce json
// @Security BearerAuth
// @Param status query string false "PENDING, PAID ou OVERDUE"
// @Success 200 {object} Response{data=[]models.PaymentPlan}
// @Router /api/v1/payment-plans [get]
func (h *PaymentPlanHandler) List(c *gin.Context) {
	query := database.DB.WithContext(c.Request.Context()).
		Where("created_by_id = ?", middleware.GetCurrentUserID(c))
	if status := c.Query("status"); status != "" {
		if !models.IsValidPlanStatus(status) {
			BadRequest(c, "Status inválido, use PENDING, PAID ou OVERDUE")
			return
		}
		query = query.Where("status = ?", status)
	}

	plans := []models.PaymentPlan{}
	if err := query.Order("due_date ASC").Find(&plans).Error; err != nil {
		ServerError(c, "plan-list", err, "Erro ao listar planos de pagamento")
		return
	}
	Success(c, plans)
}

// Get detalhe de um plano
// @Summary Detalhe do plano de pagamento
// @Tags Planos de pagamento
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do plano"
// @Success 200 {object} Response{data=models.PaymentPlan}
// @Failure 404 {object} Response "Plano não encontrado"
// @Router /api/v1/payment-plans/{id} [get]
func (h *PaymentPlanHandler) Get(c *gin.Context) {
	plan, ok := h.loadPlan(c, "plan-get")
	if !ok {
		return
	}
	Success(c, plan)
}

// Update substitui todos os campos do plano
// @Summary Atualizar plano de pagamento
// @Tags Planos de pagamento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do plano"
// @Param request body PaymentPlanRequest true "Plano"
// @Success 200 {object} Response{data=models.PaymentPlan} "Plano atualizado"
// @Failure 400 {object} Response "Dados inválidos"
// @Failure 404 {object} Response "Plano não encontrado"
// @Router /api/v1/payment-plans/{id} [put]
func (h *PaymentPlanHandler) Update(c *gin.Context) {
	plan, ok := h.loadPlan(c, "plan-update")
	if !ok {
		return
	}
	var req PaymentPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Nome, valor e vencimento são obrigatórios")
		return
	}
	fields, err := h.planFields(req, plan.ProofURL)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	previous := copyProof(plan.ProofURL)
	err = database.DB.WithContext(c.Request.Context()).Model(plan).Updates(map[string]interface{}{
		"name":        fields.Name,
		"supplier":    fields.Supplier,
		"event":       fields.Event,
		"value":       fields.Value,
		"due_date":    fields.DueDate,
		"status":      fields.Status,
		"responsible": fields.Responsible,
		"proof_url":   fields.ProofURL,
	}).Error
	if err != nil {
		ServerError(c, "plan-update", err, "Erro ao atualizar plano de pagamento")
		return
	}
	if previous != nil && (fields.ProofURL == nil || *fields.ProofURL != *previous) {
		h.discardProof(previous)
	}

	plan.Name = fields.Name
	plan.Supplier = fields.Supplier
	plan.Event = fields.Event
	plan.Value = fields.Value
	plan.DueDate = fields.DueDate
	plan.Status = fields.Status
	plan.Responsible = fields.Responsible
	plan.ProofURL = fields.ProofURL
	SuccessWithMessage(c, "Plano de pagamento atualizado", plan)
}

// UpdateStatus altera apenas a situação
// @Summary Alterar situação do plano
// @Tags Planos de pagamento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do plano"
// @Param request body PlanStatusRequest true "Situação"
// @Success 200 {object} Response{data=models.PaymentPlan} "Situação atualizada"
// @Failure 400 {object} Response "Status inválido"
// @Failure 404 {object} Response "Plano não encontrado"
// @Router /api/v1/payment-plans/{id}/status [patch]
func (h *PaymentPlanHandler) UpdateStatus(c *gin.Context) {
	plan, ok := h.loadPlan(c, "plan-status")
	if !ok {
		return
	}
	var req PlanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.IsValidPlanStatus(req.Status) {
		BadRequest(c, "Status inválido, use PENDING, PAID ou OVERDUE")
		return
	}

	if err := database.DB.WithContext(c.Request.Context()).Model(plan).Update("status", req.Status).Error; err != nil {
		ServerError(c, "plan-status", err, "Erro ao atualizar situação")
		return
	}
	plan.Status = req.Status
	SuccessWithMessage(c, "Situação atualizada", plan)
}

// Delete exclui um plano e o comprovante armazenado
// @Summary Excluir plano de pagamento
// @Tags Planos de pagamento
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do plano"
// @Success 200 {object} Response "Plano excluído"
// @Failure 404 {object} Response "Plano não encontrado"
// @Router /api/v1/payment-plans/{id} [delete]
func (h *PaymentPlanHandler) Delete(c *gin.Context) {
	plan, ok := h.loadPlan(c, "plan-delete")
	if !ok {
		return
	}
	previous := copyProof(plan.ProofURL)
	if err := database.DB.WithContext(c.Request.Context()).Delete(plan).Error; err != nil {
		ServerError(c, "plan-delete", err, "Erro ao excluir plano de pagamento")
		return
	}
	h.discardProof(previous)
	SuccessWithMessage(c, "Plano de pagamento excluído", nil)
}

// UploadProof anexa um comprovante de pagamento
// @Summary Enviar comprovante
// @Description Aceita pdf, png, jpg, jpeg ou webp até o limite configurado
// @Tags Planos de pagamento
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do plano"
// @Param file formData file true "Comprovante"
// @Success 200 {object} Response{data=models.PaymentPlan} "Comprovante anexado"
// @Failure 400 {object} Response "Arquivo inválido"
// @Failure 404 {object} Response "Plano não encontrado"
// @Router /api/v1/payment-plans/{id}/proof [post]
func (h *PaymentPlanHandler) UploadProof(c *gin.Context) {
	plan, ok := h.loadPlan(c, "plan-proof")
	if !ok {
		return
	}
	if h.store == nil {
		InternalError(c, "Armazenamento de comprovantes indisponível")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "Envie o comprovante no campo file")
		return
	}
	maxBytes := int64(h.cfg.Storage.MaxUploadMB) << 20
	if header.Size > maxBytes {
		BadRequest(c, fmt.Sprintf("Arquivo muito grande (máximo %d MB)", h.cfg.Storage.MaxUploadMB))
		return
	}

	f, err := header.Open()
	if err != nil {
		ServerError(c, "plan-proof", err, "Erro ao ler arquivo")
		return
	}
	defer f.Close()

	proofURL, err := h.store.Save(header.Filename, f)
	if errors.Is(err, service.ErrUnsupportedProof) {
		BadRequest(c, err.Error())
		return
	}
	if err != nil {
		ServerError(c, "plan-proof", err, "Erro ao salvar comprovante")
		return
	}

	previous := copyProof(plan.ProofURL)
	if err := database.DB.WithContext(c.Request.Context()).Model(plan).Update("proof_url", proofURL).Error; err != nil {
		h.discardProof(&proofURL)
		ServerError(c, "plan-proof", err, "Erro ao salvar comprovante")
		return
	}
	h.discardProof(previous)
	plan.ProofURL = &proofURL
	SuccessWithMessage(c, "Comprovante anexado", plan)
}

// DeleteProof remove o comprovante do plano
// @Summary Remover comprovante
// @Tags Planos de pagamento
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do plano"
// @Success 200 {object} Response{data=models.PaymentPlan} "Comprovante removido"
// @Failure 404 {object} Response "Plano não encontrado"
// @Router /api/v1/payment-plans/{id}/proof [delete]
func (h *PaymentPlanHandler) DeleteProof(c *gin.Context) {
	plan, ok := h.loadPlan(c, "plan-proof")
	if !ok {
		return
	}
	if plan.ProofURL == nil {
		Success(c, plan)
		return
	}

	previous := copyProof(plan.ProofURL)
	if err := database.DB.WithContext(c.Request.Context()).Model(plan).Update("proof_url", nil).Error; err != nil {
		ServerError(c, "plan-proof", err, "Erro ao remover comprovante")
		return
	}
	h.discardProof(previous)
	plan.ProofURL = nil
	SuccessWithMessage(c, "Comprovante removido", plan)
}
