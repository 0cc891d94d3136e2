package api

import (
	"strconv"

	"fincontrol/config"
	"fincontrol/database"
	"fincontrol/middleware"
	"fincontrol/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	defaultChartDays = 90
	maxChartDays     = 365
)

// DashboardHandler indicadores do painel
type DashboardHandler struct {
	cfg *config.Config
}

// NewDashboardHandler cria o handler do painel
func NewDashboardHandler(cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{cfg: cfg}
}

// SummaryResponse cartões do painel
type SummaryResponse struct {
	Balance      decimal.Decimal `json:"balance" swaggertype:"string"`
	MonthIncome  decimal.Decimal `json:"month_income" swaggertype:"string"`
	MonthExpense decimal.Decimal `json:"month_expense" swaggertype:"string"`
	PendingCount int64           `json:"pending_count"`
}

// Summary saldo, totais do mês e pendências
// @Summary Resumo do painel
// @Description Saldo aprovado da organização, entradas e saídas aprovadas do mês e pendências visíveis ao usuário
// @Tags Painel
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SummaryResponse}
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	ledger := service.NewLedger(database.DB, h.cfg.Finance.BalanceScope)

	balance, err := ledger.Balance(ctx, nil)
	if err != nil {
		ServerError(c, "dash-summary", err, "Erro ao carregar o resumo")
		return
	}
	month, err := ledger.MonthTotals(ctx)
	if err != nil {
		ServerError(c, "dash-summary", err, "Erro ao carregar o resumo")
		return
	}
	pending, err := ledger.PendingCount(ctx, middleware.GetCurrentUser(c))
	if err != nil {
		ServerError(c, "dash-summary", err, "Erro ao carregar o resumo")
		return
	}

	Success(c, SummaryResponse{
		Balance:      balance,
		MonthIncome:  month.Income,
		MonthExpense: month.Expense,
		PendingCount: pending,
	})
}

// Chart série diária de movimento e saldo
// @Summary Gráfico de fluxo
// @Description Dias com movimento aprovado na janela, com o saldo acumulado ao fim de cada dia
// @Tags Painel
// @Produce json
// @Security BearerAuth
// @Param days query int false "Tamanho da janela em dias (1 a 365)" default(90)
// @Success 200 {object} Response{data=[]service.ChartPoint}
// @Failure 400 {object} Response "Janela inválida"
// @Router /api/v1/dashboard/chart [get]
func (h *DashboardHandler) Chart(c *gin.Context) {
	days := defaultChartDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxChartDays {
			BadRequest(c, "days deve estar entre 1 e 365")
			return
		}
		days = n
	}

	points, err := service.NewLedger(database.DB, h.cfg.Finance.BalanceScope).Chart(c.Request.Context(), days)
	if err != nil {
		ServerError(c, "dash-chart", err, "Erro ao carregar o gráfico")
		return
	}
	Success(c, points)
}
