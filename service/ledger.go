package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"fincontrol/config"
	"fincontrol/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInsufficientBalance = errors.New("Saldo insuficiente")
	ErrNotPending          = errors.New("Apenas transações pendentes podem ser aprovadas ou rejeitadas")
	ErrTransactionNotFound = errors.New("Transação não encontrada")
	ErrCategoryNotFound    = errors.New("Categoria não encontrada")
	ErrInvalidDecision     = errors.New("Status inválido, use APPROVED ou REJECTED")
	ErrInvalidType         = errors.New("Tipo inválido, use INCOME ou EXPENSE")
)

// signedSumSQL soma entradas e subtrai saídas
const signedSumSQL = "COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount WHEN type = 'EXPENSE' THEN -amount ELSE 0 END), 0)"

// InsufficientBalanceError carrega o saldo disponível no momento da checagem
type InsufficientBalanceError struct {
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Saldo insuficiente. Saldo disponível: R$ %s", FormatBRL(e.Available))
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// NewTransaction dados de entrada para lançar uma transação
type NewTransaction struct {
	Type        string
	Amount      decimal.Decimal
	Description string
	CategoryID  uint
	CreatedByID uint
}

// MonthTotals entradas e saídas aprovadas no mês corrente
type MonthTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ChartPoint movimento aprovado de um dia e saldo acumulado ao fim dele
type ChartPoint struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Ledger regras de caixa: saldo aprovado, lançamento e revisão de transações
type Ledger struct {
	db    *gorm.DB
	scope string
	now   func() time.Time
}

// NewLedger cria o serviço; scope define o saldo usado na checagem de despesas
func NewLedger(db *gorm.DB, scope string) *Ledger {
	if scope != config.BalanceScopeOrganization {
		scope = config.BalanceScopeUser
	}
	return &Ledger{db: db, scope: scope, now: time.Now}
}

// Balance saldo aprovado; createdBy nil considera a organização inteira
func (l *Ledger) Balance(ctx context.Context, createdBy *uint) (decimal.Decimal, error) {
	query := l.db.WithContext(ctx).Model(&models.Transaction{}).
		Select(signedSumSQL).
		Where("status = ?", models.StatusApproved)
	if createdBy != nil {
		query = query.Where("created_by_id = ?", *createdBy)
	}

	var total decimal.Decimal
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("falha ao calcular saldo: %w", err)
	}
	return total.Round(2), nil
}

// CreateTransaction valida e grava a transação como PENDING.
// Saídas são comparadas ao saldo aprovado no momento do lançamento.
func (l *Ledger) CreateTransaction(ctx context.Context, in NewTransaction) (*models.Transaction, error) {
	if !models.IsValidTransactionType(in.Type) {
		return nil, ErrInvalidType
	}

	db := l.db.WithContext(ctx)

	var category models.Category
	err := db.Where("id = ? AND created_by_id = ?", in.CategoryID, in.CreatedByID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar categoria: %w", err)
	}

	if in.Type == models.TransactionExpense {
		var owner *uint
		if l.scope == config.BalanceScopeUser {
			owner = &in.CreatedByID
		}
		available, err := l.Balance(ctx, owner)
		if err != nil {
			return nil, err
		}
		if in.Amount.GreaterThan(available) {
			return nil, &InsufficientBalanceError{Available: available}
		}
	}

	tx := &models.Transaction{
		Type:        in.Type,
		Status:      models.StatusPending,
		Amount:      in.Amount,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		CreatedByID: in.CreatedByID,
	}
	if err := db.Create(tx).Error; err != nil {
		return nil, fmt.Errorf("falha ao criar transação: %w", err)
	}
	return tx, nil
}

// Decide aprova ou rejeita uma transação pendente. A atualização é
// condicionada a status = PENDING, então só uma decisão concorrente vence.
func (l *Ledger) Decide(ctx context.Context, id uint, status string) (*models.Transaction, error) {
	if !models.IsDecision(status) {
		return nil, ErrInvalidDecision
	}

	db := l.db.WithContext(ctx)

	var tx models.Transaction
	err := db.First(&tx, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar transação: %w", err)
	}
	if !tx.IsPending() {
		return nil, ErrNotPending
	}

	now := l.now()
	result := db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_at": now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("falha ao atualizar transação: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotPending
	}

	tx.Status = status
	tx.ReviewedAt = &now
	return &tx, nil
}

// PendingCount administradores veem todas as pendências; demais, só as suas
func (l *Ledger) PendingCount(ctx context.Context, user *models.User) (int64, error) {
	query := l.db.WithContext(ctx).Model(&models.Transaction{}).Where("status = ?", models.StatusPending)
	if !user.IsAdmin() {
		query = query.Where("created_by_id = ?", user.ID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("falha ao contar pendências: %w", err)
	}
	return count, nil
}

// MonthTotals soma entradas e saídas aprovadas lançadas no mês corrente
func (l *Ledger) MonthTotals(ctx context.Context) (MonthTotals, error) {
	start, end := monthRange(l.now())

	var row struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
	}
	err := l.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = 'INCOME' THEN amount ELSE 0 END), 0) AS income, "+
			"COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expense").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.StatusApproved, start, end).
		Scan(&row).Error
	if err != nil {
		return MonthTotals{}, fmt.Errorf("falha ao somar o mês: %w", err)
	}
	return MonthTotals{Income: row.Income.Round(2), Expense: row.Expense.Round(2)}, nil
}

// Chart série dos últimos days dias, partindo do saldo acumulado antes da janela
func (l *Ledger) Chart(ctx context.Context, days int) ([]ChartPoint, error) {
	now := l.now()
	start := now.AddDate(0, 0, -days)
	db := l.db.WithContext(ctx)

	var opening decimal.Decimal
	err := db.Model(&models.Transaction{}).
		Select(signedSumSQL).
		Where("status = ? AND created_at < ?", models.StatusApproved, start).
		Row().Scan(&opening)
	if err != nil {
		return nil, fmt.Errorf("falha ao calcular saldo inicial: %w", err)
	}

	var txs []models.Transaction
	err = db.Where("status = ? AND created_at >= ? AND created_at <= ?", models.StatusApproved, start, now).
		Order("created_at ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("falha ao buscar transações: %w", err)
	}

	return BuildChart(opening, txs, start), nil
}

// BuildChart agrupa as transações por dia (apenas dias com movimento) e
// acumula o saldo a partir de opening. Sem movimento, devolve um único ponto
// na data inicial com o saldo de abertura.
func BuildChart(opening decimal.Decimal, txs []models.Transaction, start time.Time) []ChartPoint {
	byDay := make(map[string]*ChartPoint)
	for i := range txs {
		key := txs[i].CreatedAt.In(time.Local).Format("2006-01-02")
		p, ok := byDay[key]
		if !ok {
			p = &ChartPoint{Date: key}
			byDay[key] = p
		}
		switch txs[i].Type {
		case models.TransactionIncome:
			p.Income = p.Income.Add(txs[i].Amount)
		case models.TransactionExpense:
			p.Expense = p.Expense.Add(txs[i].Amount)
		}
	}

	balance := opening
	if len(byDay) == 0 {
		return []ChartPoint{{
			Date:    start.In(time.Local).Format("2006-01-02"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
			Balance: balance.Round(2),
		}}
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]ChartPoint, 0, len(keys))
	for _, k := range keys {
		p := byDay[k]
		balance = balance.Add(p.Income).Sub(p.Expense)
		p.Balance = balance.Round(2)
		points = append(points, *p)
	}
	return points
}

func monthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// FormatBRL formata no padrão brasileiro: 1.234,56
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}
