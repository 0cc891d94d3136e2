package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Tipos de transação
const (
	TransactionIncome  = "INCOME"
	TransactionExpense = "EXPENSE"
)

// Situação da transação. APPROVED e REJECTED são finais.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Transaction entrada ou saída de caixa sujeita a aprovação
type Transaction struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Type        string          `json:"type" gorm:"size:10;not null;index"`
	Status      string          `json:"status" gorm:"size:10;not null;default:PENDING;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Description string          `json:"description" gorm:"size:200"`
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	CreatedByID uint            `json:"created_by_id" gorm:"index;not null"`
	ReviewedAt  *time.Time      `json:"reviewed_at"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
	Category    *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedBy   *User           `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

// TableName define o nome da tabela
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate toda transação nasce pendente
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	t.Status = StatusPending
	t.ReviewedAt = nil
	return nil
}

// IsValidTransactionType verifica INCOME/EXPENSE
func IsValidTransactionType(t string) bool {
	return t == TransactionIncome || t == TransactionExpense
}

// IsValidTransactionStatus verifica se a situação existe
func IsValidTransactionStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsDecision indica se a situação pode ser o resultado de uma revisão
func IsDecision(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// IsPending indica se a transação ainda aguarda revisão
func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// SignedAmount valor com sinal: positivo para entradas, negativo para saídas
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
