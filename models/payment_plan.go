package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Situação de um item do plano de pagamento
const (
	PlanStatusPending = "PENDING"
	PlanStatusPaid    = "PAID"
	PlanStatusOverdue = "OVERDUE"
)

// PaymentPlan item de plano de pagamento (fornecedor, evento, vencimento)
type PaymentPlan struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:200;not null"`
	Supplier    string          `json:"supplier" gorm:"size:200"`
	Event       string          `json:"event" gorm:"size:200"`
	Value       decimal.Decimal `json:"value" gorm:"type:decimal(12,2);not null"`
	DueDate     time.Time       `json:"due_date" gorm:"not null;index"`
	Status      string          `json:"status" gorm:"size:10;not null;default:PENDING;index"`
	Responsible string          `json:"responsible" gorm:"size:100"`
	ProofURL    *string         `json:"proof_url" gorm:"size:500"`
	CreatedByID uint            `json:"created_by_id" gorm:"index;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName define o nome da tabela
func (PaymentPlan) TableName() string {
	return "payment_plans"
}

func (p *PaymentPlan) BeforeCreate(tx *gorm.DB) error {
	if p.Status == "" {
		p.Status = PlanStatusPending
	}
	return nil
}

// IsValidPlanStatus verifica PENDING/PAID/OVERDUE
func IsValidPlanStatus(s string) bool {
	switch s {
	case PlanStatusPending, PlanStatusPaid, PlanStatusOverdue:
		return true
	}
	return false
}
