package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"fincontrol/config"
	"fincontrol/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	notified chan string
}

func (n *fakeNotifier) Enabled() bool { return true }

func (n *fakeNotifier) NotifyDecision(to *models.User, tx *models.Transaction) error {
	n.notified <- fmt.Sprintf("%s:%s", to.Email, tx.Status)
	return nil
}

func transactionRouter(u *models.User, cfg *config.Config, notifier DecisionNotifier) *gin.Engine {
	h := NewTransactionHandler(cfg, notifier)
	r := newTestRouter(u)
	r.POST("/transactions", h.Create)
	r.GET("/transactions", h.List)
	r.GET("/transactions/pending-count", h.PendingCount)
	r.GET("/transactions/:id", h.Get)
	r.GET("/admin/transactions/pending", h.Pending)
	r.POST("/admin/transactions/:id/approve", h.Approve)
	r.POST("/admin/transactions/:id/reject", h.Reject)
	return r
}

func TestTransactionHandler_CreateStartsPending(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	cat := seedCategory(t, db, ana, "Eventos")
	r := transactionRouter(ana, testConfig(), nil)

	body := fmt.Sprintf(`{"type":"INCOME","amount":"1500.50","description":"<b>Ingressos</b>","category_id":%d}`, cat.ID)
	w := doJSON(r, "POST", "/transactions", body)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, models.StatusPending, data["status"])
	assert.Equal(t, "1500.5", data["amount"])
	assert.Equal(t, "Ingressos", data["description"])
}

func TestTransactionHandler_CreateExpenseChecksBalance(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	cat := seedCategory(t, db, ana, "Eventos")
	r := transactionRouter(ana, testConfig(), nil)

	body := fmt.Sprintf(`{"type":"EXPENSE","amount":50,"category_id":%d}`, cat.ID)
	w := doJSON(r, "POST", "/transactions", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Saldo insuficiente. Saldo disponível: R$ 0,00", decodeResponse(t, w)["message"])

	seedTx(t, db, ana, cat, models.TransactionIncome, "1234.56", models.StatusApproved)
	// pendentes não contam para o saldo
	seedTx(t, db, ana, cat, models.TransactionIncome, "5000", models.StatusPending)

	w = doJSON(r, "POST", "/transactions", fmt.Sprintf(`{"type":"EXPENSE","amount":2000,"category_id":%d}`, cat.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Saldo insuficiente. Saldo disponível: R$ 1.234,56", decodeResponse(t, w)["message"])

	w = doJSON(r, "POST", "/transactions", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusPending, decodeResponse(t, w)["data"].(map[string]interface{})["status"])
}

func TestTransactionHandler_CreateValidation(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	bia := seedUser(t, db, "bia@empresa.com", models.RoleUser)
	cat := seedCategory(t, db, ana, "Eventos")
	other := seedCategory(t, db, bia, "Bar")
	r := transactionRouter(ana, testConfig(), nil)

	cases := map[string]string{
		"notação científica":   fmt.Sprintf(`{"type":"INCOME","amount":1e3,"category_id":%d}`, cat.ID),
		"valor negativo":       fmt.Sprintf(`{"type":"INCOME","amount":-5,"category_id":%d}`, cat.ID),
		"três casas decimais":  fmt.Sprintf(`{"type":"INCOME","amount":"10.123","category_id":%d}`, cat.ID),
		"acima do máximo":      fmt.Sprintf(`{"type":"INCOME","amount":"1000000000","category_id":%d}`, cat.ID),
		"tipo inválido":        fmt.Sprintf(`{"type":"TRANSFER","amount":10,"category_id":%d}`, cat.ID),
		"categoria inexistente": `{"type":"INCOME","amount":10,"category_id":999}`,
		"categoria de outro":   fmt.Sprintf(`{"type":"INCOME","amount":10,"category_id":%d}`, other.ID),
		"sem valor":            fmt.Sprintf(`{"type":"INCOME","category_id":%d}`, cat.ID),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := doJSON(r, "POST", "/transactions", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestTransactionHandler_ListFiltersAndPages(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	bia := seedUser(t, db, "bia@empresa.com", models.RoleUser)
	eventos := seedCategory(t, db, ana, "Eventos")
	bar := seedCategory(t, db, bia, "Bar")
	for i := 0; i < 3; i++ {
		seedTx(t, db, ana, eventos, models.TransactionIncome, "100", models.StatusApproved)
	}
	seedTx(t, db, bia, bar, models.TransactionExpense, "20", models.StatusPending)
	r := transactionRouter(ana, testConfig(), nil)

	w := doJSON(r, "GET", "/transactions?page=1&page_size=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(4), page["total"])
	assert.Len(t, page["list"], 2)

	w = doJSON(r, "GET", "/transactions?type=EXPENSE", "")
	require.Equal(t, http.StatusOK, w.Code)
	page = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), page["total"])
	item := page["list"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Bar", item["category_name"])
	assert.Equal(t, "bia@empresa.com", item["created_by_email"])

	w = doJSON(r, "GET", fmt.Sprintf("/transactions?category_id=%d&status=APPROVED", eventos.ID), "")
	page = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), page["total"])

	today := time.Now().Format("2006-01-02")
	w = doJSON(r, "GET", "/transactions?start_time="+today+"&end_time="+today, "")
	page = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(4), page["total"])

	w = doJSON(r, "GET", "/transactions?start_time=2020-01-01&end_time=2020-01-31", "")
	page = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(0), page["total"])

	assert.Equal(t, http.StatusBadRequest, doJSON(r, "GET", "/transactions?status=DONE", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, "GET", "/transactions?start_time=01/02/2025", "").Code)
}

func TestTransactionHandler_Get(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	cat := seedCategory(t, db, ana, "Eventos")
	tx := seedTx(t, db, ana, cat, models.TransactionIncome, "42.10", models.StatusPending)
	r := transactionRouter(ana, testConfig(), nil)

	w := doJSON(r, "GET", fmt.Sprintf("/transactions/%d", tx.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Eventos", data["category_name"])
	assert.Equal(t, "42.1", data["amount"])

	assert.Equal(t, http.StatusNotFound, doJSON(r, "GET", "/transactions/999", "").Code)
}

func TestTransactionHandler_ApproveAndReject(t *testing.T) {
	db := setupSQLite(t)
	admin := seedUser(t, db, "chefe@empresa.com", models.RoleAdmin)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	cat := seedCategory(t, db, ana, "Eventos")
	first := seedTx(t, db, ana, cat, models.TransactionIncome, "100", models.StatusPending)
	second := seedTx(t, db, ana, cat, models.TransactionExpense, "30", models.StatusPending)

	notifier := &fakeNotifier{notified: make(chan string, 2)}
	r := transactionRouter(admin, testConfig(), notifier)

	w := doJSON(r, "GET", "/admin/transactions/pending", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 2)

	w = doJSON(r, "POST", fmt.Sprintf("/admin/transactions/%d/approve", first.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, models.StatusApproved, data["status"])
	assert.NotNil(t, data["reviewed_at"])

	select {
	case got := <-notifier.notified:
		assert.Equal(t, "ana@empresa.com:APPROVED", got)
	case <-time.After(2 * time.Second):
		t.Fatal("aviso de aprovação não enviado")
	}

	// decisões são terminais
	w = doJSON(r, "POST", fmt.Sprintf("/admin/transactions/%d/reject", first.ID), "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Apenas transações pendentes podem ser aprovadas ou rejeitadas", decodeResponse(t, w)["message"])

	w = doJSON(r, "POST", fmt.Sprintf("/admin/transactions/%d/reject", second.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusRejected, decodeResponse(t, w)["data"].(map[string]interface{})["status"])
	<-notifier.notified

	assert.Equal(t, http.StatusNotFound, doJSON(r, "POST", "/admin/transactions/999/approve", "").Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, "POST", "/admin/transactions/x/approve", "").Code)

	var stored models.Transaction
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, models.StatusApproved, stored.Status)
}

func TestTransactionHandler_PendingCount(t *testing.T) {
	db := setupSQLite(t)
	admin := seedUser(t, db, "chefe@empresa.com", models.RoleAdmin)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	bia := seedUser(t, db, "bia@empresa.com", models.RoleUser)
	cat := seedCategory(t, db, ana, "Eventos")
	seedTx(t, db, ana, cat, models.TransactionIncome, "10", models.StatusPending)
	seedTx(t, db, bia, cat, models.TransactionIncome, "10", models.StatusPending)
	seedTx(t, db, bia, cat, models.TransactionIncome, "10", models.StatusApproved)

	count := func(u *models.User) float64 {
		w := doJSON(transactionRouter(u, testConfig(), nil), "GET", "/transactions/pending-count", "")
		require.Equal(t, http.StatusOK, w.Code)
		return decodeResponse(t, w)["data"].(map[string]interface{})["count"].(float64)
	}
	assert.Equal(t, float64(2), count(admin))
	assert.Equal(t, float64(1), count(ana))
}
