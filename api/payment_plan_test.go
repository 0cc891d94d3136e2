package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fincontrol/config"
	"fincontrol/models"
	"fincontrol/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planRouter(t *testing.T, u *models.User) (*gin.Engine, *service.LocalStore) {
	t.Helper()
	store, err := service.NewLocalStore(config.StorageConfig{
		UploadDir:  t.TempDir(),
		PublicPath: "/uploads/comprovantes",
	})
	require.NoError(t, err)

	h := NewPaymentPlanHandler(testConfig(), store)
	r := newTestRouter(u)
	r.POST("/payment-plans", h.Create)
	r.GET("/payment-plans", h.List)
	r.GET("/payment-plans/:id", h.Get)
	r.PUT("/payment-plans/:id", h.Update)
	r.PATCH("/payment-plans/:id/status", h.UpdateStatus)
	r.DELETE("/payment-plans/:id", h.Delete)
	r.POST("/payment-plans/:id/proof", h.UploadProof)
	r.DELETE("/payment-plans/:id/proof", h.DeleteProof)
	return r, store
}

func uploadProof(r *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	part, _ := mw.CreateFormFile("file", filename)
	_, _ = part.Write(content)
	_ = mw.Close()

	req := httptest.NewRequest("POST", path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPlan(t *testing.T, r *gin.Engine, body string) map[string]interface{} {
	t.Helper()
	w := doJSON(r, "POST", "/payment-plans", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeResponse(t, w)["data"].(map[string]interface{})
}

func TestPaymentPlanHandler_CreateAndList(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	bia := seedUser(t, db, "bia@empresa.com", models.RoleUser)
	r, _ := planRouter(t, ana)

	later := createPlan(t, r, `{"name":"Banda","supplier":"Som & Luz","value":"2500.00","due_date":"2025-12-10"}`)
	assert.Equal(t, models.PlanStatusPending, later["status"])
	createPlan(t, r, `{"name":"Buffet","value":800,"due_date":"2025-11-01","status":"PAID"}`)

	// planos de outro usuário não aparecem
	rb, _ := planRouter(t, bia)
	createPlan(t, rb, `{"name":"Decoração","value":300,"due_date":"2025-10-01"}`)

	w := doJSON(r, "GET", "/payment-plans", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "Buffet", list[0].(map[string]interface{})["name"])
	assert.Equal(t, "Banda", list[1].(map[string]interface{})["name"])

	w = doJSON(r, "GET", "/payment-plans?status=PAID", "")
	assert.Len(t, decodeResponse(t, w)["data"], 1)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, "GET", "/payment-plans?status=LATE", "").Code)
}

func TestPaymentPlanHandler_CreateValidation(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	r, _ := planRouter(t, ana)

	cases := map[string]string{
		"sem nome":        `{"name":"  ","value":10,"due_date":"2025-12-10"}`,
		"nome longo":      fmt.Sprintf(`{"name":"%s","value":10,"due_date":"2025-12-10"}`, strings.Repeat("a", 201)),
		"valor zero":      `{"name":"Banda","value":0,"due_date":"2025-12-10"}`,
		"data inválida":   `{"name":"Banda","value":10,"due_date":"10/12/2025"}`,
		"status inválido": `{"name":"Banda","value":10,"due_date":"2025-12-10","status":"LATE"}`,
		"url sem http":    `{"name":"Banda","value":10,"due_date":"2025-12-10","proof_url":"javascript:alert(1)"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, doJSON(r, "POST", "/payment-plans", body).Code)
		})
	}

	plan := createPlan(t, r, `{"name":"Banda","value":10,"due_date":"2025-12-10","proof_url":"https://drive.example.com/recibo.pdf"}`)
	assert.Equal(t, "https://drive.example.com/recibo.pdf", plan["proof_url"])
}

func TestPaymentPlanHandler_OwnerScope(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	bia := seedUser(t, db, "bia@empresa.com", models.RoleUser)
	ra, _ := planRouter(t, ana)
	rb, _ := planRouter(t, bia)

	plan := createPlan(t, ra, `{"name":"Banda","value":10,"due_date":"2025-12-10"}`)
	path := fmt.Sprintf("/payment-plans/%.0f", plan["id"].(float64))

	assert.Equal(t, http.StatusNotFound, doJSON(rb, "GET", path, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(rb, "PATCH", path+"/status", `{"status":"PAID"}`).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(rb, "DELETE", path, "").Code)
	assert.Equal(t, http.StatusOK, doJSON(ra, "GET", path, "").Code)
}

func TestPaymentPlanHandler_UpdateAndStatus(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	r, _ := planRouter(t, ana)

	plan := createPlan(t, r, `{"name":"Banda","value":10,"due_date":"2025-12-10"}`)
	path := fmt.Sprintf("/payment-plans/%.0f", plan["id"].(float64))

	w := doJSON(r, "PUT", path, `{"name":"Banda ao vivo","supplier":"Som","event":"Festa","value":"150.75","due_date":"2025-12-20","responsible":"Carla"}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Banda ao vivo", data["name"])
	assert.Equal(t, "150.75", data["value"])

	w = doJSON(r, "PATCH", path+"/status", `{"status":"OVERDUE"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PlanStatusOverdue, decodeResponse(t, w)["data"].(map[string]interface{})["status"])

	assert.Equal(t, http.StatusBadRequest, doJSON(r, "PATCH", path+"/status", `{"status":"DONE"}`).Code)

	var stored models.PaymentPlan
	require.NoError(t, db.First(&stored, uint(plan["id"].(float64))).Error)
	assert.Equal(t, "Carla", stored.Responsible)
	assert.Equal(t, models.PlanStatusOverdue, stored.Status)

	assert.Equal(t, http.StatusOK, doJSON(r, "DELETE", path, "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, "GET", path, "").Code)
}

func TestPaymentPlanHandler_Proof(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	r, store := planRouter(t, ana)

	plan := createPlan(t, r, `{"name":"Banda","value":10,"due_date":"2025-12-10"}`)
	path := fmt.Sprintf("/payment-plans/%.0f", plan["id"].(float64))

	w := uploadProof(r, path+"/proof", "recibo.exe", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = uploadProof(r, path+"/proof", "recibo.pdf", bytes.Repeat([]byte("x"), 2<<20))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = uploadProof(r, path+"/proof", "recibo.PDF", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	proofURL := decodeResponse(t, w)["data"].(map[string]interface{})["proof_url"].(string)
	assert.True(t, strings.HasPrefix(proofURL, "/uploads/comprovantes/"))
	stored := filepath.Join(store.Dir(), filepath.Base(proofURL))
	assert.FileExists(t, stored)

	// substituir remove o arquivo anterior
	w = uploadProof(r, path+"/proof", "novo.png", []byte("png"))
	require.Equal(t, http.StatusOK, w.Code)
	_, err := os.Stat(stored)
	assert.True(t, os.IsNotExist(err))
	second := decodeResponse(t, w)["data"].(map[string]interface{})["proof_url"].(string)

	w = doJSON(r, "DELETE", path+"/proof", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeResponse(t, w)["data"].(map[string]interface{})["proof_url"])
	_, err = os.Stat(filepath.Join(store.Dir(), filepath.Base(second)))
	assert.True(t, os.IsNotExist(err))
}

func TestPaymentPlanHandler_DeleteProofRemovesFile(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	r, store := planRouter(t, ana)

	plan := createPlan(t, r, `{"name":"Banda","value":10,"due_date":"2025-12-10"}`)
	path := fmt.Sprintf("/payment-plans/%.0f", plan["id"].(float64))

	w := uploadProof(r, path+"/proof", "recibo.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stored := filepath.Join(store.Dir(), filepath.Base(decodeResponse(t, w)["data"].(map[string]interface{})["proof_url"].(string)))
	require.FileExists(t, stored)

	require.Equal(t, http.StatusOK, doJSON(r, "DELETE", path+"/proof", "").Code)
	assert.NoFileExists(t, stored)

	var saved models.PaymentPlan
	require.NoError(t, db.First(&saved, uint(plan["id"].(float64))).Error)
	assert.Nil(t, saved.ProofURL)
}

func TestPaymentPlanHandler_StoredProofOfOtherUser(t *testing.T) {
	db := setupSQLite(t)
	ana := seedUser(t, db, "ana@empresa.com", models.RoleUser)
	bia := seedUser(t, db, "bia@empresa.com", models.RoleUser)
	ra, store := planRouter(t, ana)
	rb, _ := planRouter(t, bia)

	plan := createPlan(t, ra, `{"name":"Banda","value":10,"due_date":"2025-12-10"}`)
	path := fmt.Sprintf("/payment-plans/%.0f", plan["id"].(float64))
	w := uploadProof(ra, path+"/proof", "recibo.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	proofURL := decodeResponse(t, w)["data"].(map[string]interface{})["proof_url"].(string)
	stored := filepath.Join(store.Dir(), filepath.Base(proofURL))

	// bia não consegue apontar um plano para o arquivo da ana
	body := fmt.Sprintf(`{"name":"Cópia","value":10,"due_date":"2025-12-10","proof_url":%q}`, proofURL)
	assert.Equal(t, http.StatusBadRequest, doJSON(rb, "POST", "/payment-plans", body).Code)

	other := createPlan(t, rb, `{"name":"Outro","value":10,"due_date":"2025-12-10"}`)
	otherPath := fmt.Sprintf("/payment-plans/%.0f", other["id"].(float64))
	assert.Equal(t, http.StatusBadRequest, doJSON(rb, "PUT", otherPath, body).Code)
	require.Equal(t, http.StatusOK, doJSON(rb, "DELETE", otherPath, "").Code)
	assert.FileExists(t, stored)

	// a dona mantém o próprio comprovante ao editar
	keep := fmt.Sprintf(`{"name":"Banda ao vivo","value":10,"due_date":"2025-12-10","proof_url":%q}`, proofURL)
	w = doJSON(ra, "PUT", path, keep)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, proofURL, decodeResponse(t, w)["data"].(map[string]interface{})["proof_url"])
	assert.FileExists(t, stored)
}
