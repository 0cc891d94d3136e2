package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"fincontrol/models"
	"fincontrol/validation"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportTimeLayout = "2006-01-02 15:04:05"

var exportHeaders = []string{"ID", "Data", "Tipo", "Status", "Valor", "Categoria", "Descrição", "Criado por"}

// ExportHandler exportação de transações
type ExportHandler struct{}

// NewExportHandler cria o handler de exportação
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// exportItems lê o intervalo obrigatório e busca as transações
func exportItems(c *gin.Context) ([]TransactionItem, bool) {
	startStr, endStr := c.Query("start_time"), c.Query("end_time")
	if startStr == "" || endStr == "" {
		BadRequest(c, "Informe a data inicial e a data final")
		return nil, false
	}
	from, err := validation.ParseDate(startStr)
	if err != nil {
		BadRequest(c, err.Error())
		return nil, false
	}
	to, err := validation.ParseDate(endStr)
	if err != nil {
		BadRequest(c, err.Error())
		return nil, false
	}
	status := c.Query("status")
	if status != "" && !models.IsValidTransactionStatus(status) {
		BadRequest(c, "Status inválido")
		return nil, false
	}

	// parâmetros validados antes de montar a consulta
	query := transactionItems().
		Where("transactions.created_at >= ? AND transactions.created_at < ?", from, to.AddDate(0, 0, 1))
	if status != "" {
		query = query.Where("transactions.status = ?", status)
	}

	items := []TransactionItem{}
	if err := query.Select(transactionItemColumns).Order("transactions.created_at DESC").Scan(&items).Error; err != nil {
		ServerError(c, "export", err, "Erro ao consultar transações")
		return nil, false
	}
	return items, true
}

func exportRow(item TransactionItem) []string {
	return []string{
		strconv.FormatUint(uint64(item.ID), 10),
		item.CreatedAt.In(time.Local).Format(exportTimeLayout),
		item.Type,
		item.Status,
		item.Amount.StringFixed(2),
		item.CategoryName,
		item.Description,
		item.CreatedByName,
	}
}

// writeTransactionsCSV grava o CSV com BOM para abrir acentuado no Excel
func writeTransactionsCSV(w io.Writer, items []TransactionItem) error {
	if _, err := io.WriteString(w, "\xEF\xBB\xBF"); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write(exportRow(item)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// approvedBalance saldo aprovado das linhas exportadas
func approvedBalance(items []TransactionItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Status != models.StatusApproved {
			continue
		}
		if item.Type == models.TransactionIncome {
			total = total.Add(item.Amount)
		} else {
			total = total.Sub(item.Amount)
		}
	}
	return total
}

// ExportCSV exporta transações em CSV
// @Summary Exportar transações (CSV)
// @Description Transações criadas no intervalo, mais recentes primeiro
// @Tags Exportação
// @Produce text/csv
// @Security BearerAuth
// @Param start_time query string true "Data inicial (2025-01-01)"
// @Param end_time query string true "Data final (2025-12-31)"
// @Param status query string false "PENDING, APPROVED ou REJECTED"
// @Success 200 {file} file "Arquivo CSV"
// @Failure 400 {object} Response "Intervalo inválido"
// @Router /api/v1/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	items, ok := exportItems(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	if err := writeTransactionsCSV(buf, items); err != nil {
		ServerError(c, "export-csv", err, "Erro ao gerar CSV")
		return
	}

	filename := fmt.Sprintf("transacoes_%s_%s.csv", c.Query("start_time"), c.Query("end_time"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// buildTransactionsWorkbook monta a planilha com cabeçalho, linhas e total
func buildTransactionsWorkbook(items []TransactionItem) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Transações"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"1F6F43"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})

	widths := map[string]float64{"A": 8, "B": 20, "C": 10, "D": 12, "E": 14, "F": 20, "G": 40, "H": 24}
	for col, w := range widths {
		_ = f.SetColWidth(sheet, col, col, w)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}
	_ = f.SetCellStyle(sheet, "A1", "H1", headerStyle)

	for i, item := range items {
		row := i + 2
		amount, _ := item.Amount.Float64()
		values := []interface{}{
			item.ID,
			item.CreatedAt.In(time.Local).Format(exportTimeLayout),
			item.Type,
			item.Status,
			amount,
			item.CategoryName,
			item.Description,
			item.CreatedByName,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), dataStyle)
	}

	totalRow := len(items) + 2
	balance, _ := approvedBalance(items).Float64()
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Saldo aprovado")
	_ = f.MergeCell(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("D%d", totalRow))
	_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), balance)
	_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("%d registros", len(items)))
	_ = f.MergeCell(sheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("H%d", totalRow))
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("H%d", totalRow), totalStyle)

	return f, nil
}

// ExportExcel exporta transações em planilha
// @Summary Exportar transações (Excel)
// @Description Somente administradores. Inclui linha de saldo aprovado das transações exportadas.
// @Tags Exportação
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_time query string true "Data inicial (2025-01-01)"
// @Param end_time query string true "Data final (2025-12-31)"
// @Param status query string false "PENDING, APPROVED ou REJECTED"
// @Success 200 {file} file "Arquivo xlsx"
// @Failure 400 {object} Response "Intervalo inválido"
// @Failure 403 {object} Response "Acesso restrito"
// @Router /api/v1/admin/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	items, ok := exportItems(c)
	if !ok {
		return
	}

	f, err := buildTransactionsWorkbook(items)
	if err != nil {
		ServerError(c, "export-excel", err, "Erro ao gerar planilha")
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		ServerError(c, "export-excel", err, "Erro ao gerar planilha")
		return
	}

	filename := fmt.Sprintf("transacoes_%s_%s.xlsx", c.Query("start_time"), c.Query("end_time"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
