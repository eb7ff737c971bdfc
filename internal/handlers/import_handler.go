package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"catalog-service/internal/config"
	"catalog-service/internal/importer"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

type ImportHandler struct {
	svc  *services.ImportService
	repo *repository.CatalogRepository
	cfg  *config.Config
	log  *logrus.Logger
}

func NewImportHandler(svc *services.ImportService, repo *repository.CatalogRepository, cfg *config.Config, log *logrus.Logger) *ImportHandler {
	return &ImportHandler{svc: svc, repo: repo, cfg: cfg, log: log}
}

// GetImportTemplate returns the import template definition as JSON, or a
// downloadable CSV/XLSX file with the Vietnamese headers.
// GET /api/v1/products/import/template?format=json|csv|xlsx
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := models.ProductImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// generateCSVTemplate generates and downloads a CSV template (headers only)
func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Label
	}
	writer.Write(headers)
}

// generateXLSXTemplate generates and downloads an Excel template
func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Products"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Label
		if col.Required {
			headerText = col.Label + " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	// Instructions sheet with column reference
	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Hướng dẫn nhập sản phẩm")
	f.SetCellValue("Instructions", "A3", "Các cột đánh dấu * là bắt buộc. Thứ tự cột không quan trọng,")
	f.SetCellValue("Instructions", "A4", "hệ thống nhận diện tiêu đề tiếng Việt lẫn tiếng Anh, có dấu hoặc không dấu.")
	f.SetCellValue("Instructions", "A5", "Thương hiệu và Danh mục chưa tồn tại sẽ được tạo tự động khi ghi.")

	f.SetCellValue("Instructions", "A7", "Cột")
	f.SetCellValue("Instructions", "B7", "Khóa")
	f.SetCellValue("Instructions", "C7", "Bắt buộc")
	f.SetCellValue("Instructions", "D7", "Kiểu")
	f.SetCellValue("Instructions", "E7", "Ví dụ")

	for i, col := range template.Columns {
		row := i + 8
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Label)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), string(col.Key))
		required := "Không"
		if col.Required {
			required = "Có"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 25)
	f.SetColWidth("Instructions", "B", "B", 20)
	f.SetColWidth("Instructions", "C", "C", 12)
	f.SetColWidth("Instructions", "D", "D", 12)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIdx)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=products_import_template.xlsx")

	f.Write(c.Writer)
}

// PreviewImport parses an uploaded spreadsheet into staged rows.
// POST /api/v1/products/import/preview (multipart, field "file")
//
// A file without data rows is a valid empty preview, not an error.
func (h *ImportHandler) PreviewImport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Thiếu file",
				Field:   "file",
			},
		})
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxImportFileSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_TOO_LARGE",
				Message: fmt.Sprintf("File exceeds the %d byte limit", h.cfg.MaxImportFileSize),
				Field:   "file",
			},
		})
		return
	}

	records, err := h.parseUpload(file, header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PARSE_ERROR",
				Message: err.Error(),
				Field:   "file",
			},
		})
		return
	}

	resp := models.PreviewResponse{
		Rows:    []models.ImportRow{},
		Labels:  models.HeaderLabels,
		Columns: models.DefaultColumnKeys,
	}
	for _, k := range models.DefaultColumnKeys {
		resp.ColumnsVN = append(resp.ColumnsVN, models.HeaderLabels[k])
	}

	if len(records) < 2 {
		c.JSON(http.StatusOK, resp)
		return
	}

	dataRows := records[1:]
	if len(dataRows) > h.cfg.MaxImportRows {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "TOO_MANY_ROWS",
				Message: fmt.Sprintf("File has %d rows, the limit is %d", len(dataRows), h.cfg.MaxImportRows),
				Field:   "file",
			},
		})
		return
	}

	mapping := importer.BuildHeaderMap(records[0])
	now := time.Now().UTC().Format(time.RFC3339)
	for _, record := range dataRows {
		row := importer.ParseRow(record, mapping)
		if row.PublishedAt == nil {
			published := now
			row.PublishedAt = &published
		}
		importer.FillSeoIfEmpty(&row)
		resp.Rows = append(resp.Rows, row)
	}

	h.flagNewReferences(c, resp.Rows)

	h.log.WithFields(logrus.Fields{
		"file": header.Filename,
		"rows": len(resp.Rows),
	}).Info("Import preview parsed")
	c.JSON(http.StatusOK, resp)
}

// parseUpload reads the upload into a header row plus data rows
func (h *ImportHandler) parseUpload(file io.Reader, filename string) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		records, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV file: %w", err)
		}
		return records, nil
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return rows, nil
}

// flagNewReferences marks rows whose brand or category does not exist yet
func (h *ImportHandler) flagNewReferences(c *gin.Context, rows []models.ImportRow) {
	ctx := c.Request.Context()

	newBrands := make(map[string]bool)
	newCategories := make(map[string]bool)

	for i := range rows {
		if b := strings.TrimSpace(strVal(rows[i].BrandName)); b != "" {
			key := strings.ToLower(b)
			if _, seen := newBrands[key]; !seen {
				id, err := h.repo.FindBrandIDByName(ctx, b)
				newBrands[key] = err == nil && id == nil
			}
			rows[i].NewBrand = newBrands[key]
		}
		if cat := strings.TrimSpace(strVal(rows[i].CategoryName)); cat != "" {
			key := strings.ToLower(cat)
			if _, seen := newCategories[key]; !seen {
				id, err := h.repo.FindCategoryIDByName(ctx, cat)
				newCategories[key] = err == nil && id == nil
			}
			rows[i].NewCategory = newCategories[key]
		}
	}
}

// CommitImport applies staged rows to the catalog.
// POST /api/v1/products/import/commit
func (h *ImportHandler) CommitImport(c *gin.Context) {
	var req models.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Payload không hợp lệ",
			},
		})
		return
	}

	for i, row := range req.Rows {
		if len(row.Errors) > 0 {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "ROWS_INVALID",
					Message: fmt.Sprintf("Dòng %d còn lỗi: %s", i+1, strings.Join(row.Errors, "; ")),
				},
			})
			return
		}
	}

	result, err := h.svc.Commit(c.Request.Context(), req)
	if err != nil {
		h.log.WithError(err).Error("Import commit aborted")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "COMMIT_ABORTED",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
