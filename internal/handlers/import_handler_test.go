package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/config"
	"catalog-service/internal/models"
	"catalog-service/internal/services"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxImportFileSize: 1 << 20,
		MaxImportRows:     100,
		DefaultPageSize:   20,
		MaxPageSize:       100,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newImportTestRouter(svc *services.ImportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewImportHandler(svc, nil, testConfig(), quietLogger())
	r := gin.New()
	r.GET("/import/template", h.GetImportTemplate)
	r.POST("/import/preview", h.PreviewImport)
	r.POST("/import/commit", h.CommitImport)
	return r
}

func multipartCSV(t *testing.T, rows [][]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	cw := csv.NewWriter(part)
	require.NoError(t, cw.WriteAll(rows))
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestGetImportTemplateJSON(t *testing.T) {
	r := newImportTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/import/template", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success  bool                  `json:"success"`
		Template models.ImportTemplate `json:"template"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Template.Columns)
	assert.Equal(t, models.FieldName, body.Template.Columns[0].Key)
	assert.True(t, body.Template.Columns[0].Required)
}

func TestGetImportTemplateCSV(t *testing.T) {
	r := newImportTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/import/template?format=csv", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "products_import_template.csv")
	firstLine := strings.SplitN(w.Body.String(), "\n", 2)[0]
	assert.Contains(t, firstLine, "Tên sản phẩm")
	assert.Contains(t, firstLine, "Giá bán")
}

func TestPreviewImportParsesRows(t *testing.T) {
	r := newImportTestRouter(nil)
	body, contentType := multipartCSV(t, [][]string{
		{"Tên sản phẩm", "Giá bán", "Số lượng"},
		{"Serum Dưỡng Ẩm 30ml", "250.000 ₫", "12"},
		{"", "1000", ""},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/preview", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 2)

	first := resp.Rows[0]
	assert.Equal(t, "Serum Dưỡng Ẩm 30ml", first.Name)
	assert.Equal(t, "serum-duong-am-30ml", first.Slug)
	assert.Equal(t, 250000, first.Price)
	assert.Equal(t, 12, first.Stock)
	assert.Empty(t, first.Errors)
	require.NotNil(t, first.PublishedAt)
	require.NotNil(t, first.MetaTitle)

	second := resp.Rows[1]
	assert.Contains(t, second.Errors, "Thiếu name")

	assert.NotEmpty(t, resp.Labels)
	assert.Len(t, resp.ColumnsVN, len(resp.Columns))
}

func TestPreviewImportHeaderOnlyFile(t *testing.T) {
	r := newImportTestRouter(nil)
	body, contentType := multipartCSV(t, [][]string{
		{"Tên sản phẩm", "Giá bán"},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/preview", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Rows)
	assert.NotEmpty(t, resp.Columns)
}

func TestPreviewImportMissingFile(t *testing.T) {
	r := newImportTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/preview", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "Thiếu file", resp.Error.Message)
}

func TestCommitImportRejectsRowsWithErrors(t *testing.T) {
	r := newImportTestRouter(nil)
	payload := `{"rows":[{"name":"","__errors":["Thiếu name"]}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/commit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ROWS_INVALID", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Dòng 1")
}

func TestCommitImportInvalidPayload(t *testing.T) {
	r := newImportTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/commit", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

// stubStore satisfies services.CatalogStore for the commit happy path
type stubStore struct{}

func (stubStore) FindProductIDByName(context.Context, string) (*uuid.UUID, error) { return nil, nil }
func (stubStore) FindProductIDBySlug(context.Context, string) (*uuid.UUID, error) { return nil, nil }
func (stubStore) ProductSlugTaken(context.Context, string, *uuid.UUID) (bool, error) {
	return false, nil
}
func (stubStore) CreateProduct(_ context.Context, p *models.Product) error {
	p.ID = uuid.New()
	return nil
}
func (stubStore) UpdateProduct(context.Context, *models.Product) error              { return nil }
func (stubStore) FindBrandIDByName(context.Context, string) (*uuid.UUID, error)    { return nil, nil }
func (stubStore) FindBrandIDBySlug(context.Context, string) (*uuid.UUID, error)    { return nil, nil }
func (stubStore) BrandSlugTaken(context.Context, string) (bool, error)             { return false, nil }
func (stubStore) CreateBrand(_ context.Context, b *models.Brand) error             { b.ID = uuid.New(); return nil }
func (stubStore) FindCategoryIDByName(context.Context, string) (*uuid.UUID, error) { return nil, nil }
func (stubStore) FindCategoryIDBySlug(context.Context, string) (*uuid.UUID, error) { return nil, nil }
func (stubStore) CategorySlugTaken(context.Context, string) (bool, error)          { return false, nil }
func (stubStore) CreateCategory(_ context.Context, c *models.Category) error {
	c.ID = uuid.New()
	return nil
}

func TestCommitImportHappyPath(t *testing.T) {
	svc := services.NewImportService(stubStore{}, quietLogger())
	r := newImportTestRouter(svc)

	payload := `{"rows":[{"name":"Serum","slug":"serum","price":250000}],"updateExisting":false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import/commit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result models.CommitResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Created)
	require.Len(t, result.Results, 1)
	assert.Equal(t, models.RowActionCreated, result.Results[0].Action)
	assert.NotEmpty(t, result.Results[0].ID)
}
