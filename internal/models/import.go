package models

// FieldKey identifies a canonical import column. Uploaded spreadsheet headers
// are resolved onto these keys; the same keys label the preview table columns.
type FieldKey string

const (
	FieldName             FieldKey = "name"
	FieldSlug             FieldKey = "slug"
	FieldPrice            FieldKey = "price"
	FieldCompareAtPrice   FieldKey = "compareAtPrice"
	FieldSKU              FieldKey = "sku"
	FieldStock            FieldKey = "stock"
	FieldBrandName        FieldKey = "brandName"
	FieldCategoryName     FieldKey = "categoryName"
	FieldImageURL         FieldKey = "imageUrl"
	FieldShortDescription FieldKey = "shortDescription"
	FieldDescription      FieldKey = "description"
	FieldIngredients      FieldKey = "ingredients"
	FieldUsage            FieldKey = "usage"
	FieldVolume           FieldKey = "volume"
	FieldVolumeUnit       FieldKey = "volumeUnit"
	FieldOrigin           FieldKey = "origin"
	FieldIsFeatured       FieldKey = "isFeatured"
	FieldStatus           FieldKey = "status"
	FieldPublishedAt      FieldKey = "publishedAt"
	FieldMetaTitle        FieldKey = "metaTitle"
	FieldMetaDescription  FieldKey = "metaDescription"
)

// FieldKeys lists every canonical key in template/display order
var FieldKeys = []FieldKey{
	FieldName, FieldSlug, FieldPrice, FieldCompareAtPrice, FieldSKU, FieldStock,
	FieldBrandName, FieldCategoryName, FieldImageURL, FieldShortDescription,
	FieldDescription, FieldIngredients, FieldUsage, FieldVolume, FieldVolumeUnit,
	FieldOrigin, FieldIsFeatured, FieldStatus, FieldPublishedAt,
	FieldMetaTitle, FieldMetaDescription,
}

// HeaderLabels maps canonical keys to the Vietnamese display labels used both
// for the downloadable template headers and the preview table.
var HeaderLabels = map[FieldKey]string{
	FieldName:             "Tên sản phẩm",
	FieldSlug:             "Đường dẫn",
	FieldPrice:            "Giá bán",
	FieldCompareAtPrice:   "Giá cũ",
	FieldSKU:              "Mã sản phẩm",
	FieldStock:            "Số lượng",
	FieldBrandName:        "Thương hiệu",
	FieldCategoryName:     "Danh mục",
	FieldImageURL:         "Ảnh đại diện",
	FieldShortDescription: "Mô tả ngắn",
	FieldDescription:      "Mô tả chi tiết",
	FieldIngredients:      "Thành phần",
	FieldUsage:            "Hướng dẫn sử dụng",
	FieldVolume:           "Dung tích",
	FieldVolumeUnit:       "Đơn vị dung tích",
	FieldOrigin:           "Xuất xứ",
	FieldIsFeatured:       "Nổi bật",
	FieldStatus:           "Trạng thái",
	FieldPublishedAt:      "Ngày đăng",
	FieldMetaTitle:        "Tiêu đề SEO",
	FieldMetaDescription:  "Mô tả SEO",
}

// DefaultColumnKeys is the suggested column order for the preview table.
// Slug is derived and volumeUnit is rarely filled, so both are left out.
var DefaultColumnKeys = []FieldKey{
	FieldName, FieldPrice, FieldCompareAtPrice, FieldSKU, FieldStock,
	FieldBrandName, FieldCategoryName, FieldImageURL, FieldShortDescription,
	FieldDescription, FieldIngredients, FieldUsage, FieldVolume, FieldOrigin,
	FieldIsFeatured, FieldStatus, FieldPublishedAt,
	FieldMetaTitle, FieldMetaDescription,
}

// ImageItem is a gallery image staged by the import parser
type ImageItem struct {
	URL      string  `json:"url"`
	Alt      *string `json:"alt,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// ImportRow is one staged product awaiting reconciliation and commit.
// It is produced by the parser, edited in the preview surface and consumed
// read-only by the commit engine.
type ImportRow struct {
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Price            int           `json:"price"`
	CompareAtPrice   *int          `json:"compareAtPrice"`
	SKU              *string       `json:"sku"`
	Stock            int           `json:"stock"`
	ImageURL         *string       `json:"imageUrl"`
	ShortDescription *string       `json:"shortDescription"`
	Description      *string       `json:"description"`
	Ingredients      *string       `json:"ingredients"`
	Usage            *string       `json:"usage"`
	Volume           *string       `json:"volume"`
	VolumeUnit       *string       `json:"volumeUnit"`
	Origin           *string       `json:"origin"`
	BrandName        *string       `json:"brandName"`
	CategoryName     *string       `json:"categoryName"`
	IsFeatured       bool          `json:"isFeatured"`
	Status           ProductStatus `json:"status"`
	PublishedAt      *string       `json:"publishedAt"` // ISO-8601 or null
	MetaTitle        *string       `json:"metaTitle"`
	MetaDescription  *string       `json:"metaDescription"`

	Images []ImageItem `json:"images,omitempty"`

	// Advisory flags for the preview step: the referenced name does not yet
	// exist in the catalog and commit would create it.
	NewBrand    bool `json:"__newBrand,omitempty"`
	NewCategory bool `json:"__newCategory,omitempty"`

	// Validation problems found during parse/edit; empty list is omitted.
	Errors []string `json:"__errors,omitempty"`
}

// RowAction is the outcome category of committing one row
type RowAction string

const (
	RowActionCreated RowAction = "created"
	RowActionUpdated RowAction = "updated"
	RowActionSkipped RowAction = "skipped"
)

// RowResult is the outcome of committing one import row
type RowResult struct {
	Name   string    `json:"name"`
	Action RowAction `json:"action"`
	Reason string    `json:"reason,omitempty"`
	ID     string    `json:"id,omitempty"`
}

// CommitRequest is the import commit payload
type CommitRequest struct {
	Rows           []ImportRow `json:"rows" binding:"required"`
	UpdateExisting bool        `json:"updateExisting"`
}

// CommitResult aggregates per-row outcomes; created+updated+skipped always
// equals the number of submitted rows and results preserve row order.
type CommitResult struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Skipped int         `json:"skipped"`
	Results []RowResult `json:"results"`
}

// PreviewResponse is the import preview payload: parsed rows plus the label
// metadata the table needs. An empty upload yields empty rows, not an error.
type PreviewResponse struct {
	Rows      []ImportRow         `json:"rows"`
	Labels    map[FieldKey]string `json:"labels"`
	Columns   []FieldKey          `json:"columns"`
	ColumnsVN []string            `json:"columnsVN"`
}

// ImportTemplateColumn defines one column of the downloadable import template
type ImportTemplateColumn struct {
	Key      FieldKey `json:"key"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Type     string   `json:"type"`
	Example  string   `json:"example"`
}

// ImportTemplate defines the structure of the downloadable import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// ProductImportTemplate returns the template definition for product imports
func ProductImportTemplate() ImportTemplate {
	columns := []ImportTemplateColumn{
		{Key: FieldName, Required: true, Type: "string", Example: "Serum Dưỡng Ẩm"},
		{Key: FieldSlug, Type: "string", Example: "serum-duong-am"},
		{Key: FieldPrice, Required: true, Type: "number", Example: "250000"},
		{Key: FieldCompareAtPrice, Type: "number", Example: "300000"},
		{Key: FieldSKU, Type: "string", Example: "SRM-001"},
		{Key: FieldStock, Type: "number", Example: "120"},
		{Key: FieldBrandName, Type: "string", Example: "SurgicTouch"},
		{Key: FieldCategoryName, Type: "string", Example: "Serum"},
		{Key: FieldImageURL, Type: "string", Example: "https://example.com/serum.jpg"},
		{Key: FieldShortDescription, Type: "string"},
		{Key: FieldDescription, Type: "string"},
		{Key: FieldIngredients, Type: "string"},
		{Key: FieldUsage, Type: "string"},
		{Key: FieldVolume, Type: "string", Example: "30ml"},
		{Key: FieldVolumeUnit, Type: "string", Example: "ml"},
		{Key: FieldOrigin, Type: "string", Example: "Việt Nam"},
		{Key: FieldIsFeatured, Type: "boolean", Example: "yes"},
		{Key: FieldStatus, Type: "string", Example: "PUBLISHED"},
		{Key: FieldPublishedAt, Type: "date", Example: "2026-01-15"},
		{Key: FieldMetaTitle, Type: "string"},
		{Key: FieldMetaDescription, Type: "string"},
	}
	for i := range columns {
		columns[i].Label = HeaderLabels[columns[i].Key]
	}
	return ImportTemplate{Entity: "products", Version: "1.0", Columns: columns}
}
