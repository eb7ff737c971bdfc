package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductStatus represents the publishing state of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "DRAFT"
	ProductStatusPublished ProductStatus = "PUBLISHED"
	ProductStatusArchived  ProductStatus = "ARCHIVED"
)

// Product represents a catalog product entity
// Prices are integer VND amounts; slug is the public identity of the product.
type Product struct {
	ID               uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name             string        `json:"name" gorm:"not null;index"`
	Slug             string        `json:"slug" gorm:"not null;uniqueIndex:idx_products_slug"`
	Price            int           `json:"price" gorm:"not null;default:0"`
	CompareAtPrice   *int          `json:"compareAtPrice,omitempty" gorm:"column:compare_at_price"`
	SKU              *string       `json:"sku,omitempty" gorm:"column:sku"`
	Stock            int           `json:"stock" gorm:"not null;default:0"`
	ImageURL         *string       `json:"imageUrl,omitempty" gorm:"column:image_url"`
	ShortDescription *string       `json:"shortDescription,omitempty"`
	Description      *string       `json:"description,omitempty"`
	Ingredients      *string       `json:"ingredients,omitempty"`
	Usage            *string       `json:"usage,omitempty"`
	Volume           *string       `json:"volume,omitempty"`
	VolumeUnit       *string       `json:"volumeUnit,omitempty" gorm:"column:volume_unit"`
	Origin           *string       `json:"origin,omitempty"`
	IsFeatured       bool          `json:"isFeatured" gorm:"column:is_featured;not null;default:false;index"`
	Status           ProductStatus `json:"status" gorm:"not null;default:'PUBLISHED';index"`
	PublishedAt      *time.Time    `json:"publishedAt,omitempty"`
	BrandID          *uuid.UUID    `json:"brandId,omitempty" gorm:"type:uuid;index"`
	CategoryID       *uuid.UUID    `json:"categoryId,omitempty" gorm:"type:uuid;index"`
	MetaTitle        *string       `json:"metaTitle,omitempty"`
	MetaDescription  *string       `json:"metaDescription,omitempty"`

	Brand    *Brand         `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Category *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Images   []ProductImage `json:"images,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductImage is one entry of a product's ordered gallery
type ProductImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	URL       string    `json:"url" gorm:"not null"`
	Alt       *string   `json:"alt,omitempty"`
	Position  int       `json:"position" gorm:"not null;default:0"`
}

// Brand represents a product brand, matched case-insensitively by name during import
type Brand struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null;index"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex:idx_brands_slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category represents a product category
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null;index"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex:idx_categories_slug"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HeroSlide is one entry of the storefront hero carousel
type HeroSlide struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Href     string    `json:"href" gorm:"not null"`
	Alt      string    `json:"alt" gorm:"not null"`
	Position int       `json:"position" gorm:"not null;default:0;index"`
	Active   bool      `json:"active" gorm:"not null;default:true;index"`

	// Optional display window; nil means unbounded on that side
	StartAt *time.Time `json:"startAt,omitempty"`
	EndAt   *time.Time `json:"endAt,omitempty"`

	MobileURL  string `json:"mobileUrl" gorm:"column:mobile_url;not null"`
	DesktopURL string `json:"desktopUrl" gorm:"column:desktop_url;not null"`

	CaptionTitle    *string `json:"captionTitle,omitempty"`
	CaptionSubtitle *string `json:"captionSubtitle,omitempty"`
	CaptionCtaHref  *string `json:"captionCtaHref,omitempty" gorm:"column:caption_cta_href"`
	CaptionCtaLabel *string `json:"captionCtaLabel,omitempty" gorm:"column:caption_cta_label"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string      { return "products" }
func (ProductImage) TableName() string { return "product_images" }
func (Brand) TableName() string        { return "brands" }
func (Category) TableName() string     { return "categories" }
func (HeroSlide) TableName() string    { return "hero_slides" }
