package models

import "time"

// ImageInput is one gallery image in a create/update payload
type ImageInput struct {
	URL      string  `json:"url" binding:"required"`
	Alt      *string `json:"alt,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// CreateProductRequest represents a request to create a new product.
// Slug is derived from name when omitted; SEO fields are auto-filled when blank.
type CreateProductRequest struct {
	Name             string         `json:"name" binding:"required,min=2"`
	Slug             *string        `json:"slug,omitempty"`
	SKU              *string        `json:"sku,omitempty"`
	Price            int            `json:"price" binding:"min=0"`
	CompareAtPrice   *int           `json:"compareAtPrice,omitempty"`
	Stock            int            `json:"stock" binding:"min=0"`
	ImageURL         *string        `json:"imageUrl,omitempty"`
	Images           []ImageInput   `json:"images,omitempty"`
	ShortDescription *string        `json:"shortDescription,omitempty"`
	Description      *string        `json:"description,omitempty"`
	Ingredients      *string        `json:"ingredients,omitempty"`
	Usage            *string        `json:"usage,omitempty"`
	Volume           *string        `json:"volume,omitempty"`
	VolumeUnit       *string        `json:"volumeUnit,omitempty"`
	Origin           *string        `json:"origin,omitempty"`
	IsFeatured       bool           `json:"isFeatured"`
	Status           *ProductStatus `json:"status,omitempty"`
	PublishedAt      *time.Time     `json:"publishedAt,omitempty"`
	BrandID          *string        `json:"brandId,omitempty"`
	CategoryID       *string        `json:"categoryId,omitempty"`
	MetaTitle        *string        `json:"metaTitle,omitempty"`
	MetaDescription  *string        `json:"metaDescription,omitempty"`
}

// UpdateProductRequest represents a partial update; nil fields are left untouched
type UpdateProductRequest struct {
	Name             *string        `json:"name,omitempty"`
	Slug             *string        `json:"slug,omitempty"`
	SKU              *string        `json:"sku,omitempty"`
	Price            *int           `json:"price,omitempty"`
	CompareAtPrice   *int           `json:"compareAtPrice,omitempty"`
	Stock            *int           `json:"stock,omitempty"`
	ImageURL         *string        `json:"imageUrl,omitempty"`
	Images           []ImageInput   `json:"images,omitempty"`
	ShortDescription *string        `json:"shortDescription,omitempty"`
	Description      *string        `json:"description,omitempty"`
	Ingredients      *string        `json:"ingredients,omitempty"`
	Usage            *string        `json:"usage,omitempty"`
	Volume           *string        `json:"volume,omitempty"`
	VolumeUnit       *string        `json:"volumeUnit,omitempty"`
	Origin           *string        `json:"origin,omitempty"`
	IsFeatured       *bool          `json:"isFeatured,omitempty"`
	Status           *ProductStatus `json:"status,omitempty"`
	PublishedAt      *time.Time     `json:"publishedAt,omitempty"`
	BrandID          *string        `json:"brandId,omitempty"`
	CategoryID       *string        `json:"categoryId,omitempty"`
	MetaTitle        *string        `json:"metaTitle,omitempty"`
	MetaDescription  *string        `json:"metaDescription,omitempty"`
}

// CreateTaxonomyRequest covers brand and category creation
type CreateTaxonomyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpdateTaxonomyRequest is a partial brand/category update
type UpdateTaxonomyRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

// HeroCaptionInput is the optional caption block of a hero slide
type HeroCaptionInput struct {
	Title    *string `json:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	CtaHref  *string `json:"ctaHref,omitempty"`
	CtaLabel *string `json:"ctaLabel,omitempty"`
}

// HeroImageInput carries the responsive image pair of a hero slide
type HeroImageInput struct {
	MobileURL  string `json:"mobileUrl" binding:"required"`
	DesktopURL string `json:"desktopUrl" binding:"required"`
}

// CreateHeroSlideRequest represents a request to create a hero slide
type CreateHeroSlideRequest struct {
	Href     string            `json:"href" binding:"required"`
	Alt      string            `json:"alt" binding:"required"`
	Position int               `json:"position"`
	Active   *bool             `json:"active,omitempty"`
	StartAt  *time.Time        `json:"startAt,omitempty"`
	EndAt    *time.Time        `json:"endAt,omitempty"`
	Image    HeroImageInput    `json:"image" binding:"required"`
	Caption  *HeroCaptionInput `json:"caption,omitempty"`
}

// UpdateHeroSlideRequest is a partial hero slide update
type UpdateHeroSlideRequest struct {
	Href     *string           `json:"href,omitempty"`
	Alt      *string           `json:"alt,omitempty"`
	Position *int              `json:"position,omitempty"`
	Active   *bool             `json:"active,omitempty"`
	StartAt  *time.Time        `json:"startAt,omitempty"`
	EndAt    *time.Time        `json:"endAt,omitempty"`
	Image    *HeroImageInput   `json:"image,omitempty"`
	Caption  *HeroCaptionInput `json:"caption,omitempty"`
}

// ProductListQuery captures the list/search filters parsed from query params
type ProductListQuery struct {
	Query         string
	BrandSlug     string
	CategorySlug  string
	Status        *ProductStatus
	Featured      *bool
	PublishedOnly bool
	Page          int
	Limit         int
	SortBy        string
	SortOrder     string
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}
