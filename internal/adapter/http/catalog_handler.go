package http

import (
	"context"
	"net/http"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *usecase.Catalog
}

func NewCatalogHandler(catalog *usecase.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type variantResp struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AdditionalPrice int64  `json:"additionalPrice"`
	Note            string `json:"note,omitempty"`
}

type productResp struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       int64         `json:"price"`
	Image       string        `json:"image"`
	CategoryID  string        `json:"categoryId"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Variants    []variantResp `json:"variants"`
}

func productToResp(p domain.Product) productResp {
	variants := make([]variantResp, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = variantResp{ID: v.ID, Name: v.Name, AdditionalPrice: v.AdditionalPrice, Note: v.Note}
	}
	return productResp{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		Status:      string(p.Status),
		Variants:    variants,
	}
}

func (h *CatalogHandler) ctx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 3*time.Second)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	products, err := h.catalog.Products(ctx)
	if err != nil {
		abortWith(c, err)
		return
	}
	out := make([]productResp, len(products))
	for i, p := range products {
		out[i] = productToResp(p)
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

type productReq struct {
	ID          string        `json:"id"`
	Name        string        `json:"name" binding:"required"`
	Price       int64         `json:"price" binding:"min=0"`
	Image       string        `json:"image"`
	CategoryID  string        `json:"categoryId" binding:"required"`
	Description string        `json:"description"`
	Status      string        `json:"status" binding:"required"`
	Variants    []variantResp `json:"variants"`
}

func (r productReq) toDomain(id string) domain.Product {
	variants := make([]domain.Variant, len(r.Variants))
	for i, v := range r.Variants {
		variants[i] = domain.Variant{ID: v.ID, Name: v.Name, AdditionalPrice: v.AdditionalPrice, Note: v.Note}
	}
	return domain.Product{
		ID:          id,
		Name:        r.Name,
		Price:       r.Price,
		Image:       r.Image,
		CategoryID:  r.CategoryID,
		Description: r.Description,
		Status:      domain.ProductStatus(r.Status),
		Variants:    variants,
	}
}

func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.catalog.CreateProduct(ctx, req.toDomain(req.ID)); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.catalog.UpdateProduct(ctx, req.toDomain(c.Param("id"))); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.catalog.DeleteProduct(ctx, c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type categoryReq struct {
	ID   string `json:"id"`
	Name string `json:"name" binding:"required"`
	Icon string `json:"icon"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.catalog.CreateCategory(ctx, domain.Category{ID: req.ID, Name: req.Name, Icon: req.Icon}); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.catalog.UpdateCategory(ctx, domain.Category{ID: c.Param("id"), Name: req.Name, Icon: req.Icon}); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	if err := h.catalog.DeleteCategory(ctx, c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
