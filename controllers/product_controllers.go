package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lasantapapa/pos-app/models"
	"github.com/lasantapapa/pos-app/services"
	"github.com/lasantapapa/pos-app/utils"
)

type ProductController struct {
	DB      *gorm.DB
	Catalog *services.CatalogCache
}

func NewProductController(db *gorm.DB, catalog *services.CatalogCache) *ProductController {
	return &ProductController{DB: db, Catalog: catalog}
}

// GetAllProducts -> list products from the catalog cache, optionally
// filtered by category tab.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	category := c.Query("category")

	if category != "" {
		if !models.ValidCategory(category) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown category %q", category))
			return
		}
		products, err := pc.Catalog.ByCategory(category)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("List of products for category: %s", category), products)
		return
	}

	products, err := pc.Catalog.All()
	if err != nil && len(products) == 0 {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

type productRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	ImageURL    *string  `json:"image_url"`
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if *req.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}
	if !models.ValidCategory(req.Category) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown category %q", req.Category))
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Catalog.Invalidate()
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// GetProductByID
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("product_id")

	var product models.Product
	if err := pc.DB.First(&product, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// UpdateProduct -> partial update, only the provided fields change.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("product_id")

	var product models.Product
	if err := pc.DB.First(&product, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	type patchRequest struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Category    *string  `json:"category"`
		ImageURL    *string  `json:"image_url"`
	}

	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown category %q", *req.Category))
			return
		}
		product.Category = *req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Catalog.Invalidate()
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct refuses to remove a product that historical order lines
// still reference; price snapshots must stay resolvable.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("product_id")

	var product models.Product
	if err := pc.DB.First(&product, "id = ?", id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	var referenced int64
	if err := pc.DB.Model(&models.OrderItem{}).
		Where("product_id = ?", id).
		Count(&referenced).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if referenced > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("product is referenced by existing order lines"))
		return
	}

	if err := pc.DB.Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Catalog.Invalidate()
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
