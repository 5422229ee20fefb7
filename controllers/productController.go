package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Kariqs/amexan-store/catalog"
	"github.com/Kariqs/amexan-store/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateProduct(ctx *gin.Context) {
	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Catalog.Create(ctx.Request.Context(), &product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func (h *Handler) UploadProductImage(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
		return
	}

	if _, err := h.Catalog.Find(ctx.Request.Context(), uint(productID)); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(ctx, http.StatusNotFound, msgProductNotFound, nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
		}
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}
	defer f.Close()

	url, err := h.Images.Upload(ctx.Request.Context(), uint(productID), file.Filename, file.Header.Get("Content-Type"), f)
	if err != nil {
		log.Printf("Error uploading file %s: %v", file.Filename, err)
		respondWithError(ctx, http.StatusBadGateway, "Failed to upload image", nil)
		return
	}

	if err := h.Catalog.SetImage(ctx.Request.Context(), uint(productID), url); err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to save image", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "url": url})
}

func (h *Handler) GetProducts(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))

	products, count, err := h.Catalog.List(ctx.Request.Context(), catalog.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: ctx.Query("search"),
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func (h *Handler) GetProduct(ctx *gin.Context) {
	productID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
		return
	}

	product, err := h.Catalog.Find(ctx.Request.Context(), uint(productID))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(ctx, http.StatusNotFound, msgProductNotFound, nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, product)
}
