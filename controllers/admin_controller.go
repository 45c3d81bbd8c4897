package controllers

import (
	"net/http"

	"storefront-service/models"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
)

// MaxImageSize bounds admin image uploads.
const MaxImageSize = 10 << 20

// AdminController serves the back-office catalog screens, login and image
// upload.
type AdminController struct {
	admin  services.AdminService
	auth   services.AuthService
	images services.ImageService
}

func NewAdminController(admin services.AdminService, auth services.AuthService, images services.ImageService) *AdminController {
	return &AdminController{admin: admin, auth: auth, images: images}
}

func (ctrl *AdminController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	res, svcErr := ctrl.auth.Login(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListProducts returns the products table, newest first, narrowed by ?q=.
func (ctrl *AdminController) ListProducts(c *gin.Context) {
	products, svcErr := ctrl.admin.ListProducts(c.Request.Context(), c.Query("q"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

func (ctrl *AdminController) CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	product, svcErr := ctrl.admin.CreateProduct(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (ctrl *AdminController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	product, svcErr := ctrl.admin.UpdateProduct(c.Request.Context(), id, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (ctrl *AdminController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := ctrl.admin.DeleteProduct(c.Request.Context(), id); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (ctrl *AdminController) ListCollections(c *gin.Context) {
	collections, svcErr := ctrl.admin.ListCollections(c.Request.Context())
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": collections})
}

func (ctrl *AdminController) CreateCollection(c *gin.Context) {
	var req models.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	collection, svcErr := ctrl.admin.CreateCollection(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"collection": collection})
}

func (ctrl *AdminController) UpdateCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	collection, svcErr := ctrl.admin.UpdateCollection(c.Request.Context(), id, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": collection})
}

func (ctrl *AdminController) DeleteCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := ctrl.admin.DeleteCollection(c.Request.Context(), id); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection deleted successfully"})
}

func (ctrl *AdminController) ListBrands(c *gin.Context) {
	brands, svcErr := ctrl.admin.ListBrands(c.Request.Context())
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (ctrl *AdminController) CreateBrand(c *gin.Context) {
	var req models.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	brand, svcErr := ctrl.admin.CreateBrand(c.Request.Context(), &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"brand": brand})
}

func (ctrl *AdminController) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}
	brand, svcErr := ctrl.admin.UpdateBrand(c.Request.Context(), id, &req)
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brand": brand})
}

func (ctrl *AdminController) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if svcErr := ctrl.admin.DeleteBrand(c.Request.Context(), id); svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted successfully"})
}

// UploadImage stores the multipart "image" file and returns its public URL.
// An optional "bucket" form field overrides the default bucket.
func (ctrl *AdminController) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize)

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required", "details": err.Error()})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	url, svcErr := ctrl.images.Upload(c.Request.Context(), file, header.Filename, c.PostForm("bucket"))
	if svcErr != nil {
		abortWithServiceError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
