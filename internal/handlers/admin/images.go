package admin

import (
	"log"
	"net/http"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/admin/products/images — upload multipart d'images produit vers
// MinIO. Retourne les URLs publiques à insérer dans productsImages.
func UploadProductImages(c *gin.Context) {
	if database.MinIO == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stockage d'images indisponible"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formulaire multipart invalide"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie"})
		return
	}

	urls := []string{}
	for _, file := range files {
		url, err := services.UploadProductImage(c.Request.Context(), file)
		if err != nil {
			log.Println("❌ Erreur upload image:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + file.Filename})
			return
		}
		log.Println("📤 Image uploadée :", url)
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls})
}
