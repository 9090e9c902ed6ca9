package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"giftwrap_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// Bucket retourne le bucket des images produits.
func Bucket() string {
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "giftwrap-products"
	}
	return bucket
}

// UploadProductImage pousse une image produit dans MinIO et retourne son
// URL publique.
func UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := path.Join("products", file.Filename)
	_, err = database.MinIO.PutObject(ctx, Bucket(), objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	return ImageURL(objectName), nil
}

// ImageURL construit l'URL publique d'un objet du bucket.
func ImageURL(objectName string) string {
	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), Bucket(), objectName)
}
