package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/middleware"
	"giftwrap_back_end/internal/models"
	"giftwrap_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ================== AUTH LOCALE ==================

// POST /api/users — inscription email/mot de passe.
func CreateUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := database.Collection(database.ColUsers)

	// email déjà pris ?
	count, err := users.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur base de données"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:       primitive.NewObjectID().Hex(),
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Phone:    input.Phone,
		Role:     "customer",
		Verified: false,
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	sendVerificationEmail(ctx, user)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Compte créé pour %s", user.Email)
	user.Password = ""
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// POST /api/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc bson.M
	err := database.Collection(database.ColUsers).FindOne(ctx, bson.M{"email": input.Email}).Decode(&doc)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}
	user := models.NormalizeUserDoc(doc)

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	middleware.ResetAttempts("login", input.Email)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/verify-email?token=...
func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token requis"})
		return
	}

	ctx := context.Background()
	userID, err := database.Redis.Get(ctx, "verify:"+token).Result()
	if err != nil || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lien invalide ou expiré"})
		return
	}

	_, err = database.Collection(database.ColUsers).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"verified": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification"})
		return
	}
	database.Redis.Del(ctx, "verify:"+token)

	log.Printf("✅ Email vérifié pour user %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Email verified. You can now sign in."})
}

// sendVerificationEmail pose un token de vérification (48h) dans Redis et
// envoie le lien. Best effort : l'inscription n'échoue pas sur un souci
// d'e-mail.
func sendVerificationEmail(ctx context.Context, user models.User) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	if err := database.Redis.Set(ctx, "verify:"+token, user.ID, 48*time.Hour).Err(); err != nil {
		log.Println("⚠️ Impossible de stocker le token de vérification:", err)
		return
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	link := fmt.Sprintf("%s/api/verify-email?token=%s", baseURL, token)

	body := fmt.Sprintf(`<p>Welcome to GiftWrap!</p>
<p>Please confirm your email address: <a href="%s">verify my email</a></p>`, link)

	if err := utils.SendEmail(user.Email, "Verify your GiftWrap account", body); err != nil {
		log.Println("⚠️ Envoi e-mail de vérification échoué:", err)
	}
}
