package user

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"giftwrap_back_end/internal/database"
	"giftwrap_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// POST /api/reminders — pose un rappel annuel ("My Dates").
func CreateReminder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Title string `json:"title"`
		Day   string `json:"day"`
		Month string `json:"month"`
		Year  string `json:"year"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// validation champ par champ, comme l'écran de saisie
	errors := gin.H{}
	if input.Title == "" {
		errors["title"] = "Event name is required"
	}
	if !validDatePart(input.Day, 1, 31) {
		errors["day"] = "Day is required"
	}
	if !validDatePart(input.Month, 1, 12) {
		errors["month"] = "Month is required"
	}
	if !validDatePart(input.Year, 1900, 2200) {
		errors["year"] = "Year is required"
	}
	if len(errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errors})
		return
	}

	day := pad2(input.Day)
	month := pad2(input.Month)
	dateString := fmt.Sprintf("%s-%s-%s", input.Year, month, day)

	reminder := models.Reminder{
		ID:         primitive.NewObjectID().Hex(),
		UserID:     userID,
		Title:      input.Title,
		Date:       dateString,
		Day:        day,
		Month:      month,
		Recurrence: models.RecurrenceYearly,
		CreatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := database.Collection(database.ColReminders).InsertOne(ctx, reminder); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reminder"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Reminder set: %q on %s", input.Title, dateString),
		"reminder": reminder,
	})
}

// GET /api/reminders?year=&month= — les rappels de l'utilisateur, avec les
// dates à marquer pour le mois affiché.
func GetReminders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := database.Collection(database.ColReminders).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération rappels"})
		return
	}
	defer cursor.Close(ctx)

	reminders := []models.Reminder{}
	if err := cursor.All(ctx, &reminders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage rappels"})
		return
	}

	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = m
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders":   reminders,
		"markedDates": models.MarkedDates(reminders, year, month),
	})
}

// DELETE /api/reminders/:id — suppression, propriété vérifiée.
func DeleteReminder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := database.Collection(database.ColReminders).DeleteOne(ctx, bson.M{
		"_id":    c.Param("id"),
		"userId": userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression rappel"})
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rappel introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}

func validDatePart(s string, min, max int) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= min && n <= max
}

// pad2 zéro-padde jour et mois sur deux chiffres ("5" → "05").
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
