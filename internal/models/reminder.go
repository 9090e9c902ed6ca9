package models

import (
	"fmt"
	"strings"
	"time"
)

// Reminder est un rappel du calendrier. La date est stockée en "YYYY-MM-DD"
// avec jour et mois zéro-paddés en doublon pour les récurrences annuelles.
type Reminder struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"userId" bson:"userId"`
	Title      string    `json:"title" bson:"title"`
	Date       string    `json:"date" bson:"date"`
	Day        string    `json:"day" bson:"day"`
	Month      string    `json:"month" bson:"month"`
	Recurrence string    `json:"recurrence,omitempty" bson:"recurrence,omitempty"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

const RecurrenceYearly = "yearly"

// MarkedDates calcule les dates "YYYY-MM-DD" à marquer sur le calendrier
// pour un mois affiché. Un rappel annuel matche son couple mois/jour quelle
// que soit l'année ; un rappel ponctuel matche sa date exacte.
func MarkedDates(reminders []Reminder, year, month int) []string {
	mStr := fmt.Sprintf("%02d", month)
	seen := map[string]bool{}
	marks := []string{}

	add := func(date string) {
		if !seen[date] {
			seen[date] = true
			marks = append(marks, date)
		}
	}

	for _, rem := range reminders {
		if rem.Recurrence == RecurrenceYearly {
			if rem.Month == mStr {
				add(fmt.Sprintf("%d-%s-%s", year, rem.Month, rem.Day))
			}
		} else if rem.Date != "" {
			parts := strings.SplitN(rem.Date, "-", 3)
			if len(parts) == 3 && parts[0] == fmt.Sprintf("%d", year) && parts[1] == mStr {
				add(rem.Date)
			}
		}
	}
	return marks
}

// OccursOn indique si le rappel tombe sur cette date "YYYY-MM-DD".
func (r Reminder) OccursOn(date string) bool {
	if r.Date == date {
		return true
	}
	if r.Recurrence == RecurrenceYearly && len(date) == 10 {
		return r.Month == date[5:7] && r.Day == date[8:10]
	}
	return false
}

