package utils

import (
	"fastivalle/src/models"
	"fastivalle/src/types"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Alphabet for order numbers, with easily-confused characters (0/O, 1/I)
// left out.
const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderNumber produces a candidate like "XQ7K-r4821". Uniqueness is
// the caller's problem: check the ledger and regenerate on collision.
func GenerateOrderNumber() string {
	var sb strings.Builder
	for i := 0; i < 4; i++ {
		sb.WriteByte(orderNumberAlphabet[rand.IntN(len(orderNumberAlphabet))])
	}
	return fmt.Sprintf("%s-r%d", sb.String(), 1000+rand.IntN(9000))
}

// FormatEventDate renders the display date shown on tickets, e.g.
// "AUG 15, 10:00" when the event carries a start time, otherwise
// "AUG 15, 7:30PM" from the date itself.
func FormatEventDate(date *time.Time, startTime string) string {
	if date == nil {
		return ""
	}
	month := strings.ToUpper(date.Format("Jan"))
	if startTime != "" {
		return fmt.Sprintf("%s %d, %s", month, date.Day(), startTime)
	}
	return fmt.Sprintf("%s %d, %s", month, date.Day(), date.Format("3:04PM"))
}

// FormatDateRange renders multi-day events as "AUG 15-17"; single-day
// events fall back to the date part of FormatEventDate.
func FormatDateRange(start *time.Time, end *time.Time, startTime string) string {
	if start == nil {
		return ""
	}
	if end != nil {
		return fmt.Sprintf("%s %d-%d", strings.ToUpper(start.Format("Jan")), start.Day(), end.Day())
	}
	formatted := FormatEventDate(start, startTime)
	if i := strings.Index(formatted, ","); i >= 0 {
		return formatted[:i]
	}
	return formatted
}

// EventSummary shapes the compact event block embedded in order and ticket
// payloads. Every read path uses this one formatter.
func EventSummary(event *models.Event) *types.EventSummary {
	if event == nil {
		return nil
	}
	return &types.EventSummary{
		ID:         event.ID.String(),
		Title:      event.Title,
		Date:       FormatEventDate(event.StartDate, event.StartTime),
		Subtitle:   event.Subtitle,
		Stage:      event.Venue,
		CoverImage: event.CoverImage,
		CoverColor: event.CoverColor,
	}
}

// DisplayCategory maps the stored category enum to the label the client
// shows ("Group" or "General").
func DisplayCategory(category string) string {
	if category == types.CATEGORY_GROUP {
		return "Group"
	}
	return "General"
}

func Ptr[T any](v T) *T {
	return &v
}
