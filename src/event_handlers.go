package main

import (
	"errors"
	"fastivalle/src/db"
	"fastivalle/src/models"
	"fastivalle/src/types"
	"fastivalle/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog read endpoints. The order workflow treats these records as
// read-only; nothing here mutates them.
func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			d := db.GetDb()
			var events []models.Event
			// Raw condition: a zero-value struct field would be dropped
			// from the query, letting private events through.
			if err := d.
				Where(&models.Event{Status: types.EVENT_PUBLISHED}).
				Where("is_private = ?", false).
				Order("start_date asc").
				Find(&events).
				Error; err != nil {
				log.Printf("Error retrieving events: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load events"})
				return
			}
			summaries := make([]types.EventSummary, 0, len(events))
			for i := range events {
				s := utils.EventSummary(&events[i])
				s.DateRange = utils.FormatDateRange(events[i].StartDate, events[i].EndDate, events[i].StartTime)
				s.Attendees = events[i].AttendeesCount
				summaries = append(summaries, *s)
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"events": summaries}})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			id, err := uuid.Parse(ctx.Param("id"))
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
				return
			}
			d := db.GetDb()
			var event models.Event
			if err := d.
				Where(&models.Event{ID: id}).
				Preload("TicketTypes", func(tx *gorm.DB) *gorm.DB {
					return tx.Order("sort_order asc")
				}).
				First(&event).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event not found"})
					return
				}
				log.Printf("Error retrieving event: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load event"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": event})
		})
	return g
}
