package main

import (
	"bytes"
	"context"
	"errors"
	"fastivalle/src/db"
	"fastivalle/src/lib"
	"fastivalle/src/services"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeqown/go-qrcode"
)

func ticketHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/tickets", func(ctx *gin.Context) {
			userID, ok := currentUserID(ctx)
			if !ok {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
				return
			}
			svc := services.NewTicketsService(db.GetDb())
			groups, err := svc.MyTickets(ctx.Request.Context(), userID)
			if err != nil {
				log.Printf("Error loading tickets: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load tickets"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"ticketGroups": groups}})
		}).
		GET("/tickets/:id/qrcode", func(ctx *gin.Context) {
			userID, ok := currentUserID(ctx)
			if !ok {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
				return
			}
			svc := services.NewTicketsService(db.GetDb())
			ticket, err := svc.TicketForUser(ctx.Request.Context(), userID, ctx.Param("id"))
			if err != nil {
				if errors.Is(err, services.ErrTicketNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
					return
				}
				log.Printf("Error loading ticket: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load ticket"})
				return
			}

			cacheKey := fmt.Sprintf("ticket_qr:%s", ticket.ID)
			if rd := lib.GetRedisClient(); rd != nil {
				cached, err := rd.Get(context.Background(), cacheKey).Bytes()
				if err == nil {
					ctx.Data(http.StatusOK, "image/png", cached)
					return
				}
				if !errors.Is(err, redis.Nil) {
					log.Printf("Error reading from cache: %s\n", err.Error())
				}
			}

			qrc, err := qrcode.New(ticket.QRCode)
			if err != nil {
				log.Printf("Error rendering qrcode for ticket %s: %s\n", ticket.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to render ticket"})
				return
			}
			var buf bytes.Buffer
			if err := qrc.SaveTo(&buf); err != nil {
				log.Printf("Error encoding qrcode for ticket %s: %s\n", ticket.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to render ticket"})
				return
			}

			if rd := lib.GetRedisClient(); rd != nil {
				if err := rd.Set(context.Background(), cacheKey, buf.Bytes(), 24*time.Hour).Err(); err != nil {
					log.Printf("Error writing to cache: %s\n", err.Error())
				}
			}
			ctx.Data(http.StatusOK, "image/png", buf.Bytes())
		})
	return g
}
