package main

import (
	"errors"
	"fastivalle/src/db"
	"fastivalle/src/lib/mailer"
	"fastivalle/src/services"
	"fastivalle/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// sendOrderConfirmation emails the purchaser in the background. A mail
// failure never affects the response; the order is already committed.
func sendOrderConfirmation(ctx *gin.Context, payload *types.OrderPayload) {
	email := ctx.GetString("email")
	name := ctx.GetString("name")
	if email == "" {
		return
	}
	go func() {
		if err := mailer.SendOrderConfirmation(email, name, payload); err != nil {
			log.Printf("Error sending confirmation for order %s: %s\n", payload.OrderNumber, err.Error())
		}
	}()
}

func orderHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/orders", func(ctx *gin.Context) {
			userID, ok := currentUserID(ctx)
			if !ok {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
				return
			}
			var body types.CreateOrderRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "eventId and items required"})
				return
			}

			svc := services.NewOrdersService(db.GetDb())
			payload, err := svc.CreateOrder(ctx.Request.Context(), userID, &body)
			if err != nil {
				switch {
				case errors.Is(err, services.ErrEmptyItems):
					ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				case errors.Is(err, services.ErrEventNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
				case errors.Is(err, services.ErrGenerationExhausted):
					log.Printf("Order create error: %s\n", err.Error())
					ctx.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "Failed to create order"})
				default:
					log.Printf("Order create error: %s\n", err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create order"})
				}
				return
			}
			sendOrderConfirmation(ctx, payload)
			ctx.JSON(http.StatusCreated, gin.H{"success": true, "data": payload})
		}).
		GET("/orders/:id", func(ctx *gin.Context) {
			userID, ok := currentUserID(ctx)
			if !ok {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
				return
			}
			svc := services.NewOrdersService(db.GetDb())
			payload, err := svc.GetOrder(ctx.Request.Context(), userID, ctx.Param("id"))
			if err != nil {
				if errors.Is(err, services.ErrOrderNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
					return
				}
				log.Printf("Order detail error: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load order"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": payload})
		})
	return g
}
