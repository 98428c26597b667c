package middlewares

import (
	"fastivalle/src/db"
	"fastivalle/src/models"
	"fastivalle/src/types"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func abortUnauthorized(ctx *gin.Context) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
}

// AuthMiddleware resolves a Bearer JWT to an active user and stores the
// identity on the context under "id", "email" and "name".
func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer ") {
		abortUnauthorized(ctx)
		return
	}
	reqToken := strings.TrimPrefix(bearerToken, "Bearer ")
	if reqToken == "" {
		abortUnauthorized(ctx)
		return
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		abortUnauthorized(ctx)
		return
	}
	if !tkn.Valid {
		abortUnauthorized(ctx)
		return
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		abortUnauthorized(ctx)
		return
	}
	d := db.GetDb()
	var user models.User
	if err := d.
		Model(&models.User{}).
		Where(&models.User{ID: uid}).
		First(&user).
		Error; err != nil {
		abortUnauthorized(ctx)
		return
	}
	if !user.IsActive {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Account is deactivated"})
		return
	}
	ctx.Set("id", user.ID.String())
	ctx.Set("email", user.Email)
	ctx.Set("name", user.Name)
}
