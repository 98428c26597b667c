package main

import (
	"errors"
	"fastivalle/src/db"
	"fastivalle/src/lib"
	"fastivalle/src/models"
	"fastivalle/src/types"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const tokenValidity = 30 * 24 * time.Hour

func generateJWT(user *models.User) (string, error) {
	claims := types.Claims{
		Email:    user.Email,
		Provider: user.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// guestAuthRoutes registers the unauthenticated sign-in endpoint. The app
// signs in through Firebase (Google/Apple) and exchanges the resulting ID
// token for an API token here.
func guestAuthRoutes(r *gin.Engine) {
	r.POST(apiPrefix+"/auth/social", func(ctx *gin.Context) {
		var body types.SocialSignInRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "idToken required"})
			return
		}

		fauth, err := lib.GetFirebaseAuth()
		if err != nil {
			log.Printf("Error retrieving Firebase Auth instance: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Sign-in unavailable"})
			return
		}
		decoded, err := fauth.VerifyIDToken(ctx, body.IDToken)
		if err != nil {
			log.Printf("Failed to verify ID token: %s\n", err.Error())
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
			return
		}

		email := claimString(decoded.Claims, "email")
		name := body.Name
		if name == "" {
			name = claimString(decoded.Claims, "name")
		}
		picture := body.ProfileImage
		if picture == "" {
			picture = claimString(decoded.Claims, "picture")
		}

		d := db.GetDb()
		var user models.User
		err = d.Where(&models.User{ProviderUID: decoded.UID}).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) && email != "" {
			// Returning user who previously signed in with another method.
			err = d.Where(&models.User{Email: email}).First(&user).Error
		}
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Email:        email,
				Name:         name,
				Provider:     "firebase",
				ProviderUID:  decoded.UID,
				ProfileImage: picture,
				IsActive:     true,
			}
			if err := d.Create(&user).Error; err != nil {
				log.Printf("Error creating user: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Sign-in failed"})
				return
			}
		case err != nil:
			log.Printf("Error loading user: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Sign-in failed"})
			return
		default:
			updates := models.User{Provider: "firebase", ProviderUID: decoded.UID}
			if name != "" && user.Name == "" {
				updates.Name = name
			}
			if picture != "" && user.ProfileImage == "" {
				updates.ProfileImage = picture
			}
			if err := d.Model(&user).Updates(&updates).Error; err != nil {
				log.Printf("Error updating user: %s\n", err.Error())
			}
		}
		if !user.IsActive {
			ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Account is deactivated"})
			return
		}

		token, err := generateJWT(&user)
		if err != nil {
			log.Printf("Error generating token: %s\n", err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Sign-in failed"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"token": token, "user": user}})
	})
}

func authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/auth/me", func(ctx *gin.Context) {
			userID, ok := currentUserID(ctx)
			if !ok {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
				return
			}
			d := db.GetDb()
			var user models.User
			if err := d.Where(&models.User{ID: userID}).First(&user).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": user})
		}).
		PUT("/auth/me", func(ctx *gin.Context) {
			userID, ok := currentUserID(ctx)
			if !ok {
				ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized"})
				return
			}
			var body types.UpdateMeRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				return
			}
			d := db.GetDb()
			var user models.User
			if err := d.Where(&models.User{ID: userID}).First(&user).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
				return
			}
			updates := models.User{
				Name:         body.Name,
				Phone:        body.Phone,
				ProfileImage: body.ProfileImage,
			}
			if err := d.Model(&user).Updates(&updates).Error; err != nil {
				log.Printf("Error updating user: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update profile"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "data": user})
		})
	return g
}
