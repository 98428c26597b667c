package main

import (
	"fastivalle/src/config"
	"fastivalle/src/db"
	"fastivalle/src/lib"
	"fastivalle/src/middlewares"
	"fastivalle/src/services"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	apiPrefix string = "/api/v1"
)

// staleOrderMaxAge is how long a pending order may sit before the sweeper
// cancels it.
const staleOrderMaxAge = 30 * time.Minute

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.GetEnv("CORS_ORIGIN", "*")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: false,
		MaxAge:           10 * time.Minute,
	}))

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": "fastivalle api"})
	})
	router.GET("/health", func(ctx *gin.Context) {
		dbStatus := "up"
		if err := db.Ping(db.GetDb()); err != nil {
			dbStatus = "down"
		}
		ctx.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "ok", "database": dbStatus}})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

func apiv1Group(r *gin.Engine) *gin.RouterGroup {
	return r.Group(apiPrefix)
}

// currentUserID reads the identity the auth middleware stored on the
// context. ok is false when the request never passed authentication.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw := ctx.GetString("id")
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func startStaleOrderSweeper() {
	_, err := lib.CreateCronJob(func() {
		svc := services.NewOrdersService(db.GetDb())
		n, err := svc.CancelStaleOrders(staleOrderMaxAge)
		if err != nil {
			log.Printf("Error sweeping stale orders: %s\n", err.Error())
			return
		}
		if n > 0 {
			log.Printf("Cancelled %d stale pending orders\n", n)
		}
	}, 15*time.Minute)
	if err != nil {
		log.Printf("Error creating sweeper job: %s\n", err.Error())
		return
	}
	lib.StartScheduler()
}

func main() {
	d := db.GetDb()
	if err := db.Migrate(d); err != nil {
		log.Fatalf("Error running migrations: %s\n", err.Error())
	}
	if os.Getenv("SEED_DB") == "true" {
		if err := db.Seed(d); err != nil {
			log.Printf("Error seeding database: %s\n", err.Error())
		}
	}

	router := setupRouter()
	guestAuthRoutes(router)

	apiv1 := apiv1Group(router)
	apiv1.Use(middlewares.AuthMiddleware)
	authHandlers(apiv1)
	eventHandlers(apiv1)
	orderHandlers(apiv1)
	ticketHandlers(apiv1)

	startStaleOrderSweeper()

	port := config.GetEnv("PORT", "3000")
	log.Fatal(router.Run(":" + port))
}
