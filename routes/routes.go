package routes

import (
	"net/http"
	"time"

	"dinevoice/handlers"
	"dinevoice/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the bookings REST API.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.Bookings.CreateBooking)
		api.GET("", hb.Bookings.ListBookings)
		api.GET("/:id", hb.Bookings.GetBooking)
		api.DELETE("/:id", hb.Bookings.DeleteBooking)
	}
}

// RegisterVoiceRoutes registers server-hosted conversations and transcription.
func RegisterVoiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/voice")
	{
		api.POST("/sessions", hb.Voice.StartSession)
		api.GET("/sessions/:id", hb.Voice.GetSession)
		api.DELETE("/sessions/:id", hb.Voice.EndSession)
		api.POST("/sessions/:id/utterances", hb.Voice.HandleUtterance)
		api.POST("/transcribe", hb.Voice.Transcribe)
	}
}

// RegisterHealthRoute reports the last dependency check.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		health := utils.GetHealthStatus()
		status, code := "ok", http.StatusOK
		if !health.Healthy() {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"mongo":     health.Mongo,
			"redis":     health.Redis,
			"checkedAt": health.CheckedAt,
		})
	})
}

// RegisterRoutes installs CORS and every endpoint.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowOrigins []string) {
	corsConfig := cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	RegisterBookingRoutes(r, hb)
	RegisterVoiceRoutes(r, hb)
	RegisterHealthRoute(r)
}
