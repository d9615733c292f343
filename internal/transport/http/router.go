package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pointpal/internal/middleware"
)

func NewRouter(
	authHandler *AuthHandler,
	rewardsHandler *RewardsHandler,
	authMW gin.HandlerFunc,
	limiter *middleware.RateLimiter,
	allowOrigins []string,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowOrigins
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", limiter.Limit("signup", 5, 1*time.Minute), authHandler.Signup)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/logout", authMW, authHandler.Logout)
		}

		me := api.Group("/me")
		me.Use(authMW)
		{
			me.GET("", authHandler.Me)
			me.GET("/stats", rewardsHandler.Stats)
			me.GET("/referrals", rewardsHandler.Referrals)
			me.GET("/redemptions", rewardsHandler.Redemptions)
		}

		rewards := api.Group("/rewards")
		{
			rewards.GET("", rewardsHandler.List)
			rewards.POST("/:id/redeem", authMW, rewardsHandler.Redeem)
		}
	}

	return r
}
