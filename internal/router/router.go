package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/polomanager/polomanager/internal/handlers"
	"github.com/polomanager/polomanager/internal/middleware"
	"github.com/polomanager/polomanager/internal/models"
	"github.com/polomanager/polomanager/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	managerOnly := middleware.RequireRoles(models.RoleManager)
	staffOnly := middleware.RequireRoles(models.RoleCoach, models.RoleManager)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:team_id", middleware.AuthMiddleware(), handlers.TeamFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
			auth.POST("/register", handlers.Register)
		}

		managers := api.Group("/managers")
		{
			// Manager creation is public: it is the entry point for a new
			// organization, like registration.
			managers.POST("", handlers.CreateManager)

			protected := managers.Group("", middleware.AuthMiddleware(), managerOnly)
			{
				protected.GET("", handlers.ListManagers)
				protected.GET("/:id", handlers.GetManager)
				protected.PUT("/:id", handlers.UpdateManager)
				protected.DELETE("/:id", handlers.DeleteManager)
				protected.GET("/:id/teams", handlers.GetTeamsByManager)
				protected.GET("/:id/teams/:team_id/coach", handlers.GetCoachByTeam)
			}
		}

		coaches := api.Group("/coachs", middleware.AuthMiddleware())
		{
			coaches.POST("", managerOnly, handlers.CreateCoach)
		}

		players := api.Group("/players", middleware.AuthMiddleware())
		{
			players.POST("", handlers.CreatePlayer)
			players.GET("", handlers.ListTeamPlayers)
			players.GET("/:id/stats", handlers.GetPlayerStats)
			players.PUT("/:id", staffOnly, handlers.UpdatePlayer)
			players.DELETE("/:id", staffOnly, handlers.DeletePlayer)
		}

		teams := api.Group("/teams", middleware.AuthMiddleware())
		{
			teams.POST("", managerOnly, handlers.CreateTeam)
			teams.GET("", handlers.ListTeams)
			teams.GET("/:id", handlers.GetTeamDetails)
			teams.GET("/:id/players", handlers.ListTeamPlayersByID)
			teams.GET("/:id/schedules", handlers.ListSchedulesByTeam)
			teams.PUT("/:id", managerOnly, handlers.UpdateTeam)
			teams.DELETE("/:id", managerOnly, handlers.DeleteTeam)
		}

		schedules := api.Group("/schedules", middleware.AuthMiddleware())
		{
			schedules.GET("", handlers.ListSchedulesByTeam)
			schedules.POST("", handlers.CreateSchedule)
			schedules.PUT("/:id", handlers.UpdateSchedule)
			schedules.DELETE("/:id", handlers.DeleteSchedule)
		}

		messages := api.Group("/messages", middleware.AuthMiddleware())
		{
			messages.POST("", handlers.SendMessage)
			messages.GET("/received", handlers.GetReceivedMessages)
			messages.GET("/sent", handlers.GetSentMessages)
			messages.GET("/contacts", handlers.GetContacts)
		}
	}

	return r
}
