package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers the router needs
type HandlerBundle struct {
	Catalog      *CatalogHandler
	Cases        *CaseHandler
	Files        *FileHandler
	Contributors *ContributorHandler
	Consent      *ConsentHandler
	Accounts     *AccountHandler
}

// RegisterRoutes installs CORS and every endpoint on r
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle, allowedOrigins []string) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	api := r.Group("/api")
	{
		api.GET("/categories", hb.Catalog.ListCategories)
		api.GET("/categories/:id", hb.Catalog.GetCategory)
		api.GET("/regions", hb.Catalog.ListRegions)
		api.GET("/how-it-works", hb.Catalog.HowItWorks)

		// Case wizard
		api.POST("/cases", hb.Cases.StartCase)
		api.GET("/cases/:id", hb.Cases.GetCase)
		api.PUT("/cases/:id", hb.Cases.UpdateCase)
		api.DELETE("/cases/:id", hb.Cases.DiscardCase)
		api.POST("/cases/:id/next", hb.Cases.NextStep)
		api.POST("/cases/:id/back", hb.Cases.PreviousStep)
		api.POST("/cases/:id/files", hb.Files.StageFiles)
		api.DELETE("/cases/:id/files/:index", hb.Files.RemoveFile)

		// Directory
		api.GET("/contributors", hb.Contributors.ListContributors)
		api.GET("/contributors/:id", hb.Contributors.GetContributor)
		api.POST("/contributors/:id/connect", hb.Contributors.Connect)

		// Consent gates
		api.POST("/consent", hb.Consent.OpenGate)
		api.GET("/consent/:id", hb.Consent.GetGate)
		api.PUT("/consent/:id", hb.Consent.SetAffirmation)
		api.POST("/consent/:id/accept", hb.Consent.AcceptGate)
		api.POST("/consent/:id/cancel", hb.Consent.CancelGate)

		// Accounts
		api.POST("/auth/signin", hb.Accounts.SignIn)
		api.POST("/auth/google", hb.Accounts.SignInWithGoogle)
		api.POST("/applications", hb.Accounts.SubmitApplication)
	}
}
