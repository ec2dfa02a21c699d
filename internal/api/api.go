package api

import (
	"net/http"

	dashboardHandler "referral-access/internal/dashboard/handler"
	decisionHandler "referral-access/internal/decision/handler"
	"referral-access/internal/identity"
	"referral-access/internal/observability"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	jwtSecret        string
	logger           *observability.Logger
	dashboardHandler dashboardHandler.Handler
	decisionHandler  decisionHandler.Handler
}

func New(router *gin.RouterGroup, jwtSecret string, logger *observability.Logger,
	dashboardHandler dashboardHandler.Handler, decisionHandler decisionHandler.Handler) API {
	return API{
		router:           router,
		jwtSecret:        jwtSecret,
		logger:           logger,
		dashboardHandler: dashboardHandler,
		decisionHandler:  decisionHandler,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()

	apiGroup := a.router.Group("/api", identity.Middleware(a.jwtSecret, a.logger))
	{
		apiGroup.GET("/dashboard/organisation", a.dashboardHandler.HandleOrganisationDashboard)
		apiGroup.GET("/dashboard/professional", a.dashboardHandler.HandleProfessionalDashboard)

		apiGroup.GET("/requests/:id", a.decisionHandler.HandleGetRequest)
		apiGroup.POST("/requests/:id/accept", a.decisionHandler.HandleAccept)
		apiGroup.POST("/requests/:id/decline", a.decisionHandler.HandleDecline)
		apiGroup.PUT("/requests/:id/status", a.decisionHandler.HandleSetStatus)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
