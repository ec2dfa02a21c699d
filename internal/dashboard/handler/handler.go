package handler

import (
	"net/http"
	"strconv"

	"referral-access/internal/apierrors"
	"referral-access/internal/dashboard/processor"
	"referral-access/internal/identity"
	"referral-access/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.DashboardProcessor
	logger    *observability.Logger
}

func New(processor processor.DashboardProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleOrganisationDashboard handles GET /api/dashboard/organisation
func (h *Handler) HandleOrganisationDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		apierrors.RespondWithError(c, identity.ErrMissingToken)
		return
	}

	response, err := h.processor.OrganisationDashboard(ctx, caller, dashboardRequest(c))
	if err != nil {
		h.logger.Error(ctx, "failed to load organisation dashboard", err)
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HandleProfessionalDashboard handles GET /api/dashboard/professional
func (h *Handler) HandleProfessionalDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		apierrors.RespondWithError(c, identity.ErrMissingToken)
		return
	}

	response, err := h.processor.ProfessionalDashboard(ctx, caller, dashboardRequest(c))
	if err != nil {
		h.logger.Error(ctx, "failed to load professional dashboard", err)
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func dashboardRequest(c *gin.Context) processor.DashboardRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	return processor.DashboardRequest{
		Page:   page,
		Column: c.Query("column"),
		Sort:   c.Query("sort"),
	}
}
