package handler

import (
	"net/http"
	"strconv"

	"referral-access/internal/apierrors"
	"referral-access/internal/decision/processor"
	"referral-access/internal/identity"
	"referral-access/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.DecisionProcessor
	logger    *observability.Logger
}

func New(processor processor.DecisionProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleGetRequest handles GET /api/requests/:id
func (h *Handler) HandleGetRequest(c *gin.Context) {
	ctx := c.Request.Context()

	caller, referralID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	referral, err := h.processor.Request(ctx, caller, referralID)
	if err != nil {
		h.logger.Error(ctx, "failed to get request", err)
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, referral)
}

// HandleAccept handles POST /api/requests/:id/accept
func (h *Handler) HandleAccept(c *gin.Context) {
	ctx := c.Request.Context()

	caller, referralID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	updated, err := h.processor.Accept(ctx, caller, referralID)
	if err != nil {
		h.logger.Error(ctx, "failed to accept request", err)
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeclineRequest is the HTTP body for declining a request
type DeclineRequest struct {
	Reason string `json:"reason"`
}

// HandleDecline handles POST /api/requests/:id/decline
func (h *Handler) HandleDecline(c *gin.Context) {
	ctx := c.Request.Context()

	caller, referralID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	var req DeclineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.InfoWithError(ctx, "failed to bind decline request", err)
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidRequest, "invalid request body"))
		return
	}

	updated, err := h.processor.Decline(ctx, caller, referralID, req.Reason)
	if err != nil {
		h.logger.Error(ctx, "failed to decline request", err)
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// SetStatusRequest is the HTTP body for the narrow status-only update
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// HandleSetStatus handles PUT /api/requests/:id/status
func (h *Handler) HandleSetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	caller, referralID, ok := h.callerAndID(c)
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.InfoWithError(ctx, "failed to bind status request", err)
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidRequest, "invalid request body"))
		return
	}

	confirmed, err := h.processor.SetStatus(ctx, caller, referralID, req.Status)
	if err != nil {
		h.logger.Error(ctx, "failed to set request status", err)
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": confirmed})
}

func (h *Handler) callerAndID(c *gin.Context) (identity.CallerIdentity, int64, bool) {
	ctx := c.Request.Context()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		apierrors.RespondWithError(c, identity.ErrMissingToken)
		return identity.CallerIdentity{}, 0, false
	}

	referralID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.InfoWithError(ctx, "failed to parse referral ID", err)
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidRequest, "invalid request id"))
		return identity.CallerIdentity{}, 0, false
	}

	return caller, referralID, true
}
