package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

func newBranchHandler(bs portssvc.BranchSvcFacade) *branchHandler {
	return &branchHandler{branchService: bs}
}

func registerPublicBranchRoutes(rg *gin.RouterGroup, bs portssvc.BranchSvcFacade) {
	h := newBranchHandler(bs)
	rg.GET("/branches", h.listBranches)
}

func registerAdminBranchRoutes(rg *gin.RouterGroup, bs portssvc.BranchSvcFacade) {
	h := newBranchHandler(bs)
	rg.POST("/branches", h.createBranch)
}

// listBranches godoc
// @Summary List branches
// @Description Lists exchange offices in display order
// @Tags branches
// @Produce  json
// @Success 200 {array} dto.BranchResponse
// @Failure 500 {object} map[string]string "Failed to list branches"
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list branches")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBranchResponse(branches))
}

// createBranch godoc
// @Summary Create a branch
// @Description Adds an exchange office by hand
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Branch number already exists"
// @Failure 500 {object} map[string]string "Failed to create branch"
// @Security BearerAuth
// @Router /admin/branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBranch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to create branch")
		return
	}
	logger.Info("Branch created successfully", slog.Int64("branch_id", branch.ID))
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}
