package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	portssvc "github.com/SscSPs/exchange_rates_app/internal/core/ports/services"
	"github.com/SscSPs/exchange_rates_app/internal/dto"
	"github.com/SscSPs/exchange_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ratesHandler serves the public rate list and the admin rate tooling.
type ratesHandler struct {
	rateService    portssvc.RateSvcFacade
	uploadService  portssvc.RateUploadSvc
	maxUploadBytes int64
}

func newRatesHandler(rs portssvc.RateSvcFacade, us portssvc.RateUploadSvc, maxUploadBytes int64) *ratesHandler {
	return &ratesHandler{
		rateService:    rs,
		uploadService:  us,
		maxUploadBytes: maxUploadBytes,
	}
}

// registerPublicRateRoutes registers the customer-facing rate list.
func registerPublicRateRoutes(rg *gin.RouterGroup, rs portssvc.RateSvcFacade) {
	h := newRatesHandler(rs, nil, 0)
	rg.GET("/currencies", h.listRates)
}

// registerAdminRateRoutes registers upload, template and override editing.
func registerAdminRateRoutes(rg *gin.RouterGroup, rs portssvc.RateSvcFacade, us portssvc.RateUploadSvc, maxUploadBytes int64) {
	h := newRatesHandler(rs, us, maxUploadBytes)

	rates := rg.Group("/rates")
	{
		rates.POST("/upload", h.uploadRates)
		rates.GET("/template", h.downloadTemplate)
		rates.PUT("/branch/:branchID/:code", h.editBranchRate)
		rates.DELETE("/branch/:branchID/:code", h.revertBranchRate)
	}
}

// listRates godoc
// @Summary List current exchange rates
// @Description Resolves every active currency at a branch, or at the primary branch when none is given
// @Tags rates
// @Produce  json
// @Param   branch_id query int false "Branch ID"
// @Success 200 {object} dto.ListRatesResponse
// @Failure 400 {object} map[string]string "Invalid branch id"
// @Failure 404 {object} map[string]string "Branch not found"
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Router /currencies [get]
func (h *ratesHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rates, meta, err := h.rateService.ListRates(c.Request.Context(), params.BranchID)
	if err != nil {
		respondError(c, logger, err, "Failed to list rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRatesResponse(rates, meta))
}

// uploadRates godoc
// @Summary Upload a rates workbook
// @Description Ingests an .xlsx/.xls workbook in one transaction. Row problems are returned as warnings.
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file true "Rates workbook"
// @Success 200 {object} domain.UploadSummary
// @Failure 400 {object} map[string]string "Missing or unreadable file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 413 {object} map[string]string "File too large"
// @Failure 500 {object} map[string]string "Failed to process workbook"
// @Security BearerAuth
// @Router /admin/rates/upload [post]
func (h *ratesHandler) uploadRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		logger.Error("Admin ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds %d bytes", h.maxUploadBytes)})
			return
		}
		logger.Warn("Upload without file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Form field 'file' is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return
	}

	logger.Info("Received rates workbook", slog.String("filename", fh.Filename), slog.Int("bytes", len(data)))
	summary, err := h.uploadService.Upload(c.Request.Context(), fh.Filename, data, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to process workbook")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// downloadTemplate godoc
// @Summary Download the rates template
// @Description Exports current base and branch rates as an editable workbook
// @Tags admin
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build template"
// @Security BearerAuth
// @Router /admin/rates/template [get]
func (h *ratesHandler) downloadTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	buf, err := h.uploadService.ExportTemplate(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to build template")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="rates_template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// editBranchRate godoc
// @Summary Edit a branch override
// @Description Applies a partial override. Setting isActive to true on a non-major currency without prices reverts the branch to the base rate.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   branchID path int true "Branch ID"
// @Param   code path string true "Currency code"
// @Param   rate body dto.EditBranchRateRequest true "Override fields"
// @Success 200 {object} dto.BranchRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Branch or currency not found"
// @Failure 500 {object} map[string]string "Failed to edit branch rate"
// @Security BearerAuth
// @Router /admin/rates/branch/{branchID}/{code} [put]
func (h *ratesHandler) editBranchRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	branchID, code, ok := branchRatePath(c)
	if !ok {
		return
	}

	var req dto.EditBranchRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditBranchRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	br, err := h.rateService.EditBranchRate(c.Request.Context(), branchID, code, req, adminID)
	if err != nil {
		respondError(c, logger, err, "Failed to edit branch rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchRateResponse(branchID, code, br))
}

// revertBranchRate godoc
// @Summary Revert a branch to the base rate
// @Description Deletes the branch override for one currency
// @Tags admin
// @Param   branchID path int true "Branch ID"
// @Param   code path string true "Currency code"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Override not found"
// @Failure 500 {object} map[string]string "Failed to revert branch rate"
// @Security BearerAuth
// @Router /admin/rates/branch/{branchID}/{code} [delete]
func (h *ratesHandler) revertBranchRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adminID, ok := middleware.GetAdminIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	branchID, code, ok := branchRatePath(c)
	if !ok {
		return
	}

	if err := h.rateService.RevertBranchRate(c.Request.Context(), branchID, code, adminID); err != nil {
		respondError(c, logger, err, "Failed to revert branch rate")
		return
	}
	c.Status(http.StatusNoContent)
}

func branchRatePath(c *gin.Context) (int64, string, bool) {
	branchID, err := strconv.ParseInt(c.Param("branchID"), 10, 64)
	if err != nil || branchID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Branch ID must be a positive integer"})
		return 0, "", false
	}
	code := strings.ToUpper(c.Param("code"))
	if len(code) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return 0, "", false
	}
	return branchID, code, true
}
