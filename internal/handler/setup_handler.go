// internal/handler/setup_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/printer"
	"printer-service/internal/serialhost"
	"printer-service/internal/utils"
	"printer-service/pkg/fault"
)

// SetupHandler drives the printer connection setup flow
type SetupHandler struct {
	setup  *printer.Setup
	events *PrinterEventHandler
	logger *utils.ServiceLogger
}

// ConnectRequest controls how the setup flow requests a port
type ConnectRequest struct {
	UseFilter *bool `json:"use_filter"`
}

// NewSetupHandler creates a new setup handler
func NewSetupHandler(setup *printer.Setup, events *PrinterEventHandler, logger *zap.Logger) *SetupHandler {
	return &SetupHandler{
		setup:  setup,
		events: events,
		logger: utils.NewServiceLogger(logger, "setup-handler"),
	}
}

// RegisterRoutes registers setup routes
func (h *SetupHandler) RegisterRoutes(router *gin.RouterGroup) {
	setup := router.Group("/printer/setup")
	{
		setup.GET("", h.GetState)
		setup.GET("/candidates", h.Candidates)
		setup.POST("/check", h.Check)
		setup.POST("/connect", h.Connect)
		setup.POST("/reset", h.Reset)
	}
}

// GetState returns the current setup flow state
// @Summary Setup state
// @Description Get the current printer setup flow state
// @Tags Setup
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=printer.SetupSnapshot} "Setup state"
// @Router /printer/setup [get]
func (h *SetupHandler) GetState(c *gin.Context) {
	snapshot := h.setup.Snapshot()
	utils.SuccessResponse(c, http.StatusOK, "Setup state retrieved", snapshot)
}

// Candidates lists the devices a connect attempt would offer
// @Summary Setup candidates
// @Description List the serial devices the chooser would offer
// @Tags Setup
// @Accept json
// @Produce json
// @Param unfiltered query bool false "Skip the vendor filter"
// @Success 200 {object} utils.APIResponse{data=[]serialhost.DeviceInfo} "Candidate devices"
// @Failure 501 {object} utils.APIResponse "Serial devices not supported on this host"
// @Router /printer/setup/candidates [get]
func (h *SetupHandler) Candidates(c *gin.Context) {
	useFilter := c.Query("unfiltered") != "true"

	candidates, err := h.setup.Candidates(c.Request.Context(), useFilter)
	if err != nil {
		utils.FaultResponse(c, "Failed to list candidate devices", err)
		return
	}
	if candidates == nil {
		candidates = []serialhost.DeviceInfo{}
	}

	utils.SuccessResponse(c, http.StatusOK, "Candidate devices retrieved", candidates)
}

// Check re-runs the initial environment and printer availability check
// @Summary Run setup check
// @Description Probe platform support and look for an available printer
// @Tags Setup
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=printer.SetupSnapshot} "Check completed"
// @Router /printer/setup/check [post]
func (h *SetupHandler) Check(c *gin.Context) {
	snapshot := h.setup.Mount(c.Request.Context())
	h.events.OnSetupStateChanged(string(snapshot.State), snapshot.Message)

	utils.SuccessResponse(c, http.StatusOK, "Setup check completed", snapshot)
}

// Connect requests access to a printer port
// @Summary Connect printer
// @Description Request access to a serial printer port
// @Tags Setup
// @Accept json
// @Produce json
// @Param request body ConnectRequest false "Connect options"
// @Success 200 {object} utils.APIResponse{data=printer.SetupSnapshot} "Resulting setup state"
// @Failure 409 {object} utils.APIResponse "Connect not allowed from current state"
// @Router /printer/setup/connect [post]
func (h *SetupHandler) Connect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	useFilter := true
	if req.UseFilter != nil {
		useFilter = *req.UseFilter
	}

	snapshot, err := h.setup.RequestAcquire(c.Request.Context(), useFilter)
	if err != nil {
		utils.ErrorResponse(c, http.StatusConflict, "Connect not allowed", err)
		return
	}

	h.events.OnSetupStateChanged(string(snapshot.State), snapshot.Message)

	if snapshot.State == printer.SetupError {
		// The attempt ran but the printer could not be acquired. The
		// snapshot still goes out so the frontend can render the fault.
		utils.FailureResponse(c, http.StatusOK, "Printer connection failed",
			snapshot.FaultCode, fault.RetryableCode(snapshot.FaultCode), snapshot)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printer connected", snapshot)
}

// Reset returns a connected setup flow to the available state
// @Summary Reset setup
// @Description Return the setup flow to the available state
// @Tags Setup
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=printer.SetupSnapshot} "Setup reset"
// @Failure 409 {object} utils.APIResponse "Reset not allowed from current state"
// @Router /printer/setup/reset [post]
func (h *SetupHandler) Reset(c *gin.Context) {
	snapshot, err := h.setup.Reset()
	if err != nil {
		utils.ErrorResponse(c, http.StatusConflict, "Reset not allowed", err)
		return
	}

	h.events.OnSetupStateChanged(string(snapshot.State), snapshot.Message)
	utils.SuccessResponse(c, http.StatusOK, "Setup reset", snapshot)
}
