// internal/handler/print_handler.go
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printer-service/internal/service"
	"printer-service/internal/utils"
)

// PrintHandler handles print job HTTP requests
type PrintHandler struct {
	printService *service.PrintService
	events       *PrinterEventHandler
	logger       *utils.ServiceLogger
}

// NewPrintHandler creates a new print handler
func NewPrintHandler(printService *service.PrintService, events *PrinterEventHandler, logger *zap.Logger) *PrintHandler {
	return &PrintHandler{
		printService: printService,
		events:       events,
		logger:       utils.NewServiceLogger(logger, "print-handler"),
	}
}

// RegisterRoutes registers print routes
func (h *PrintHandler) RegisterRoutes(router *gin.RouterGroup) {
	tickets := router.Group("/tickets")
	{
		tickets.POST("/bill", h.PrintBill)
		tickets.POST("/closing-report", h.PrintClosingReport)
	}

	printer := router.Group("/printer")
	{
		printer.POST("/self-test", h.RunSelfTest)
		printer.GET("/status", h.GetStatus)
		printer.GET("/authorized", h.ListAuthorized)
		printer.DELETE("/authorized", h.RevokeAuthorization)
	}
}

// PrintBill prints a customer bill
// @Summary Print bill
// @Description Render and print a customer bill for a table order
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body service.BillRequest true "Bill print request"
// @Success 200 {object} utils.APIResponse{data=service.JobResult} "Bill printed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 503 {object} utils.APIResponse "Printer not ready"
// @Router /tickets/bill [post]
func (h *PrintHandler) PrintBill(c *gin.Context) {
	var req service.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.printService.PrintBill(c.Request.Context(), &req)
	if err != nil {
		h.events.OnJobFailed("", "bill", err)
		utils.FaultResponse(c, "Failed to print bill", err)
		return
	}

	h.events.OnJobCompleted(result.JobID.String(), result.JobType, result.Duration)
	utils.SuccessResponse(c, http.StatusOK, "Bill printed successfully", result)
}

// PrintClosingReport prints the daily sales report
// @Summary Print closing report
// @Description Render and print the end of day sales summary
// @Tags Tickets
// @Accept json
// @Produce json
// @Param request body service.ClosingReportRequest true "Closing report print request"
// @Success 200 {object} utils.APIResponse{data=service.JobResult} "Report printed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 503 {object} utils.APIResponse "Printer not ready"
// @Router /tickets/closing-report [post]
func (h *PrintHandler) PrintClosingReport(c *gin.Context) {
	var req service.ClosingReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.printService.PrintClosingReport(c.Request.Context(), &req)
	if err != nil {
		h.events.OnJobFailed("", "closing_report", err)
		utils.FaultResponse(c, "Failed to print closing report", err)
		return
	}

	h.events.OnJobCompleted(result.JobID.String(), result.JobType, result.Duration)
	utils.SuccessResponse(c, http.StatusOK, "Closing report printed successfully", result)
}

// RunSelfTest prints a connection test page
// @Summary Printer self test
// @Description Print a short test page to verify connectivity
// @Tags Printer
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=service.JobResult} "Test page printed"
// @Failure 503 {object} utils.APIResponse "Printer not ready"
// @Router /printer/self-test [post]
func (h *PrintHandler) RunSelfTest(c *gin.Context) {
	result, err := h.printService.RunSelfTest(c.Request.Context())
	if err != nil {
		h.events.OnJobFailed("", "self_test", err)
		utils.FaultResponse(c, "Failed to print test page", err)
		return
	}

	h.events.OnJobCompleted(result.JobID.String(), result.JobType, result.Duration)
	utils.SuccessResponse(c, http.StatusOK, "Test page printed successfully", result)
}

// GetStatus reports printer readiness
// @Summary Printer status
// @Description Get printer readiness and setup flow state
// @Tags Printer
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=service.PrinterStatus} "Printer status"
// @Router /printer/status [get]
func (h *PrintHandler) GetStatus(c *gin.Context) {
	status := h.printService.Status(c.Request.Context())
	utils.SuccessResponse(c, http.StatusOK, "Printer status retrieved", status)
}

// ListAuthorized lists granted printers
// @Summary List authorized printers
// @Description List serial printers the operator has granted access to
// @Tags Printer
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse "Authorized printers"
// @Router /printer/authorized [get]
func (h *PrintHandler) ListAuthorized(c *gin.Context) {
	printers, err := h.printService.ListAuthorized(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to list printers", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Authorized printers retrieved", gin.H{
		"printers": printers,
		"count":    len(printers),
	})
}

// RevokeAuthorization removes a printer grant
// @Summary Revoke printer authorization
// @Description Remove the grant for a serial port
// @Tags Printer
// @Accept json
// @Produce json
// @Param port query string true "Serial port name"
// @Success 200 {object} utils.APIResponse "Grant revoked"
// @Failure 400 {object} utils.APIResponse "Missing port"
// @Failure 404 {object} utils.APIResponse "Printer not found"
// @Router /printer/authorized [delete]
func (h *PrintHandler) RevokeAuthorization(c *gin.Context) {
	port := c.Query("port")
	if port == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "port query parameter is required", nil)
		return
	}

	if err := h.printService.Revoke(c.Request.Context(), port); err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Failed to revoke printer", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Printer authorization revoked", gin.H{
		"port": port,
	})
}
