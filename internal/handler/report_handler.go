package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"stockintel/internal/model"

	"github.com/gin-gonic/gin"
)

type ReportStore interface {
	GetReports(limit, offset int) ([]model.StoredReport, error)
	GetReportTotal() (int, error)
	GetLatestByTicker(ticker string) (*model.StoredReport, error)
}

type ReportHandler struct {
	repository ReportStore
}

func NewReportHandler(repository ReportStore) *ReportHandler {
	return &ReportHandler{repository: repository}
}

type ReportsResponse struct {
	Items  []model.StoredReport `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	limit := getQueryInt("limit", 10, c)
	offset := getQueryInt("offset", 0, c)

	reports, err := h.repository.GetReports(limit, offset)
	if err != nil {
		slog.Error("error fetching reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetReportTotal()
	if err != nil {
		slog.Error("error fetching report total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if reports == nil {
		reports = []model.StoredReport{}
	}

	c.JSON(http.StatusOK, ReportsResponse{
		Items:  reports,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *ReportHandler) GetLatestReport(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ticker is required"})
		return
	}

	report, err := h.repository.GetLatestByTicker(ticker)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report available for ticker"})
		return
	}
	if err != nil {
		slog.Error("error fetching latest report", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetReportTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsed
}
