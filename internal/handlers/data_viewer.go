package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dadidelux/sheng-project/internal/export"
	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/internal/query"
	"github.com/dadidelux/sheng-project/internal/schema"
	"github.com/dadidelux/sheng-project/pkg/logger"
)

// DataProvider is the slice of DataService the viewer endpoints need.
type DataProvider interface {
	Page(ctx context.Context, t *schema.Table, req query.PageRequest, columns []string, filters query.Expression) (*models.DataTableResponse, error)
	Export(ctx context.Context, t *schema.Table, columns []string, filters query.Expression) ([]string, [][]any, error)
	Columns(t *schema.Table) []models.ColumnInfo
}

// DataViewerHandler serves the paginated table views, column listings and
// CSV exports.
type DataViewerHandler struct {
	data DataProvider
}

// NewDataViewerHandler creates a new DataViewerHandler
func NewDataViewerHandler(data DataProvider) *DataViewerHandler {
	return &DataViewerHandler{data: data}
}

// PovertyData returns a page of the household survey table.
func (h *DataViewerHandler) PovertyData(c *gin.Context) {
	h.page(c, schema.PovertyData)
}

// Predictions returns a page of the prediction log.
func (h *DataViewerHandler) Predictions(c *gin.Context) {
	h.page(c, schema.Predictions)
}

// PovertyDataColumns lists the survey table columns.
func (h *DataViewerHandler) PovertyDataColumns(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Columns(schema.PovertyData))
}

// PredictionsColumns lists the prediction log columns.
func (h *DataViewerHandler) PredictionsColumns(c *gin.Context) {
	c.JSON(http.StatusOK, h.data.Columns(schema.Predictions))
}

// ExportPovertyData streams the survey table as a CSV attachment.
func (h *DataViewerHandler) ExportPovertyData(c *gin.Context) {
	h.export(c, schema.PovertyData, "poverty_data")
}

// ExportPredictions streams the prediction log as a CSV attachment.
func (h *DataViewerHandler) ExportPredictions(c *gin.Context) {
	h.export(c, schema.Predictions, "predictions")
}

func (h *DataViewerHandler) page(c *gin.Context, t *schema.Table) {
	req, ok := parsePageRequest(c)
	if !ok {
		return
	}

	result, err := h.data.Page(c.Request.Context(), t, req, parseColumns(c), parseFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *DataViewerHandler) export(c *gin.Context, t *schema.Table, filePrefix string) {
	projection, rows, err := h.data.Export(c.Request.Context(), t, parseColumns(c), parseFilters(c))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, projection, rows); err != nil {
		respondError(c, err)
		return
	}

	filename := filePrefix + "_" + time.Now().Format("20060102_150405") + ".csv"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// parsePageRequest validates page/limit. Out-of-range values are rejected
// with 400 before any store call.
func parsePageRequest(c *gin.Context) (query.PageRequest, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return query.PageRequest{}, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return query.PageRequest{}, false
	}

	req := query.PageRequest{Page: page, Limit: limit}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return query.PageRequest{}, false
	}
	return req, true
}

// parseColumns splits the comma-separated columns parameter.
func parseColumns(c *gin.Context) []string {
	raw := c.Query("columns")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	columns := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			columns = append(columns, name)
		}
	}
	return columns
}

// parseFilters decodes the filters parameter. Malformed JSON degrades to
// "no filter" so a broken saved view in the UI still renders the table.
func parseFilters(c *gin.Context) query.Expression {
	raw := c.Query("filters")
	if raw == "" {
		return nil
	}
	expr, err := query.ParseExpression(raw)
	if err != nil {
		logger.Debug("ignoring malformed filters parameter", "error", err)
		return nil
	}
	return expr
}
