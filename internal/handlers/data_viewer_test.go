package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dadidelux/sheng-project/internal/models"
	"github.com/dadidelux/sheng-project/internal/query"
	"github.com/dadidelux/sheng-project/internal/schema"
	"github.com/dadidelux/sheng-project/pkg/apperrors"
)

type stubData struct {
	gotTable   *schema.Table
	gotReq     query.PageRequest
	gotColumns []string
	gotFilters query.Expression

	pageResp   *models.DataTableResponse
	pageErr    error
	exportProj []string
	exportRows [][]any
	exportErr  error
}

func (s *stubData) Page(_ context.Context, t *schema.Table, req query.PageRequest, columns []string, filters query.Expression) (*models.DataTableResponse, error) {
	s.gotTable, s.gotReq, s.gotColumns, s.gotFilters = t, req, columns, filters
	if s.pageErr != nil {
		return nil, s.pageErr
	}
	if s.pageResp != nil {
		return s.pageResp, nil
	}
	return &models.DataTableResponse{Data: []map[string]any{}, Page: req.Page, Limit: req.Limit}, nil
}

func (s *stubData) Export(_ context.Context, t *schema.Table, columns []string, filters query.Expression) ([]string, [][]any, error) {
	s.gotTable, s.gotColumns, s.gotFilters = t, columns, filters
	if s.exportErr != nil {
		return nil, nil, s.exportErr
	}
	return s.exportProj, s.exportRows, nil
}

func (s *stubData) Columns(t *schema.Table) []models.ColumnInfo {
	cols := t.Columns()
	out := make([]models.ColumnInfo, len(cols))
	for i, c := range cols {
		out[i] = models.ColumnInfo{Name: c.Name, Type: string(c.Type)}
	}
	return out
}

func newViewerRouter(stub *stubData) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDataViewerHandler(stub)
	r := gin.New()
	r.GET("/poverty-data", h.PovertyData)
	r.GET("/poverty-data/columns", h.PovertyDataColumns)
	r.GET("/poverty-data/export", h.ExportPovertyData)
	r.GET("/predictions", h.Predictions)
	return r
}

func doGet(r *gin.Engine, path string, params url.Values) *httptest.ResponseRecorder {
	target := path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestPageDefaults(t *testing.T) {
	stub := &stubData{}
	w := doGet(newViewerRouter(stub), "/poverty-data", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if stub.gotReq.Page != 1 || stub.gotReq.Limit != 100 {
		t.Errorf("defaults = %+v, want page=1 limit=100", stub.gotReq)
	}
	if stub.gotTable != schema.PovertyData {
		t.Error("wrong table passed to service")
	}
}

func TestPageValidation(t *testing.T) {
	cases := []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"limit": {"0"}},
		{"limit": {"1001"}},
		{"limit": {"xyz"}},
	}
	for _, params := range cases {
		stub := &stubData{}
		w := doGet(newViewerRouter(stub), "/poverty-data", params)
		if w.Code != http.StatusBadRequest {
			t.Errorf("params %v: status = %d, want 400", params, w.Code)
		}
		if stub.gotTable != nil {
			t.Errorf("params %v: service must not be called on invalid input", params)
		}
	}
}

func TestPageParsesColumnsAndFilters(t *testing.T) {
	stub := &stubData{}
	params := url.Values{
		"page":    {"3"},
		"limit":   {"100"},
		"columns": {"hh_id, poor ,"},
		"filters": {`{"no_of_indiv": {"min": 5}}`},
	}
	w := doGet(newViewerRouter(stub), "/poverty-data", params)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !reflect.DeepEqual(stub.gotColumns, []string{"hh_id", "poor"}) {
		t.Errorf("columns = %v", stub.gotColumns)
	}
	f, ok := stub.gotFilters["no_of_indiv"]
	if !ok || f.Kind != query.KindRange || f.Min != float64(5) {
		t.Errorf("filters = %+v", stub.gotFilters)
	}
}

func TestPageMalformedFiltersIgnored(t *testing.T) {
	stub := &stubData{}
	params := url.Values{"filters": {`{"broken`}}
	w := doGet(newViewerRouter(stub), "/poverty-data", params)

	if w.Code != http.StatusOK {
		t.Fatalf("malformed filters must not fail the request, status = %d", w.Code)
	}
	if stub.gotFilters != nil {
		t.Errorf("malformed filters should degrade to no filter, got %+v", stub.gotFilters)
	}
}

func TestPageStoreError(t *testing.T) {
	stub := &stubData{pageErr: apperrors.Store(context.DeadlineExceeded)}
	w := doGet(newViewerRouter(stub), "/poverty-data", nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body["error"] != "database error" {
		t.Errorf("error message = %q", body["error"])
	}
}

func TestColumnsEndpoint(t *testing.T) {
	w := doGet(newViewerRouter(&stubData{}), "/poverty-data/columns", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var cols []models.ColumnInfo
	if err := json.Unmarshal(w.Body.Bytes(), &cols); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(cols) != 28 {
		t.Errorf("got %d columns, want 28", len(cols))
	}
	if cols[0].Name != "hh_id" || cols[0].Type != "String" {
		t.Errorf("first column = %+v", cols[0])
	}
}

func TestExportHeadersAndBody(t *testing.T) {
	stub := &stubData{
		exportProj: []string{"hh_id", "poor"},
		exportRows: [][]any{{"H-1", int64(1)}},
	}
	w := doGet(newViewerRouter(stub), "/poverty-data/export", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment; filename=poverty_data_") ||
		!strings.HasSuffix(disposition, ".csv") {
		t.Errorf("Content-Disposition = %q", disposition)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := w.Body.String(); got != "hh_id,poor\nH-1,1\n" {
		t.Errorf("body = %q", got)
	}
}

func TestExportNoRowsHeaderOnly(t *testing.T) {
	stub := &stubData{exportProj: []string{"hh_id", "poor"}}
	w := doGet(newViewerRouter(stub), "/poverty-data/export", nil)

	if got := w.Body.String(); got != "hh_id,poor\n" {
		t.Errorf("empty export should be header only, got %q", got)
	}
}

func TestPredictionsUsesPredictionTable(t *testing.T) {
	stub := &stubData{}
	w := doGet(newViewerRouter(stub), "/predictions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if stub.gotTable != schema.Predictions {
		t.Error("predictions route should query the prediction log table")
	}
}
