package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"constellation/internal/models/db_models"
	"constellation/internal/models/request_models"
)

type fakePersonalService struct {
	rows    []db_models.PersonalExpense
	err     error
	deleted []string
}

func (f *fakePersonalService) Create(ctx context.Context, userID string, req *request_models.PersonalEntryRequest) (*db_models.PersonalExpense, error) {
	if f.err != nil {
		return nil, f.err
	}
	entry := &db_models.PersonalExpense{
		UserID:      uuid.MustParse(userID),
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	}
	entry.ID = uuid.New()
	f.rows = append(f.rows, *entry)
	return entry, nil
}

func (f *fakePersonalService) List(ctx context.Context, userID string) ([]db_models.PersonalExpense, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakePersonalService) Update(ctx context.Context, userID string, req *request_models.PersonalEntryUpdateRequest) (*db_models.PersonalExpense, error) {
	if f.err != nil {
		return nil, f.err
	}
	row := f.rows[0]
	if req.Description != nil {
		row.Description = *req.Description
	}
	return &row, nil
}

func (f *fakePersonalService) Delete(ctx context.Context, userID, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func personalRouter(svc *fakePersonalService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for the JWT middleware.
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.NewString())
	})
	ctrl := NewPersonalController(svc, svc)
	ctrl.RegisterRoutes(r.Group("/api/personal"))
	return r
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPersonalListReturnsRawRows(t *testing.T) {
	svc := &fakePersonalService{rows: []db_models.PersonalExpense{
		{Description: "Mercado", Amount: 12345, Category: "food", Date: "2026-08-01"},
	}}
	r := personalRouter(svc)

	w := doReq(t, r, http.MethodGet, "/api/personal/expenses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Raw array, no envelope.
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Mercado", rows[0]["description"])
	assert.Equal(t, float64(12345), rows[0]["amount"])
	assert.NotContains(t, rows[0], "status")
	assert.NotContains(t, rows[0], "data")
}

func TestPersonalCreateReturnsRow(t *testing.T) {
	svc := &fakePersonalService{}
	r := personalRouter(svc)

	w := doReq(t, r, http.MethodPost, "/api/personal/income", request_models.PersonalEntryRequest{
		Description: "Comissão",
		Amount:      500000,
		Category:    "commission",
		Date:        "2026-08-15",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var row map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &row))
	assert.Equal(t, "Comissão", row["description"])
	assert.NotEmpty(t, row["id"])
}

func TestPersonalDeleteRequiresID(t *testing.T) {
	svc := &fakePersonalService{}
	r := personalRouter(svc)

	w := doReq(t, r, http.MethodDelete, "/api/personal/expenses", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "ID is required"}`, w.Body.String())
}

func TestPersonalDelete(t *testing.T) {
	svc := &fakePersonalService{}
	r := personalRouter(svc)

	w := doReq(t, r, http.MethodDelete, "/api/personal/expenses?id=abc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true}`, w.Body.String())
	assert.Equal(t, []string{"abc"}, svc.deleted)
}

func TestPersonalErrorShape(t *testing.T) {
	svc := &fakePersonalService{err: errors.New("boom")}
	r := personalRouter(svc)

	w := doReq(t, r, http.MethodGet, "/api/personal/income", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "boom"}`, w.Body.String())
}
