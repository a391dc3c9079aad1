package handler

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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-listing-api/internal/domains/listing/model"
	"realestate-listing-api/internal/domains/listing/repository"
	"realestate-listing-api/internal/domains/listing/service"
	"realestate-listing-api/internal/shared/middleware"
	"realestate-listing-api/internal/shared/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer dựng router đầy đủ middleware trên memory store
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	original := log.Logger
	log.Logger = zerolog.Nop()
	t.Cleanup(func() { log.Logger = original })

	store := repository.NewMemoryStore()
	svc := service.NewService(repository.NewMemoryRepository(store), repository.NewMemoryUnitOfWork(store))
	return newRouter(svc)
}

func newRouter(svc service.Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorLogging("RealEstateListingApi"), middleware.UnitOfWork())
	RegisterRoutes(r, NewListingHandler(svc))
	return r
}

func doRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createListing(t *testing.T, r http.Handler, payload map[string]interface{}) model.ListingResponse {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/Listings", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestCreate_ThenGetByID(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/api/Listings", map[string]interface{}{
		"title":       "Integration Test Home",
		"price":       500000,
		"description": "Nice place",
		"address":     "123 Test Street",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "/api/Listings/"+created.ID.String(), w.Header().Get("Location"))
	assert.Contains(t, w.Body.String(), `"price":500000`)

	w = doRequest(r, http.MethodGet, "/api/Listings/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched model.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Integration Test Home", fetched.Title)
	assert.True(t, decimal.NewFromInt(500000).Equal(fetched.Price))
	require.NotNil(t, fetched.Address)
	assert.Equal(t, "123 Test Street", *fetched.Address)
}

func TestGetAll_EmptyReturnsArray(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/Listings", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetAll_ReturnsCreatedListings(t *testing.T) {
	r := newTestServer(t)
	createListing(t, r, map[string]interface{}{"title": "A", "price": 100})
	createListing(t, r, map[string]interface{}{"title": "B", "price": 200})

	w := doRequest(r, http.MethodGet, "/api/Listings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listings []model.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listings))
	require.Len(t, listings, 2)
	titles := []string{listings[0].Title, listings[1].Title}
	assert.ElementsMatch(t, []string{"A", "B"}, titles)
}

func TestGetByID_Missing(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodGet, "/api/Listings/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestNonUUIDIDIsNotFound(t *testing.T) {
	r := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		w := doRequest(r, method, "/api/Listings/not-a-guid", map[string]interface{}{"title": "T", "price": 1})
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/api/Listings", map[string]interface{}{
		"title": "",
		"price": 0,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var failures []model.ValidationFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failures))
	assert.Equal(t, []model.ValidationFailure{
		{Field: "title", Message: "Title is required."},
		{Field: "price", Message: "Price must be greater than zero."},
	}, failures)

	w = doRequest(r, http.MethodGet, "/api/Listings", nil)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreate_MalformedBody(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/api/Listings", `{"title": "x", "price": `)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var failures []model.ValidationFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failures))
	require.Len(t, failures, 1)
	assert.Equal(t, "body", failures[0].Field)
}

func TestCreate_DuplicateIsBusinessError(t *testing.T) {
	r := newTestServer(t)
	payload := map[string]interface{}{"title": "Same", "price": 10, "address": "1 Main St"}
	createListing(t, r, payload)

	w := doRequest(r, http.MethodPost, "/api/Listings", payload)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FAILED", body.Status)
	assert.Equal(t, "Business", body.Severity)
	assert.Equal(t, "[ListingService] A listing with the same title and address already exists.", body.Message)
	assert.Equal(t, w.Header().Get(middleware.CorrelationIDHeader), body.CorrelationID)
}

func TestUpdate_ReplacesListing(t *testing.T) {
	r := newTestServer(t)
	created := createListing(t, r, map[string]interface{}{
		"title": "Old", "price": 10, "description": "old desc", "address": "Old St",
	})
	path := "/api/Listings/" + created.ID.String()

	w := doRequest(r, http.MethodPut, path, map[string]interface{}{"title": "New", "price": 20.5})
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(r, http.MethodGet, path, nil)
	var fetched model.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "New", fetched.Title)
	assert.True(t, decimal.RequireFromString("20.5").Equal(fetched.Price))
	assert.Nil(t, fetched.Description)
	assert.Nil(t, fetched.Address)
}

func TestUpdate_KeepingOwnTitleAndAddress(t *testing.T) {
	r := newTestServer(t)
	created := createListing(t, r, map[string]interface{}{"title": "Mine", "price": 10, "address": "A"})

	w := doRequest(r, http.MethodPut, "/api/Listings/"+created.ID.String(),
		map[string]interface{}{"title": "Mine", "price": 15, "address": "A"})

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdate_Missing(t *testing.T) {
	r := newTestServer(t)

	w := doRequest(r, http.MethodPut, "/api/Listings/"+uuid.NewString(), map[string]interface{}{"title": "T", "price": 1})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdate_InvalidPayload(t *testing.T) {
	r := newTestServer(t)
	created := createListing(t, r, map[string]interface{}{"title": "T", "price": 1})

	w := doRequest(r, http.MethodPut, "/api/Listings/"+created.ID.String(), map[string]interface{}{"title": "T", "price": -5})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Price must be greater than zero.")
}

func TestDelete_ThenGetIsNotFound(t *testing.T) {
	r := newTestServer(t)
	created := createListing(t, r, map[string]interface{}{"title": "Gone", "price": 1})
	path := "/api/Listings/" + created.ID.String()

	w := doRequest(r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, path, nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodDelete, path, nil).Code)
}

type failingService struct {
	service.Service
}

func (failingService) GetAll(context.Context) ([]model.ListingResponse, error) {
	return nil, errors.New("database unavailable")
}

func TestGetAll_StorageFailureIsTechnical(t *testing.T) {
	buf := &bytes.Buffer{}
	original := log.Logger
	log.Logger = zerolog.New(buf)
	t.Cleanup(func() { log.Logger = original })

	r := newRouter(failingService{})

	w := doRequest(r, http.MethodGet, "/api/Listings", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Technical", body.Severity)
	assert.Equal(t, "database unavailable", body.Message)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "FAILED", entry["status"])
	assert.Equal(t, "database unavailable", entry["message"])
	assert.NotEmpty(t, entry["stack_trace"])
}
