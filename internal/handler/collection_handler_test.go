package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tanush-em/QWERTY/internal/service"
	appErrors "github.com/tanush-em/QWERTY/pkg/errors"
)

type responseEnvelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Count   *int64                 `json:"count"`
	Limit   *int64                 `json:"limit"`
	Skip    *int64                 `json:"skip"`
	Error   string                 `json:"error"`
	Meta    map[string]interface{} `json:"meta"`
}

type fakeReadModel struct {
	listResult *service.ListResult
	listErr    error
	getDoc     bson.M
	getErr     error
	infos      []service.CollectionInfo

	gotName  string
	gotLimit int64
	gotSkip  int64
	gotID    string
}

func (f *fakeReadModel) List(_ context.Context, name string, limit, skip int64) (*service.ListResult, error) {
	f.gotName, f.gotLimit, f.gotSkip = name, limit, skip
	return f.listResult, f.listErr
}

func (f *fakeReadModel) Get(_ context.Context, name, id string) (bson.M, error) {
	f.gotName, f.gotID = name, id
	return f.getDoc, f.getErr
}

func (f *fakeReadModel) Collections(context.Context) ([]service.CollectionInfo, error) {
	return f.infos, nil
}

func performList(handler *CollectionHandler, target, collection string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = gin.Params{{Key: "collection", Value: collection}}
	handler.List(c)
	return rec
}

func TestCollectionListEnvelope(t *testing.T) {
	fake := &fakeReadModel{
		listResult: &service.ListResult{
			Records: []bson.M{{"fullName": "Aisha Khan"}, {"fullName": "Rajesh Kumar"}},
			Count:   120,
			Limit:   100,
			Skip:    0,
		},
	}
	rec := performList(NewCollectionHandler(fake), "/api/students", "students")

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Count)
	assert.Equal(t, int64(120), *envelope.Count)
	require.NotNil(t, envelope.Limit)
	assert.Equal(t, int64(100), *envelope.Limit)
	require.NotNil(t, envelope.Skip)
	assert.Equal(t, int64(0), *envelope.Skip)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(envelope.Data, &records))
	assert.Len(t, records, 2)
}

func TestCollectionListParsesPagination(t *testing.T) {
	fake := &fakeReadModel{listResult: &service.ListResult{Records: []bson.M{}, Limit: 50, Skip: 100}}
	performList(NewCollectionHandler(fake), "/api/students?limit=50&skip=100", "students")

	assert.Equal(t, int64(50), fake.gotLimit)
	assert.Equal(t, int64(100), fake.gotSkip)
}

func TestCollectionListNonNumericPagination(t *testing.T) {
	fake := &fakeReadModel{listResult: &service.ListResult{Records: []bson.M{}}}
	performList(NewCollectionHandler(fake), "/api/students?limit=abc&skip=xyz", "students")

	// Garbage values fall through as zero; the service applies defaults.
	assert.Equal(t, int64(0), fake.gotLimit)
	assert.Equal(t, int64(0), fake.gotSkip)
}

func TestCollectionListUnknownCollection(t *testing.T) {
	fake := &fakeReadModel{listErr: appErrors.Clone(appErrors.ErrUnknownCollection, "unknown collection: grades")}
	rec := performList(NewCollectionHandler(fake), "/api/grades", "grades")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "unknown collection: grades", envelope.Error)
	assert.Nil(t, envelope.Count)
}

func TestCollectionListStoreUnavailable(t *testing.T) {
	fake := &fakeReadModel{listErr: appErrors.ErrStoreUnavailable}
	rec := performList(NewCollectionHandler(fake), "/api/students", "students")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCollectionGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fake := &fakeReadModel{getDoc: bson.M{"fullName": "Priya Sharma"}}
	handler := NewCollectionHandler(fake)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/students/abc", nil)
	c.Params = gin.Params{{Key: "collection", Value: "students"}, {Key: "id", Value: "abc"}}
	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "students", fake.gotName)
	assert.Equal(t, "abc", fake.gotID)
}

func TestCollectionGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCollectionHandler(&fakeReadModel{getErr: appErrors.ErrNotFound})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/students/missing", nil)
	c.Params = gin.Params{{Key: "collection", Value: "students"}, {Key: "id", Value: "missing"}}
	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCollectionsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCollectionHandler(&fakeReadModel{infos: []service.CollectionInfo{
		{Name: "students", Type: "collection"},
		{Name: "faculties", Type: "collection"},
	}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/collections", nil)
	handler.Collections(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success     bool                     `json:"success"`
		Collections []service.CollectionInfo `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Collections, 2)
}
