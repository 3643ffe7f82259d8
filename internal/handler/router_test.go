package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/tanush-em/QWERTY/internal/models"
	"github.com/tanush-em/QWERTY/internal/service"
	"github.com/tanush-em/QWERTY/pkg/config"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(context.Context) error { return f.err }

func testRouter(t *testing.T, readModel *fakeReadModel, store pinger) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Env:       config.EnvDevelopment,
		APIPrefix: "/api",
		Reports:   config.ReportsConfig{Enabled: true},
	}
	return NewRouter(RouterParams{
		Config:      cfg,
		Logger:      zap.NewNop(),
		Collections: NewCollectionHandler(readModel),
		Dashboard:   NewDashboardHandler(&fakeDashboardSrv{summary: &models.DashboardSummary{}}),
		Timetable:   NewTimetableHandler(&fakeTimetableSrv{}),
		Reports:     NewReportHandler(&fakeReportSrv{result: &service.ReportResult{ContentType: "text/csv"}}),
		Metrics:     service.NewMetricsService(),
		Store:       store,
	})
}

func TestRouterCollectionRoutes(t *testing.T) {
	fake := &fakeReadModel{listResult: &service.ListResult{Records: []bson.M{}, Count: 3, Limit: 100}}
	router := testRouter(t, fake, &fakePinger{})

	// The legacy alias reaches the same handler as the canonical name.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaves?limit=10", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "leaves", fake.gotName)
	assert.Equal(t, int64(10), fake.gotLimit)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/data/leaverequests", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "leaverequests", fake.gotName)
}

func TestRouterStaticRoutesWinOverParams(t *testing.T) {
	fake := &fakeReadModel{
		listResult: &service.ListResult{Records: []bson.M{}},
		infos:      []service.CollectionInfo{{Name: "students", Type: "collection"}},
	}
	router := testRouter(t, fake, &fakePinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/collections", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success     bool                     `json:"success"`
		Collections []service.CollectionInfo `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success, "the introspection route must not be shadowed by the collection param route")
	assert.Len(t, body.Collections, 1)
}

func TestRouterHealthAndReadiness(t *testing.T) {
	fake := &fakeReadModel{listResult: &service.ListResult{Records: []bson.M{}}}

	router := testRouter(t, fake, &fakePinger{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := testRouter(t, fake, &fakePinger{err: errors.New("no reachable servers")})
	rec = httptest.NewRecorder()
	down.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterMetricsEndpoint(t *testing.T) {
	fake := &fakeReadModel{listResult: &service.ListResult{Records: []bson.M{}}}
	router := testRouter(t, fake, &fakePinger{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutines_total")
}
