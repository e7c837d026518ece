package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const testStaffID = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"

func newTestServer(t *testing.T) (*echo.Echo, *int) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	e := echo.New()
	e.Use(Idempotency(rdb, 5*time.Minute))
	e.POST("/loans/:loan_id/approve", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, map[string]any{"success": true, "calls": calls})
	})
	return e, &calls
}

func doReq(e *echo.Echo, reqID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/loans/ln-1/approve", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-Request-Id", reqID)
	req.Header.Set("Ax-Request-At", strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set("Ax-Staff-Id", testStaffID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency_ReplaysRecordedResponse(t *testing.T) {
	e, calls := newTestServer(t)
	reqID := "b1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"

	first := doReq(e, reqID)
	if first.Code != http.StatusOK {
		t.Fatalf("first code = %d body=%s", first.Code, first.Body.String())
	}
	second := doReq(e, reqID)
	if second.Code != http.StatusOK {
		t.Fatalf("replay code = %d", second.Code)
	}
	if *calls != 1 {
		t.Fatalf("handler ran %d times, want 1", *calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs:\n%s\n%s", first.Body.String(), second.Body.String())
	}
}

func TestIdempotency_DistinctRequestIDsBothRun(t *testing.T) {
	e, calls := newTestServer(t)

	doReq(e, "c1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4")
	doReq(e, "d1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4")
	if *calls != 2 {
		t.Fatalf("handler ran %d times, want 2", *calls)
	}
}

func TestIdempotency_MissingHeadersRejected(t *testing.T) {
	e, calls := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/loans/ln-1/approve", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", rec.Code)
	}
	if *calls != 0 {
		t.Fatal("handler ran without idempotency headers")
	}
}

func TestIdempotency_GetPassesThrough(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := echo.New()
	e.Use(Idempotency(rdb, time.Minute))
	e.GET("/loans", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/loans", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, GET must bypass idempotency headers", rec.Code)
	}
}

func TestIdempotency_SameIDDifferentBodyConflicts(t *testing.T) {
	e, _ := newTestServer(t)
	reqID := "e1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4"

	doReq(e, reqID)

	req := httptest.NewRequest(http.MethodPost, "/loans/ln-1/approve", strings.NewReader(`{"other":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-Request-Id", reqID)
	req.Header.Set("Ax-Request-At", strconv.FormatInt(time.Now().Unix(), 10))
	req.Header.Set("Ax-Staff-Id", testStaffID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("code = %d, want 409 for reused id with new body", rec.Code)
	}
}
