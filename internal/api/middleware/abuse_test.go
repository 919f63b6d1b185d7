package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/byteverse/platform-api/internal/abuse"
)

func doRequest(e *echo.Echo, handler echo.HandlerFunc, mws []echo.MiddlewareFunc, addr, path string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = addr + ":4321"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := handler
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestBlocklistGate(t *testing.T) {
	e := echo.New()
	blocks := abuse.NewMemoryBlocklist(time.Hour)
	if err := blocks.Add(context.Background(), "10.0.0.9"); err != nil {
		t.Fatalf("add: %v", err)
	}
	mws := []echo.MiddlewareFunc{BlocklistGate(blocks, false, zerolog.Nop())}

	if code := doRequest(e, okHandler, mws, "10.0.0.9", "/api/blogs"); code != http.StatusForbidden {
		t.Fatalf("expected 403 for blocked source, got %d", code)
	}
	// Rejection is idempotent regardless of request content.
	if code := doRequest(e, okHandler, mws, "10.0.0.9", "/health"); code != http.StatusForbidden {
		t.Fatalf("expected repeat 403, got %d", code)
	}
	if code := doRequest(e, okHandler, mws, "10.0.0.7", "/api/blogs"); code != http.StatusOK {
		t.Fatalf("expected 200 for clean source, got %d", code)
	}
}

// A source that floods one endpoint is rejected on the request crossing
// the rate threshold, and the blocklist gate cuts off everything after.
func TestAbusePipeline_RateFloodBlocks(t *testing.T) {
	e := echo.New()
	blocks := abuse.NewMemoryBlocklist(time.Hour)
	monitor := abuse.NewMonitor(abuse.Config{}, blocks, zerolog.Nop())
	mws := []echo.MiddlewareFunc{BlocklistGate(blocks, false, zerolog.Nop()), AbuseMonitor(monitor)}

	for i := 1; i <= 50; i++ {
		if code := doRequest(e, okHandler, mws, "10.1.1.1", "/api/x"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	// The 51st request inside the window trips the threshold and is
	// itself rejected.
	if code := doRequest(e, okHandler, mws, "10.1.1.1", "/api/x"); code != http.StatusForbidden {
		t.Fatalf("expected 403 on the 51st request, got %d", code)
	}
	// All subsequent requests are stopped by the gate.
	if code := doRequest(e, okHandler, mws, "10.1.1.1", "/health"); code != http.StatusForbidden {
		t.Fatalf("expected 403 after blocking, got %d", code)
	}

	// Other sources are unaffected.
	if code := doRequest(e, okHandler, mws, "10.1.1.2", "/api/x"); code != http.StatusOK {
		t.Fatalf("expected 200 for unrelated source, got %d", code)
	}
}

func TestAbusePipeline_EndpointScanBlocks(t *testing.T) {
	e := echo.New()
	blocks := abuse.NewMemoryBlocklist(time.Hour)
	monitor := abuse.NewMonitor(abuse.Config{}, blocks, zerolog.Nop())
	mws := []echo.MiddlewareFunc{BlocklistGate(blocks, false, zerolog.Nop()), AbuseMonitor(monitor)}

	for i := 1; i <= 20; i++ {
		if code := doRequest(e, okHandler, mws, "10.2.2.2", fmt.Sprintf("/probe/%d", i)); code != http.StatusOK {
			t.Fatalf("probe %d: expected 200, got %d", i, code)
		}
	}
	if code := doRequest(e, okHandler, mws, "10.2.2.2", "/probe/21"); code != http.StatusForbidden {
		t.Fatalf("expected 403 on the 21st distinct endpoint, got %d", code)
	}
}

type faultyBlocklist struct{}

func (faultyBlocklist) Contains(context.Context, string) (bool, error) {
	return false, fmt.Errorf("store unreachable")
}
func (faultyBlocklist) Add(context.Context, string) error { return nil }

func TestBlocklistGate_StoreFault(t *testing.T) {
	e := echo.New()

	// Fail-open: the in-process monitor still covers the request.
	open := []echo.MiddlewareFunc{BlocklistGate(faultyBlocklist{}, false, zerolog.Nop())}
	if code := doRequest(e, okHandler, open, "10.3.3.3", "/api/blogs"); code != http.StatusOK {
		t.Fatalf("fail-open: expected 200 on store fault, got %d", code)
	}

	// Fail-closed: a store fault denies every request.
	closed := []echo.MiddlewareFunc{BlocklistGate(faultyBlocklist{}, true, zerolog.Nop())}
	if code := doRequest(e, okHandler, closed, "10.3.3.3", "/api/blogs"); code != http.StatusServiceUnavailable {
		t.Fatalf("fail-closed: expected 503 on store fault, got %d", code)
	}
}

func TestAbusePipeline_LoopbackExempt(t *testing.T) {
	e := echo.New()
	blocks := abuse.NewMemoryBlocklist(time.Hour)
	monitor := abuse.NewMonitor(abuse.Config{}, blocks, zerolog.Nop())
	mws := []echo.MiddlewareFunc{BlocklistGate(blocks, false, zerolog.Nop()), AbuseMonitor(monitor)}

	for i := 0; i < 1000; i++ {
		if code := doRequest(e, okHandler, mws, "127.0.0.1", "/api/x"); code != http.StatusOK {
			t.Fatalf("loopback request %d rejected with %d", i, code)
		}
	}
}
