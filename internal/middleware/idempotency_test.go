package middleware

import (
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/farmvest/farmvest/internal/logging"
)

func newTestApp(t *testing.T, calls *atomic.Int64) (*fiber.App, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))
	app.Post("/deposit", func(c *fiber.Ctx) error {
		calls.Add(1)
		return c.JSON(fiber.Map{"ok": true, "n": calls.Load()})
	})
	return app, mr
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	var calls atomic.Int64
	app, _ := newTestApp(t, &calls)

	first := httptest.NewRequest(fiber.MethodPost, "/deposit", nil)
	first.Header.Set("Idempotency-Key", "dep-1")
	resp1, err := app.Test(first)
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	body1, _ := io.ReadAll(resp1.Body)

	second := httptest.NewRequest(fiber.MethodPost, "/deposit", nil)
	second.Header.Set("Idempotency-Key", "dep-1")
	resp2, err := app.Test(second)
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	body2, _ := io.ReadAll(resp2.Body)

	if calls.Load() != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls.Load())
	}
	if resp2.StatusCode != resp1.StatusCode || string(body1) != string(body2) {
		t.Fatalf("replay mismatch: %d %q vs %d %q", resp1.StatusCode, body1, resp2.StatusCode, body2)
	}
}

func TestIdempotencyMissingHeaderPassesThrough(t *testing.T) {
	var calls atomic.Int64
	app, _ := newTestApp(t, &calls)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(fiber.MethodPost, "/deposit", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: status %d", i, resp.StatusCode)
		}
	}

	if calls.Load() != 2 {
		t.Fatalf("expected handler to run twice without a key, ran %d times", calls.Load())
	}
}

func TestIdempotencyInProgressConflict(t *testing.T) {
	var calls atomic.Int64
	app, mr := newTestApp(t, &calls)

	mr.Set(idempotencyPrefix+"dep-2", inProgressMarker)

	req := httptest.NewRequest(fiber.MethodPost, "/deposit", nil)
	req.Header.Set("Idempotency-Key", "dep-2")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 while in progress, got %d", resp.StatusCode)
	}
	if calls.Load() != 0 {
		t.Fatal("handler must not run for an in-progress key")
	}
}

func TestIdempotencySkipsSafeMethods(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))
	app.Get("/wallet", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"balance": "0"})
	})

	req := httptest.NewRequest(fiber.MethodGet, "/wallet", nil)
	req.Header.Set("Idempotency-Key", "ignored")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if len(mr.Keys()) != 0 {
		t.Fatalf("safe method must not touch the store, found keys %v", mr.Keys())
	}
}
