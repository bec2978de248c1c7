package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
    e := echo.New()
    next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
    h := RequireRole("ADMIN", "ORGANIZER")(next)

    run := func(role interface{}) int {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        if role != nil {
            c.Set("role", role)
        }
        if err := h(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        return rec.Code
    }

    if got := run("ADMIN"); got != http.StatusOK {
        t.Fatalf("ADMIN status = %d, want 200", got)
    }
    if got := run("ORGANIZER"); got != http.StatusOK {
        t.Fatalf("ORGANIZER status = %d, want 200", got)
    }
    if got := run("ATTENDEE"); got != http.StatusForbidden {
        t.Fatalf("ATTENDEE status = %d, want 403", got)
    }
    if got := run(nil); got != http.StatusForbidden {
        t.Fatalf("missing role status = %d, want 403", got)
    }
    if got := run(42); got != http.StatusForbidden {
        t.Fatalf("non-string role status = %d, want 403", got)
    }
}
