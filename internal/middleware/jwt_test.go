package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
    t.Helper()
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := tok.SignedString([]byte(secret))
    if err != nil {
        t.Fatalf("sign token: %v", err)
    }
    return signed
}

func TestJWTAuth(t *testing.T) {
    const secret = "unit-test-secret"
    e := echo.New()
    next := func(c echo.Context) error {
        return c.JSON(http.StatusOK, echo.Map{
            "user_id": c.Get("user_id"),
            "role":    c.Get("role"),
        })
    }
    h := JWTAuth(secret)(next)

    t.Run("missing header is rejected", func(t *testing.T) {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        rec := httptest.NewRecorder()
        if err := h(e.NewContext(req, rec)); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusUnauthorized {
            t.Fatalf("status = %d, want 401", rec.Code)
        }
    })

    t.Run("malformed token is rejected", func(t *testing.T) {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        req.Header.Set("Authorization", "Bearer not.a.jwt")
        rec := httptest.NewRecorder()
        if err := h(e.NewContext(req, rec)); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusUnauthorized {
            t.Fatalf("status = %d, want 401", rec.Code)
        }
    })

    t.Run("wrong secret is rejected", func(t *testing.T) {
        raw := signToken(t, "other-secret", jwt.MapClaims{
            "sub": 7, "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix(),
        })
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        req.Header.Set("Authorization", "Bearer "+raw)
        rec := httptest.NewRecorder()
        if err := h(e.NewContext(req, rec)); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusUnauthorized {
            t.Fatalf("status = %d, want 401", rec.Code)
        }
    })

    t.Run("expired token is rejected", func(t *testing.T) {
        raw := signToken(t, secret, jwt.MapClaims{
            "sub": 7, "role": "ADMIN", "exp": time.Now().Add(-time.Hour).Unix(),
        })
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        req.Header.Set("Authorization", "Bearer "+raw)
        rec := httptest.NewRecorder()
        if err := h(e.NewContext(req, rec)); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusUnauthorized {
            t.Fatalf("status = %d, want 401", rec.Code)
        }
    })

    t.Run("valid token injects claims", func(t *testing.T) {
        raw := signToken(t, secret, jwt.MapClaims{
            "sub": 7, "role": "ORGANIZER", "exp": time.Now().Add(time.Hour).Unix(),
        })
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        req.Header.Set("Authorization", "Bearer "+raw)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        if err := h(c); err != nil {
            t.Fatalf("handler error: %v", err)
        }
        if rec.Code != http.StatusOK {
            t.Fatalf("status = %d, want 200", rec.Code)
        }
        if role, _ := c.Get("role").(string); role != "ORGANIZER" {
            t.Fatalf("role in context = %v, want ORGANIZER", c.Get("role"))
        }
        if c.Get("user_id") == nil {
            t.Fatal("user_id missing from context")
        }
    })
}
