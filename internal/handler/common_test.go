package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
)

// newJSONContext builds an echo context with a JSON body and an
// authenticated user, the way requests look after the JWT middleware
// has run.
func newJSONContext(e *echo.Echo, method, path, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
    req := httptest.NewRequest(method, path, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", float64(userID)) // numeric JWT claims decode as float64
    return c, rec
}

func TestGetUserID(t *testing.T) {
    e := echo.New()
    cases := []struct {
        name  string
        value interface{}
        want  uint64
        ok    bool
    }{
        {"float64 claim", float64(7), 7, true},
        {"uint64", uint64(9), 9, true},
        {"int", 3, 3, true},
        {"numeric string", "12", 12, true},
        {"garbage string", "abc", 0, false},
        {"missing", nil, 0, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, "/", nil)
            c := e.NewContext(req, httptest.NewRecorder())
            if tc.value != nil {
                c.Set("user_id", tc.value)
            }
            got, err := getUserID(c)
            if tc.ok && (err != nil || got != tc.want) {
                t.Fatalf("getUserID = %d, %v; want %d", got, err, tc.want)
            }
            if !tc.ok && err == nil {
                t.Fatalf("getUserID accepted %v", tc.value)
            }
        })
    }
}

func TestPathID(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetParamNames("id")

    c.SetParamValues("42")
    if id, ok := pathID(c, "id"); !ok || id != 42 {
        t.Fatalf("pathID(42) = %d, %v", id, ok)
    }
    for _, bad := range []string{"0", "-1", "abc", ""} {
        c.SetParamValues(bad)
        if _, ok := pathID(c, "id"); ok {
            t.Fatalf("pathID accepted %q", bad)
        }
    }
}

func TestParseDateAndClock(t *testing.T) {
    d, ok := parseDate("2026-09-15")
    if !ok || d.Year() != 2026 || d.Month() != 9 || d.Day() != 15 {
        t.Fatalf("parseDate = %v, %v", d, ok)
    }
    if _, ok := parseDate("15/09/2026"); ok {
        t.Fatal("parseDate accepted slashes")
    }

    clock, ok := parseClock(d, "18:30")
    if !ok || clock.Hour() != 18 || clock.Minute() != 30 || clock.Day() != 15 {
        t.Fatalf("parseClock = %v, %v", clock, ok)
    }
    if _, ok := parseClock(d, "25:00"); ok {
        t.Fatal("parseClock accepted 25:00")
    }
}
