package repository

import (
    "strings"
    "testing"
)

func TestNewTicketCode(t *testing.T) {
    seen := make(map[string]bool)
    for i := 0; i < 1000; i++ {
        code := NewTicketCode()
        if !strings.HasPrefix(code, "TKT-") {
            t.Fatalf("code %q missing TKT- prefix", code)
        }
        if len(code) != 20 {
            t.Fatalf("code %q length = %d, want 20", code, len(code))
        }
        body := strings.TrimPrefix(code, "TKT-")
        if body != strings.ToUpper(body) {
            t.Fatalf("code %q is not uppercase", code)
        }
        if strings.Contains(body, "-") {
            t.Fatalf("code %q contains a dash in the body", code)
        }
        if seen[code] {
            t.Fatalf("duplicate code %q", code)
        }
        seen[code] = true
    }
}
