package queue

import (
    "encoding/json"
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func chdirTemp(t *testing.T) {
    t.Helper()
    orig, err := os.Getwd()
    if err != nil {
        t.Fatalf("getwd: %v", err)
    }
    if err := os.Chdir(t.TempDir()); err != nil {
        t.Fatalf("chdir: %v", err)
    }
    t.Cleanup(func() {
        if err := os.Chdir(orig); err != nil {
            t.Fatalf("chdir back: %v", err)
        }
    })
}

func TestHandleMessageWritesLogLine(t *testing.T) {
    chdirTemp(t)

    ev := TicketPurchasedEvent{
        EventID:         12,
        EventName:       "Jazz Night",
        AttendeeID:      7,
        Quantity:        2,
        TicketCodes:     []string{"TKT-AAAA", "TKT-BBBB"},
        TotalPriceCents: 5000,
        PurchasedAt:     "2026-08-29T18:00:00Z",
    }
    body, err := json.Marshal(ev)
    if err != nil {
        t.Fatalf("marshal: %v", err)
    }

    if err := handleMessage(body); err != nil {
        t.Fatalf("handleMessage: %v", err)
    }

    data, err := os.ReadFile(filepath.Join("logs", "ticket.log"))
    if err != nil {
        t.Fatalf("read log: %v", err)
    }
    line := string(data)
    for _, want := range []string{"event_id=12", `event="Jazz Night"`, "attendee_id=7", "quantity=2", "total=5000 cents", "TKT-AAAA,TKT-BBBB"} {
        if !strings.Contains(line, want) {
            t.Fatalf("log line %q missing %q", line, want)
        }
    }
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
    chdirTemp(t)
    if err := handleMessage([]byte("not json")); err == nil {
        t.Fatal("garbage message accepted")
    }
}
