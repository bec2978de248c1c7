package model

import "testing"

func TestTicketCanTransition(t *testing.T) {
    cases := []struct {
        from string
        to   string
        want bool
    }{
        {TicketActive, TicketCancelled, true},
        {TicketActive, TicketUsed, true},
        {TicketActive, TicketActive, false},
        {TicketCancelled, TicketActive, false},
        {TicketCancelled, TicketUsed, false},
        {TicketUsed, TicketCancelled, false},
        {TicketUsed, TicketActive, false},
        {"", TicketCancelled, false},
    }
    for _, tc := range cases {
        if got := CanTransition(tc.from, tc.to); got != tc.want {
            t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
        }
    }
}

func TestValidRole(t *testing.T) {
    for _, r := range []string{RoleAdmin, RoleOrganizer, RoleAttendee} {
        if !ValidRole(r) {
            t.Errorf("ValidRole(%q) = false, want true", r)
        }
    }
    for _, r := range []string{"", "admin", "OWNER", "CUSTOMER"} {
        if ValidRole(r) {
            t.Errorf("ValidRole(%q) = true, want false", r)
        }
    }
}
