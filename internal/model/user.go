package model

import "time"

// Application roles.  Admins manage venues and decide booking
// requests, organizers request venues and run events, attendees buy
// tickets.  The role is carried in the JWT "role" claim and checked
// by the RequireRole middleware.
const (
    RoleAdmin     = "ADMIN"
    RoleOrganizer = "ORGANIZER"
    RoleAttendee  = "ATTENDEE"
)

// User represents an application user record as stored in the
// `users` table.  Each field corresponds to a column.  JSON tags
// are omitted because these structs are used internally by the
// repository layer; handlers define their own response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name shown on dashboards and rosters.
//  Phone        – optional contact number.
//  Role         – ADMIN, ORGANIZER or ATTENDEE.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    FullName     string    // users.full_name
    Phone        *string   // users.phone (nullable)
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
    return s == RoleAdmin || s == RoleOrganizer || s == RoleAttendee
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user and carries expiry and revocation
// metadata.  The plain token is never stored; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
    ID        uint64     // refresh_tokens.id
    UserID    uint64     // refresh_tokens.user_id
    TokenHash string     // refresh_tokens.token_hash
    ExpiresAt time.Time  // refresh_tokens.expires_at
    RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
    CreatedAt time.Time  // refresh_tokens.created_at
}
