package model

import "time"

// Staff roles as stored in users.role and carried in JWT claims.
const (
    RoleAdmin = "ADMIN"
    RoleStaff = "STAFF"
)

// User represents a back-office staff account in the `users` table.
// Guests are not users; they exist only as contact fields on a
// booking.  Role distinguishes managers (ADMIN) from front-desk
// staff (STAFF).
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN or STAFF.
//  IsActive     – whether the account may log in.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only
// the SHA-256 hash of the raw token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
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

// Session identifies the authenticated staff member performing an
// operation.  Handlers build it from JWT claims and pass it into
// settlement and booking creation explicitly; nothing below the
// handler layer reads auth state from ambient context.
type Session struct {
    UserID uint64 // authenticated user id from the "sub" claim
    Role   string // ADMIN or STAFF from the "role" claim
}
