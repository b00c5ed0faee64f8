package middleware

// identity.go holds the helper shared by middleware that needs a
// per-user key (the rate limiter).  It reads the "user_id" value that
// JWTAuth stored in context, in whatever type it arrived.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the authenticated user id,
// or "anon" when the request carries no identity.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case string:
        if v != "" {
            return v
        }
    case uint64:
        return strconv.FormatUint(v, 10)
    case int64:
        return strconv.FormatInt(v, 10)
    case float64:
        return strconv.FormatUint(uint64(v), 10)
    }
    return "anon"
}
