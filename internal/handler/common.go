package handler // handler defines the HTTP handlers of the back office API

import (
    "errors"
    "strconv"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/hotel-back-office/internal/model"
)

// validate checks request payload structs against their `validate`
// tags.  A single instance caches the parsed struct metadata.
var validate = validator.New()

// getSession builds the staff session from the JWT claims stored in
// context by the auth middleware.  Everything below the handler layer
// receives the session explicitly instead of reading auth state from
// ambient context.
func getSession(c echo.Context) (model.Session, error) {
    uid, err := getUserID(c)
    if err != nil {
        return model.Session{}, err
    }
    role, _ := c.Get("role").(string)
    return model.Session{UserID: uid, Role: role}, nil
}

// getUserID extracts the user_id claim from echo.Context and converts
// it to uint64.  JWT numeric claims decode as float64, but the value
// may also arrive as a string or integer depending on how it was
// stored.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
    return parseID(c.Param("id"))
}

// parseID parses a positive numeric identifier.
func parseID(s string) (uint64, error) {
    id, err := strconv.ParseUint(s, 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid id")
    }
    return id, nil
}

// parseInstant parses a check-in/check-out instant.  RFC3339 is the
// canonical wire format; a bare "YYYY-MM-DDTHH:MM" without zone is
// accepted from older clients and interpreted as UTC.
func parseInstant(s string) (time.Time, error) {
    s = strings.TrimSpace(s)
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t.UTC(), nil
    }
    t, err := time.Parse("2006-01-02T15:04", s)
    if err != nil {
        return time.Time{}, err
    }
    return t.UTC(), nil
}

// parseDate parses a calendar date ("YYYY-MM-DD") as midnight UTC.
func parseDate(s string) (time.Time, error) {
    t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
    if err != nil {
        return time.Time{}, err
    }
    return t.UTC(), nil
}
