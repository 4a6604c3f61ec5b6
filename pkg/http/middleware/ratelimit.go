package middleware

import "github.com/labstack/echo/v4"

// Allower decides whether the client identified by key may proceed.
type Allower interface {
	Allow(key string) bool
}

// RateLimit rejects requests from clients that ran out of tokens. deny
// writes the rejection.
func RateLimit(a Allower, deny echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.Allow(c.RealIP()) {
				return deny(c)
			}
			return next(c)
		}
	}
}
