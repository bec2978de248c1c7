package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/event-venue-booking/internal/config"
    "github.com/iliyamo/event-venue-booking/internal/handler"
    "github.com/iliyamo/event-venue-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems use this endpoint to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while the authenticated profile endpoint lives under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token: the old one is revoked and a new
    // pair is issued.
    g.POST("/refresh", a.Refresh)
    // Logout accepts a JSON body containing a `refresh_token` and
    // invalidates it.  No JWT is required so expired sessions can still
    // terminate cleanly.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated browse endpoints.  These
// are the hottest read paths, so they sit behind the Redis response cache
// and the token-bucket rate limiter instead of JWT.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
    mws := make([]echo.MiddlewareFunc, 0, 2)
    if rdb != nil {
        rl := config.LoadRateLimitConfig()
        if rl.Enabled {
            mws = append(mws, middleware.NewTokenBucket(rl, rdb))
        }
        cc := config.LoadCacheConfig()
        if cc.Enabled {
            mws = append(mws, middleware.NewRedisCache(cc, rdb))
        }
    }
    g := e.Group("/v1", mws...)
    g.GET("/venues", p.ListVenues)
    g.GET("/events", p.ListEvents)
    g.GET("/events/:id", p.GetEvent)
}
