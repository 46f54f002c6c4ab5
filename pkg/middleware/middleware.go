package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/zllibrary/library-service/pkg/auth"
)

const (
	AuthorizationHeader = "Authorization"
	bearer              = "Bearer "
)

// Authentication picks the identity source configured for the service.
// An invalid config rejects every request.
func Authentication(cfg auth.Config) echo.MiddlewareFunc {
	if err := cfg.Validate(); err != nil {
		return denyAll
	}
	if cfg.Mode == auth.ModeGateway {
		return GatewayAuthentication
	}
	return JwtAuthentication([]byte(cfg.JWTSecret))
}

func denyAll(echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication is not configured")
	}
}

func JwtAuthentication(key []byte) echo.MiddlewareFunc {
	if len(key) == 0 {
		return denyAll
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorization := c.Request().Header.Get(AuthorizationHeader)
			if authorization == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
			}
			if !strings.HasPrefix(authorization, bearer) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
			}
			tokenStr := strings.TrimPrefix(authorization, bearer)
			claims := new(auth.Claims)

			token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "JwtAccessDenied")
			}
			if claims.ExpiresAt == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no expiry")
			}
			if time.Now().After(claims.ExpiresAt.Time) {
				return echo.NewHTTPError(http.StatusUnauthorized, "TokenExpired")
			}
			if claims.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no user id")
			}

			setActor(c, auth.Actor{UserID: claims.UserID, Role: claims.Role})
			return next(c)
		}
	}
}

// GatewayAuthentication trusts identity headers forwarded by the gateway.
func GatewayAuthentication(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		rawID := req.Header.Get(auth.XUserIDHeader)
		if rawID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "user-id is empty")
		}
		userID, err := strconv.Atoi(rawID)
		if err != nil || userID <= 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "user-id is invalid")
		}
		userRole := req.Header.Get(auth.XUserRoleHeader)
		if userRole == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "user-role is empty")
		}
		setActor(c, auth.Actor{UserID: userID, Role: auth.Role(userRole)})
		return next(c)
	}
}

// RequireRoles rejects actors whose role is not listed.
func RequireRoles(roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := auth.ActorFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no actor")
			}
			if !actor.HasRole(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to perform this action.")
			}
			return next(c)
		}
	}
}

func setActor(c echo.Context, actor auth.Actor) {
	req := c.Request()
	c.SetRequest(req.WithContext(auth.WithActor(req.Context(), actor)))
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig(log *zap.Logger) middleware.RequestLoggerConfig {
	log = log.Named("echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
				if v.Status < http.StatusInternalServerError {
					level = zapcore.WarnLevel
				}
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}
