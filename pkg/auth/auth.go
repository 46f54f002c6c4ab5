package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	XUserIDHeader   = "X-User-Id"
	XUserRoleHeader = "X-User-Role"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleLibrarian  Role = "librarian"
	RoleStaff      Role = "staff"
	RoleResident   Role = "resident"
)

var (
	AdminRoles = []Role{RoleAdmin, RoleSuperAdmin}
	StaffRoles = []Role{RoleAdmin, RoleSuperAdmin, RoleLibrarian, RoleStaff}
)

// Mode selects where the acting identity comes from.
type Mode string

const (
	// ModeJWT verifies a HS256 bearer token issued by the identity service.
	ModeJWT Mode = "jwt"
	// ModeGateway trusts identity headers set by an upstream gateway.
	ModeGateway Mode = "gateway"
)

type Config struct {
	Mode      Mode   `yaml:"mode" envconfig:"AUTH_MODE" default:"jwt"`
	JWTSecret string `yaml:"-" envconfig:"JWT_SECRET"`
}

var ErrEmptySecret = errors.New("JWT_SECRET is required in jwt auth mode")

func (c Config) Validate() error {
	switch c.Mode {
	case ModeJWT:
		if c.JWTSecret == "" {
			return ErrEmptySecret
		}
	case ModeGateway:
	default:
		return errors.Errorf("unknown auth mode %q", c.Mode)
	}
	return nil
}

// Claims is the token payload of the identity service.
type Claims struct {
	UserID     int    `json:"id"`
	Email      string `json:"email,omitempty"`
	Role       Role   `json:"role"`
	ResidentID *int   `json:"resident_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor is the authenticated staff member performing a request.
type Actor struct {
	UserID int
	Role   Role
}

func (a Actor) HasRole(roles ...Role) bool {
	for i := range roles {
		if a.Role == roles[i] {
			return true
		}
	}
	return false
}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}
