package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	"guesthouse/infras/otel"
	"guesthouse/permissions"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const skipAuthKey SkipAuthKey = "skip"

const (
	msgInvalidClaims = "Invalid token claims"
	msgMissingHeader = "Missing authorization header"
)

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// routeOf resolves the chi pattern of the request, which is how endpoints are keyed in permissions.json.
func routeOf(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return r.URL.Path
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path); pattern != "" {
		return pattern
	}

	return r.URL.Path
}

func (m *authRoleImpl) endpoint(r *http.Request) permissions.Permission {
	if m.permission == nil {
		return permissions.Permission{}
	}

	return m.permission.FindPermissions(routeOf(r), r.Method)
}

func (m *authRoleImpl) authenticate(ctx context.Context, authHeader string) (*jwt.Claims, error) {
	if authHeader == "" {
		return nil, failure.Unauthorized(msgMissingHeader)
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return nil, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(ctx, tokenString, jwt.AccessToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			return nil, failure.Unauthorized("Token has expired")
		case errors.Is(err, jwt.ErrInvalidToken):
			return nil, failure.Unauthorized("Invalid token")
		case errors.Is(err, jwt.ErrInvalidClaim):
			return nil, failure.Unauthorized(msgInvalidClaims)
		default:
			return nil, failure.Unauthorized("Token validation failed")
		}
	}

	if claims.UserID == "" || claims.Email == "" {
		log.Error().Str("userID", claims.UserID).Msg("JWT claims: user id or email is empty")

		return nil, failure.Unauthorized(msgInvalidClaims)
	}

	return claims, nil
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)

	return context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)
}

// Auth validates the bearer token. Public endpoints still pick up the caller when a valid token is sent,
// so staff see unpublished records there.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(skipAuthKey).(bool); skip {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		route := routeOf(r)
		public := m.endpoint(r).Skip

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       route,
			"http.method":     r.Method,
			"auth.optional":   public,
		})

		authHeader := r.Header.Get(constant.RequestHeaderAuthorization)

		if public && authHeader == "" {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		claims, err := m.authenticate(ctx, authHeader)
		if err != nil {
			scope.TraceError(err)
			scope.End()

			if public {
				next.ServeHTTP(w, r)

				return
			}

			response.WithError(w, err)

			return
		}

		scope.End()

		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// RBAC checks the caller role against the roles listed for the endpoint. It runs after Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skip, _ := ctx.Value(skipAuthKey).(bool); skip {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(w, failure.ForbiddenError)

			return
		}

		permission := m.endpoint(r)

		if m.permission.Skip || permission.Skip || len(permission.Permissions) == 0 {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !slices.Contains(permission.Permissions, userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(w, err)

			return
		}

		scope.End()
		next.ServeHTTP(w, r)
	})
}

// APIKey lets internal callers holding the configured key bypass Auth and RBAC as a superadmin without a user id.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := r.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == "" || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.End()
			response.WithError(w, err)

			return
		}

		// No user id: internal callers own no rows, and created_by falls back to the system actor.
		ctx = context.WithValue(ctx, skipAuthKey, true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleSuperAdmin)

		scope.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
