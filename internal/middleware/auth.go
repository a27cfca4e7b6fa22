package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go_4_elearning/internal/config"
	"go_4_elearning/internal/model"
	"go_4_elearning/internal/webutil"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthMiddleware は Authorization ヘッダーの Bearer トークンを検証し、
// {id, email, role} をリクエストコンテキストにセットするミドルウェア
func JWTAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("JWT auth failed: Authorization header missing")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header is required.", "", model.ErrUnauthorized))
				return
			}

			// "Bearer {token}" の形式を検証
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("JWT auth failed: Invalid Authorization header format")
				webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "Authorization header format must be 'Bearer {token}'.", "", model.ErrUnauthorized))
				return
			}

			identity, err := ParseAccessToken(cfg, headerParts[1])
			if err != nil {
				logger.Warn("JWT auth failed: Invalid token", slog.Any("error", err))
				webutil.HandleError(w, logger, model.NewAppError("INVALID_TOKEN", "Token is invalid or expired.", "", model.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), model.IdentityKey, identity)
			ctx = WithLogger(ctx, logger.With(slog.Uint64("user_id", uint64(identity.ID)), slog.String("role", identity.Role)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ParseAccessToken は署名 (HS256) と有効期限を検証し、Identity を取り出す
func ParseAccessToken(cfg *config.Config, tokenString string) (*model.Identity, error) {
	claims := &model.JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWT.SecretKey), nil
	}, jwt.WithIssuer(cfg.JWT.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, errors.New("invalid subject")
	}
	switch claims.Role {
	case model.RoleStudent, model.RoleInstructor, model.RoleAdmin:
	default:
		return nil, errors.New("invalid role claim")
	}

	return &model.Identity{ID: uint(userID), Email: claims.Email, Role: claims.Role}, nil
}

// RequireRole は指定ロール以外を 403 で弾くミドルウェア。JWTAuthMiddleware の後ろに置く
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())
			identity, err := GetIdentityFromContext(r.Context())
			if err != nil {
				webutil.HandleError(w, logger, err)
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.Warn("Role check failed", slog.String("role", identity.Role), slog.Any("required", roles))
			webutil.HandleError(w, logger, model.NewAppError("FORBIDDEN", "You do not have permission to access this resource.", "", model.ErrForbidden))
		})
	}
}

func GetIdentityFromContext(ctx context.Context) (*model.Identity, error) {
	identity, ok := ctx.Value(model.IdentityKey).(*model.Identity)
	if !ok || identity == nil {
		// ミドルウェアが通っていない (ルーティング設定ミス等)
		return nil, model.NewAppError("UNAUTHORIZED", "Authentication information not found.", "", model.ErrUnauthorized)
	}
	return identity, nil
}

// WithIdentity は Identity をコンテキストに格納する (テスト用)
func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, model.IdentityKey, identity)
}
