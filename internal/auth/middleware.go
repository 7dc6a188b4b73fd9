package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/portalpnd/simulado-api/internal/dto"
)

// TokenVerifier validates bearer tokens minted by the external identity
// service (shared HS256 secret). This service never issues tokens itself.
type TokenVerifier struct {
	hmac []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{hmac: []byte(secret)}
}

// Claims mirrors what the identity service puts in its access tokens:
// sub is the user UUID, admin the back-office flag.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// Parse verifies the signature and expiry and extracts the caller identity.
func (v *TokenVerifier) Parse(tokenStr string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.hmac, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID, Admin: claims.Admin}, nil
}

// IssueToken signs a token the way the identity service does. Used by tests
// and local tooling; production tokens come from the external collaborator.
func (v *TokenVerifier) IssueToken(userID uuid.UUID, admin bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.hmac)
}

// RequireIdentity rejects requests without a valid bearer token and stores
// the caller Identity in the gin context for the controllers.
func RequireIdentity(v *TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}
		id, err := v.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid bearer token"})
			return
		}
		setIdentity(ctx, id)
		ctx.Next()
	}
}

// RequireAdmin guards the back-office routes. Must run after RequireIdentity.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := IdentityFromContext(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}
		if !id.Admin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin privileges required"})
			return
		}
		ctx.Next()
	}
}
