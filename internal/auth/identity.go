package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "auth.identity"

// Identity is the already-authenticated caller forwarded into the services.
// It is produced only by the bearer-token middleware; services treat a zero
// Identity as unauthenticated.
type Identity struct {
	UserID uuid.UUID
	Admin  bool
}

// Valid reports whether the identity carries a real user.
func (i Identity) Valid() bool {
	return i.UserID != uuid.Nil
}

// CanAct reports whether the identity may mutate a resource owned by ownerID.
func (i Identity) CanAct(ownerID uuid.UUID) bool {
	return i.Admin || i.UserID == ownerID
}

func setIdentity(ctx *gin.Context, id Identity) {
	ctx.Set(identityKey, id)
}

// IdentityFromContext returns the caller stored by the middleware, if any.
func IdentityFromContext(ctx *gin.Context) (Identity, bool) {
	v, ok := ctx.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok && id.Valid()
}
