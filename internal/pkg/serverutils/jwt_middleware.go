package serverutils

import (
	"os"
	"time"

	"conote-be/internal/access"
	"conote-be/internal/repository/specification"
	"conote-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// TokenFromRequest pulls the bearer token from the Authorization header or,
// for websocket handshakes, the token query param.
func TokenFromRequest(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ctx.Query("token")
}

// JwtSecret returns the signing key. Must match what issued the token.
func JwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return []byte(secret)
}

// ParseUserID validates the token and returns its user_id claim.
func ParseUserID(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return JwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}

	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, jwt.ErrTokenInvalidClaims
	}
	return uuid.Parse(idStr)
}

// NewPrincipalMiddleware returns the auth middleware. It validates the JWT,
// resolves the user row into an access.Principal (cached briefly so every
// request does not hit the database) and stores it in Locals.
func NewPrincipalMiddleware(uowFactory unitofwork.RepositoryFactory) fiber.Handler {
	principalCache := gocache.New(5*time.Minute, 10*time.Minute)

	return func(ctx *fiber.Ctx) error {
		tokenStr := TokenFromRequest(ctx)
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}

		userId, err := ParseUserID(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
		}

		if cached, ok := principalCache.Get(userId.String()); ok {
			p := cached.(access.Principal)
			ctx.Locals("principal", p)
			ctx.Locals("user_id", userId.String())
			return ctx.Next()
		}

		uow := uowFactory.NewUnitOfWork(ctx.Context())
		user, err := uow.UserRepository().FindOne(ctx.Context(), specification.ByID{ID: userId})
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load user"})
		}
		if user == nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unknown user"})
		}

		p := access.Principal{
			Id:          user.Id,
			Username:    user.Username,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			IsSuperuser: user.IsSuperuser,
		}
		principalCache.Set(userId.String(), p, gocache.DefaultExpiration)

		ctx.Locals("principal", p)
		ctx.Locals("user_id", userId.String())
		return ctx.Next()
	}
}
