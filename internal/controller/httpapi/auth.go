package httpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Права доступа
const (
	PermReadLessons     = "read:lessons"
	PermWriteLessons    = "write:lessons"
	PermReadTemplates   = "read:templates"
	PermCreateTemplates = "create:templates"
	PermWriteSync       = "write:sync-lessons"
)

const principalKey = "principal"

// Claims полезная нагрузка JWT пользователя
type Claims struct {
	jwt.RegisteredClaims
	Scope       string   `json:"scope,omitempty"`
	Permissions []string `json:"permissions"`
}

// Principal тот, от чьего имени выполняется запрос: пользователь по JWT или приложение по токену
type Principal struct {
	User  *Claims         `json:"user,omitempty"`
	App   *model.App      `json:"-"`
	Token *model.AppToken `json:"-"`
}

// Has проверяет наличие хотя бы одного из прав
func (p *Principal) Has(perms ...string) bool {
	for _, perm := range perms {
		if p.User != nil {
			for _, have := range p.User.Permissions {
				if have == perm {
					return true
				}
			}
		}
		if p.Token != nil && p.Token.HasFlag(perm) {
			return true
		}
	}
	return false
}

// CreatedBy автор записи для сохранения в документе
func (p *Principal) CreatedBy() *model.CreatedBy {
	if p == nil {
		return nil
	}
	if p.User != nil {
		return &model.CreatedBy{UserCode: p.User.Subject}
	}
	return &model.CreatedBy{AppCode: p.App.Code}
}

// AuthConfig параметры проверки JWT
type AuthConfig struct {
	Secret   string
	Audience string
	Issuer   string
}

// Authenticator проверяет Bearer-токены: сначала как JWT, затем как токен приложения
type Authenticator struct {
	cfg    AuthConfig
	apps   AppTokens
	logger *zap.Logger
}

func NewAuthenticator(cfg AuthConfig, apps AppTokens, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		cfg:    cfg,
		apps:   apps,
		logger: logger,
	}
}

// Require пропускает запрос, если у автора есть хотя бы одно из прав.
// Без перечисленных прав достаточно любого валидного токена.
func (a *Authenticator) Require(perms ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "token is required")
		}

		principal, err := a.authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}
		if principal == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "token does not exist")
		}

		if len(perms) > 0 && !principal.Has(perms...) {
			return fiber.NewError(fiber.StatusForbidden,
				fmt.Sprintf("No permission \"%s\" to access this resource", strings.Join(perms, ", ")))
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func (a *Authenticator) authenticate(ctx context.Context, token string) (*Principal, error) {
	if claims, err := a.parseJWT(token); err == nil {
		return &Principal{User: claims}, nil
	} else if a.cfg.Secret != "" {
		a.logger.Debug("Bearer token is not a valid JWT", zap.Error(err))
	}

	app, appToken, err := a.apps.FindToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("find app token: %w", err)
	}
	if appToken == nil {
		return nil, nil
	}
	return &Principal{App: app, Token: appToken}, nil
}

func (a *Authenticator) parseJWT(token string) (*Claims, error) {
	if a.cfg.Secret == "" {
		return nil, jwt.ErrTokenUnverifiable
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if a.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.cfg.Audience))
	}
	if a.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.Issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(a.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func bearerToken(header string) (string, bool) {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", false
	}
	return fields[1], true
}

func principalFrom(c *fiber.Ctx) *Principal {
	p, _ := c.Locals(principalKey).(*Principal)
	return p
}
