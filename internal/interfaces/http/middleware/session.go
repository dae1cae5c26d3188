package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PavaniTiago/cck-survey-api/internal/application/usecases"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/entities"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/cache"
)

// SessionCookie é o cookie que identifica o respondente
const SessionCookie = "cck_session"

const sessionLocal = "survey_session"

// SessionFactory cria a sessão de um respondente novo
type SessionFactory interface {
	NewSession(ctx context.Context, id string) *entities.Session
}

// SurveySession carrega a sessão do cookie, criando uma nova quando ele falta ou expirou.
// A sessão fica bloqueada até o fim da requisição.
func SurveySession(store *cache.SessionStore, factory SessionFactory, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.Clone(c.Cookies(SessionCookie))

		s, release, found := store.Acquire(id)
		if !found {
			id = usecases.NewSessionID()
			store.Put(factory.NewSession(c.UserContext(), id))
			s, release, found = store.Acquire(id)
			if !found {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "não foi possível criar a sessão",
				})
			}
		}
		defer release()

		c.Cookie(&fiber.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sessionLocal, s)

		return c.Next()
	}
}

// CurrentSession retorna a sessão carregada por SurveySession
func CurrentSession(c *fiber.Ctx) *entities.Session {
	s, _ := c.Locals(sessionLocal).(*entities.Session)
	return s
}
