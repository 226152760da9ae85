package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionCookie is the cookie holding the shopper's session id.
const SessionCookie = "session_id"

// NewSessionStore creates the in-memory store backing shopper sessions.
func NewSessionStore(expiration time.Duration) *session.Store {
	return session.New(session.Config{
		Expiration:     expiration,
		KeyLookup:      "cookie:" + SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// Session makes sure the caller has a session and exposes its id to the
// handlers. A new session is saved immediately so its cookie is sent back.
func Session(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Printf("Failed to load session: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not load session",
			})
		}

		c.Locals(LocalSessionID, sess.ID())
		if sess.Fresh() {
			sess.Set("started_at", time.Now().Unix())
			if err := sess.Save(); err != nil {
				log.Printf("Failed to save session: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not save session",
				})
			}
		}
		return c.Next()
	}
}

// SessionID returns the session id set by Session.
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}
