// Package web is the keep-alive HTTP front: a status page plus read-only
// catalog access. It exists so the hosting platform sees the process as
// alive; everything that mutates state goes through the chat surfaces.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/shopbot-th/discord-shop-bot/internal/catalog"
	"github.com/shopbot-th/discord-shop-bot/internal/shop"
)

const statusPage = `<!DOCTYPE html>
<html>
<head><title>Discord Shop Bot Status</title></head>
<body style="background:#1e1e2e;color:#cdd6f4;font-family:sans-serif;text-align:center;padding-top:80px">
  <h1>Discord Shop Bot</h1>
  <p><strong style="color:#a6e3a1">Online &amp; Ready</strong></p>
  <p>The Discord shop bot server is running.</p>
</body>
</html>`

// Server serves the liveness endpoints.
type Server struct {
	app     *fiber.App
	catalog *catalog.Service
	log     zerolog.Logger
}

func New(catalogSvc *catalog.Service, log zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	s := &Server{
		app:     app,
		catalog: catalogSvc,
		log:     log.With().Str("component", "web").Logger(),
	}
	app.Get("/", s.status)
	app.Get("/health", s.health)
	app.Get("/products", s.products)
	return s
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("web server listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) status(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(statusPage)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.SendString("OK")
}

func (s *Server) products(c *fiber.Ctx) error {
	var cat catalog.Category
	if q := c.Query("category"); q != "" {
		parsed, ok := catalog.ParseCategory(q)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":    "invalid category",
				"categories": shop.CategoryHint(),
			})
		}
		cat = parsed
	}
	return c.JSON(s.catalog.List(cat))
}
