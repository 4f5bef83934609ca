package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/camilohimself/projet-gocours/internal/config"
)

type docsEndpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Notes  string `json:"notes,omitempty"`
}

type docsGroup struct {
	Name      string         `json:"name"`
	Endpoints []docsEndpoint `json:"endpoints"`
}

var apiIndex = []docsGroup{
	{
		Name: "auth",
		Endpoints: []docsEndpoint{
			{Method: "POST", Path: "/api/auth/register"},
			{Method: "POST", Path: "/api/auth/login"},
			{Method: "GET", Path: "/api/auth/me"},
		},
	},
	{
		Name: "students",
		Endpoints: []docsEndpoint{
			{Method: "POST", Path: "/api/v1/students/onboarding"},
			{Method: "GET", Path: "/api/v1/students/profile"},
			{Method: "PUT", Path: "/api/v1/students/profile"},
		},
	},
	{
		Name: "tutors",
		Endpoints: []docsEndpoint{
			{Method: "GET", Path: "/api/v1/tutors", Notes: "query-parameter search"},
			{Method: "POST", Path: "/api/v1/tutors/search", Notes: "full criteria search"},
			{Method: "GET", Path: "/api/v1/tutors/search/metadata"},
			{Method: "POST", Path: "/api/v1/tutors/onboarding"},
			{Method: "GET", Path: "/api/v1/tutors/profile"},
			{Method: "PUT", Path: "/api/v1/tutors/profile"},
			{Method: "PUT", Path: "/api/v1/tutors/availability"},
			{Method: "GET", Path: "/api/v1/tutors/recommended", Notes: "students only"},
			{Method: "GET", Path: "/api/v1/tutors/:id"},
			{Method: "GET", Path: "/api/v1/tutors/:id/reviews"},
			{Method: "POST", Path: "/api/v1/tutors/:id/favorite"},
			{Method: "DELETE", Path: "/api/v1/tutors/:id/favorite"},
		},
	},
	{
		Name: "bookings",
		Endpoints: []docsEndpoint{
			{Method: "POST", Path: "/api/v1/bookings"},
			{Method: "GET", Path: "/api/v1/bookings"},
			{Method: "GET", Path: "/api/v1/bookings/availability"},
			{Method: "GET", Path: "/api/v1/bookings/:id"},
			{Method: "PUT", Path: "/api/v1/bookings/:id/status"},
			{Method: "PUT", Path: "/api/v1/bookings/:id/notes"},
			{Method: "DELETE", Path: "/api/v1/bookings/:id"},
		},
	},
	{
		Name: "reviews",
		Endpoints: []docsEndpoint{
			{Method: "POST", Path: "/api/v1/reviews"},
		},
	},
	{
		Name: "favorites",
		Endpoints: []docsEndpoint{
			{Method: "GET", Path: "/api/v1/favorites"},
		},
	},
	{
		Name: "subjects",
		Endpoints: []docsEndpoint{
			{Method: "GET", Path: "/api/v1/subjects"},
		},
	},
	{
		Name: "gamification",
		Endpoints: []docsEndpoint{
			{Method: "GET", Path: "/api/v1/gamification/progress"},
			{Method: "GET", Path: "/api/v1/gamification/leaderboard"},
		},
	},
	{
		Name: "matching",
		Endpoints: []docsEndpoint{
			{Method: "POST", Path: "/api/v1/matching/group", Notes: "admin only"},
		},
	},
	{
		Name: "notifications",
		Endpoints: []docsEndpoint{
			{Method: "GET", Path: "/api/v1/ws", Notes: "websocket upgrade"},
		},
	},
}

// registerDocsRoutes exposes a machine-readable route index. Development only.
func registerDocsRoutes(app fiber.Router, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	loadedAt := time.Now().UTC().Format(time.RFC3339)
	app.Get("/docs", func(c *fiber.Ctx) error {
		applyDocsBaseHeaders(c)
		return c.JSON(fiber.Map{
			"title":     "projet-gocours API",
			"loaded_at": loadedAt,
			"groups":    apiIndex,
		})
	})

	return nil
}

func applyDocsBaseHeaders(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-store, max-age=0")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	c.Set(fiber.HeaderXFrameOptions, "DENY")
	c.Set("Referrer-Policy", "no-referrer")
	c.Set("X-Robots-Tag", "noindex, nofollow")
}
