package handler

import (
	"github.com/gofiber/fiber/v2"

	authhandler "github.com/OzanKEreal/EndlleesTube/internal/auth/handler"
	"github.com/OzanKEreal/EndlleesTube/internal/auth/service"
)

func RegisterRoutes(app *fiber.App, h *VideoHandler, tokens service.TokenGenerator) {
	videos := app.Group("/api/videos")
	videos.Get("/", h.List)
	videos.Post("/upload", authhandler.RequireAuth(tokens), h.Upload)
	videos.Get("/my-videos", authhandler.RequireAuth(tokens), h.MyVideos)
	videos.Get("/:id", authhandler.OptionalAuth(tokens), h.Get)
	videos.Get("/:id/comments", h.ListComments)
	videos.Post("/:id/comments", authhandler.RequireAuth(tokens), h.AddComment)
	videos.Post("/:id/like", authhandler.RequireAuth(tokens), h.ToggleLike)
	// Anonymous views count too; a valid token only improves dedupe.
	videos.Post("/:id/view", authhandler.OptionalAuth(tokens), h.RecordView)
}
