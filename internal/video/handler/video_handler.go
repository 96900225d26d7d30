package handler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/OzanKEreal/EndlleesTube/config"
	authhandler "github.com/OzanKEreal/EndlleesTube/internal/auth/handler"
	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
	"github.com/OzanKEreal/EndlleesTube/internal/validation"
	"github.com/OzanKEreal/EndlleesTube/internal/video/domain"
	"github.com/OzanKEreal/EndlleesTube/internal/video/dto"
	"github.com/OzanKEreal/EndlleesTube/internal/video/service"
)

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
	"video/x-msvideo": true,
}

type VideoHandler struct {
	videoService *service.VideoService
	cfg          *config.Config
}

func NewVideoHandler(videoService *service.VideoService, cfg *config.Config) *VideoHandler {
	return &VideoHandler{videoService: videoService, cfg: cfg}
}

func (h *VideoHandler) List(c *fiber.Ctx) error {
	params := domain.ListParams{
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 20),
		Search:     c.Query("search"),
		Visibility: c.Query("visibility", domain.VisibilityPublic),
	}

	page, err := h.videoService.List(c.UserContext(), params)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"videos":     page.Videos,
		"pagination": page.Pagination,
	})
}

func (h *VideoHandler) Get(c *fiber.Ctx) error {
	var viewerID string
	if claims := authhandler.ClaimsFromCtx(c); claims != nil {
		viewerID = claims.UserID
	}

	video, err := h.videoService.Get(c.UserContext(), c.Params("id"), viewerID)
	if err != nil {
		return respondVideoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"video":   video,
	})
}

func (h *VideoHandler) Upload(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)
	if claims == nil {
		return respondError(c, fiber.StatusUnauthorized, "authentication required")
	}

	file, err := c.FormFile("video")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "no video file provided")
	}

	if !allowedVideoTypes[file.Header.Get(fiber.HeaderContentType)] {
		return respondError(c, fiber.StatusBadRequest,
			"invalid file type, only MP4, WebM, MOV and AVI files are allowed")
	}

	if file.Size > h.cfg.VideoMaxBytes {
		return respondError(c, fiber.StatusBadRequest, "file too large")
	}

	input := dto.UploadInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Visibility:  c.FormValue("visibility"),
		Tags:        c.FormValue("tags"),
	}
	if err := validation.Struct(&input); err != nil {
		return respondValidationError(c, err)
	}

	videoID := uuid.NewString()
	filename := videoID + strings.ToLower(filepath.Ext(file.Filename))
	videosDir := filepath.Join(h.cfg.UploadDir, "videos")
	if err := os.MkdirAll(videosDir, 0o755); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}
	if err := c.SaveFile(file, filepath.Join(videosDir, filename)); err != nil {
		return respondError(c, fiber.StatusInternalServerError, "failed to store video file")
	}

	video, err := h.videoService.Upload(c.UserContext(), claims.UserID, videoID, input,
		file.Size, "/uploads/videos/"+filename)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"video":   video,
	})
}

func (h *VideoHandler) MyVideos(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)
	if claims == nil {
		return respondError(c, fiber.StatusUnauthorized, "authentication required")
	}

	videos, err := h.videoService.MyVideos(c.UserContext(), claims.UserID)
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"videos":  videos,
	})
}

func (h *VideoHandler) ListComments(c *fiber.Ctx) error {
	comments, err := h.videoService.ListComments(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"comments": comments,
	})
}

func (h *VideoHandler) AddComment(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)
	if claims == nil {
		return respondError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var input dto.CommentInput
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := validation.Struct(&input); err != nil {
		return respondValidationError(c, err)
	}

	comment, err := h.videoService.AddComment(c.UserContext(), claims.UserID, c.Params("id"), input)
	if err != nil {
		return respondVideoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

func (h *VideoHandler) ToggleLike(c *fiber.Ctx) error {
	claims := authhandler.ClaimsFromCtx(c)
	if claims == nil {
		return respondError(c, fiber.StatusUnauthorized, "authentication required")
	}

	liked, likeCount, err := h.videoService.ToggleLike(c.UserContext(), claims.UserID, c.Params("id"))
	if err != nil {
		return respondVideoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"liked":     liked,
		"likeCount": likeCount,
	})
}

func (h *VideoHandler) RecordView(c *fiber.Ctx) error {
	var userID string
	if claims := authhandler.ClaimsFromCtx(c); claims != nil {
		userID = claims.UserID
	}

	err := h.videoService.RecordView(c.UserContext(), c.Params("id"), userID, c.IP())
	if err != nil {
		return respondVideoError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "view recorded",
	})
}

func respondVideoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrVideoNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrVideoPrivate):
		return respondError(c, fiber.StatusForbidden, err.Error())
	default:
		return respondError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

func respondValidationError(c *fiber.Ctx, err error) error {
	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "validation failed",
			"details": ve.Violations,
		})
	}
	return respondError(c, fiber.StatusBadRequest, "invalid input")
}
