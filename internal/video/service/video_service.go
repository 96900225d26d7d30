package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/OzanKEreal/EndlleesTube/internal/errors"
	"github.com/OzanKEreal/EndlleesTube/internal/logging"
	"github.com/OzanKEreal/EndlleesTube/internal/metrics"
	"github.com/OzanKEreal/EndlleesTube/internal/video/domain"
	"github.com/OzanKEreal/EndlleesTube/internal/video/dto"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type VideoService struct {
	videos     domain.VideoRepository
	comments   domain.CommentRepository
	engagement domain.EngagementRepository
	log        logging.Logger
}

func NewVideoService(videos domain.VideoRepository, comments domain.CommentRepository,
	engagement domain.EngagementRepository, log logging.Logger) *VideoService {
	return &VideoService{
		videos:     videos,
		comments:   comments,
		engagement: engagement,
		log:        log,
	}
}

func (s *VideoService) List(ctx context.Context, params domain.ListParams) (*dto.VideoPage, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultPageLimit
	}
	if params.Limit > maxPageLimit {
		params.Limit = maxPageLimit
	}
	if params.Visibility == "" {
		params.Visibility = domain.VisibilityPublic
	}

	videos, total, err := s.videos.List(ctx, params)
	if err != nil {
		return nil, err
	}

	outputs := make([]*dto.VideoOutput, 0, len(videos))
	for _, v := range videos {
		outputs = append(outputs, dto.NewVideoOutput(v))
	}

	pages := total / params.Limit
	if total%params.Limit != 0 {
		pages++
	}

	return &dto.VideoPage{
		Videos: outputs,
		Pagination: dto.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// Upload records the metadata of a stored video blob. The media pipeline
// (thumbnails, transcode, HLS) is not implemented; the video stays in
// PROCESSING until an external worker exists.
func (s *VideoService) Upload(ctx context.Context, userID, videoID string, input dto.UploadInput,
	fileSize int64, videoPath string) (*dto.VideoOutput, error) {
	if input.Visibility == "" {
		input.Visibility = domain.VisibilityPublic
	}
	if videoID == "" {
		videoID = uuid.NewString()
	}

	now := time.Now()
	video := &domain.Video{
		ID:            videoID,
		UserID:        userID,
		Title:         input.Title,
		Description:   input.Description,
		Tags:          input.Tags,
		Visibility:    input.Visibility,
		Status:        domain.StatusProcessing,
		FileSize:      fileSize,
		VideoPath:     videoPath,
		ThumbnailPath: "/api/thumbnail/" + videoID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.videos.Create(ctx, video); err != nil {
		return nil, err
	}

	metrics.VideoUploadsTotal.Inc()
	// TODO: enqueue the processing job once the media worker lands.
	s.log.Info(ctx, "video accepted, processing pending", "video_id", video.ID, "user_id", userID)

	return dto.NewVideoOutput(video), nil
}

// Get returns a single video, enforcing visibility for the given viewer.
// viewerID is empty for anonymous requests.
func (s *VideoService) Get(ctx context.Context, videoID, viewerID string) (*dto.VideoOutput, error) {
	video, err := s.visibleVideo(ctx, videoID, viewerID)
	if err != nil {
		return nil, err
	}
	return dto.NewVideoOutput(video), nil
}

func (s *VideoService) MyVideos(ctx context.Context, userID string) ([]*dto.VideoOutput, error) {
	videos, err := s.videos.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	outputs := make([]*dto.VideoOutput, 0, len(videos))
	for _, v := range videos {
		outputs = append(outputs, dto.NewVideoOutput(v))
	}
	return outputs, nil
}

func (s *VideoService) ListComments(ctx context.Context, videoID string) ([]*dto.CommentOutput, error) {
	comments, err := s.comments.ListByVideoID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return dto.AssembleCommentThread(comments), nil
}

func (s *VideoService) AddComment(ctx context.Context, userID, videoID string, input dto.CommentInput) (*dto.CommentOutput, error) {
	if _, err := s.visibleVideo(ctx, videoID, userID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		UserID:    userID,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return dto.NewCommentOutput(comment), nil
}

func (s *VideoService) ToggleLike(ctx context.Context, userID, videoID string) (bool, int, error) {
	if _, err := s.visibleVideo(ctx, videoID, userID); err != nil {
		return false, 0, err
	}
	return s.engagement.ToggleLike(ctx, videoID, userID)
}

// RecordView counts at most one view per video per viewer, where a viewer is
// identified by user id when logged in and by a hash of the client IP
// otherwise. It never fails the caller for an already-counted view.
func (s *VideoService) RecordView(ctx context.Context, videoID, userID, ip string) error {
	if _, err := s.visibleVideo(ctx, videoID, userID); err != nil {
		return err
	}

	sum := md5.Sum([]byte(ip))
	recorded, err := s.engagement.RecordView(ctx, videoID, userID, hex.EncodeToString(sum[:]))
	if err != nil {
		return err
	}

	if recorded {
		metrics.VideoViewsTotal.Inc()
	}

	return nil
}

// visibleVideo loads a READY, non-deleted video and enforces visibility:
// PRIVATE videos are only reachable by their owner.
func (s *VideoService) visibleVideo(ctx context.Context, videoID, viewerID string) (*domain.Video, error) {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil || video.Status != domain.StatusReady {
		return nil, apperrors.ErrVideoNotFound
	}
	if video.Visibility == domain.VisibilityPrivate && video.UserID != viewerID {
		return nil, apperrors.ErrVideoPrivate
	}
	return video, nil
}
