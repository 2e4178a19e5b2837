package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"adprompt/internal/fault"
)

// ReferenceAsset is an optional conditioning image for generation (logo,
// product shot, extra campaign assets).
type ReferenceAsset struct {
	Path     string
	MIMEType string
}

// GeneratedVideo is the materialized result of one generation request.
type GeneratedVideo struct {
	VideoPath   string
	OperationID string
}

// VeoClient submits Veo generation requests, polls the long-running
// operation at a fixed interval, and downloads the result into uploadDir.
//
// There is no internal timeout: the poll loop runs until the operation
// completes or ctx is cancelled. Callers wanting a wall-clock cap wrap the
// context themselves.
type VeoClient struct {
	client       *genai.Client
	apiKey       string
	model        string
	uploadDir    string
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewVeoClient wires a generation client around a shared genai client.
func NewVeoClient(client *genai.Client, apiKey, model, uploadDir string, pollInterval time.Duration, logger *zap.Logger) *VeoClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &VeoClient{
		client:       client,
		apiKey:       apiKey,
		model:        model,
		uploadDir:    uploadDir,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Generate runs submit → poll → download for one prompt. Provider auth and
// quota errors, an operation that completes without a usable video, and
// download failures all propagate as faults; nothing is retried here.
func (c *VeoClient) Generate(ctx context.Context, prompt string, refs []ReferenceAsset) (*GeneratedVideo, error) {
	image, err := firstReferenceImage(refs)
	if err != nil {
		return nil, err
	}

	op, err := c.client.Models.GenerateVideos(ctx, c.model, prompt, image, nil)
	if err != nil {
		return nil, classify(err, "start video generation")
	}
	c.logger.Info("veo operation started", zap.String("operation", op.Name), zap.String("model", c.model))

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			op, err = c.client.Operations.GetVideosOperation(ctx, op, nil)
			if err != nil {
				return nil, classify(err, "poll video operation")
			}
		}
	}

	if op.Error != nil {
		return nil, fault.New(fault.CodeProviderUpstream, fmt.Sprintf("operation %s failed: %v", op.Name, op.Error))
	}
	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 || op.Response.GeneratedVideos[0].Video == nil {
		return nil, fault.New(fault.CodeEmptyResult, fmt.Sprintf("operation %s completed without a video payload", op.Name))
	}

	videoPath, err := c.saveVideo(ctx, op.Response.GeneratedVideos[0].Video)
	if err != nil {
		return nil, err
	}
	c.logger.Info("veo video saved", zap.String("operation", op.Name), zap.String("path", videoPath))

	return &GeneratedVideo{VideoPath: videoPath, OperationID: op.Name}, nil
}

// saveVideo materializes the video bytes under uploadDir/generated. The
// provider returns either inline bytes or a download URI.
func (c *VeoClient) saveVideo(ctx context.Context, video *genai.Video) (string, error) {
	dir := filepath.Join(c.uploadDir, "generated")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fault.Wrap(fault.CodeDownloadFailed, "create output dir", err)
	}
	target := filepath.Join(dir, fmt.Sprintf("veo-%s.mp4", uuid.NewString()))

	if len(video.VideoBytes) > 0 {
		if err := os.WriteFile(target, video.VideoBytes, 0o644); err != nil {
			return "", fault.Wrap(fault.CodeDownloadFailed, "write video bytes", err)
		}
		return target, nil
	}

	if video.URI == "" {
		return "", fault.New(fault.CodeEmptyResult, "video payload has neither bytes nor URI")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, video.URI, nil)
	if err != nil {
		return "", fault.Wrap(fault.CodeDownloadFailed, "build download request", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fault.Wrap(fault.CodeDownloadFailed, "download video", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fault.New(fault.CodeDownloadFailed, fmt.Sprintf("download video: status %d: %s", resp.StatusCode, body))
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fault.Wrap(fault.CodeDownloadFailed, "create video file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		// Remove the partial file so a truncated download never looks like
		// a usable asset.
		_ = os.Remove(target)
		return "", fault.Wrap(fault.CodeDownloadFailed, "stream video to disk", err)
	}
	return target, nil
}

// firstReferenceImage loads the first readable reference asset. Veo takes
// a single conditioning image; extra assets ride along in the prompt only.
func firstReferenceImage(refs []ReferenceAsset) (*genai.Image, error) {
	for _, ref := range refs {
		if ref.Path == "" {
			continue
		}
		data, err := os.ReadFile(ref.Path)
		if err != nil {
			return nil, fault.Wrap(fault.CodeInvalidArgument, fmt.Sprintf("read reference asset %s", ref.Path), err)
		}
		mime := ref.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		return &genai.Image{ImageBytes: data, MIMEType: mime}, nil
	}
	return nil, nil
}
