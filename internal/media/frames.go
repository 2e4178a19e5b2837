// Package media adapts the external ffmpeg frame-extraction capability:
// given a video file and a count N, produce N evenly spaced still images.
package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"adprompt/internal/fault"
)

// Frame is one extracted still, ordered by timestamp ascending.
type Frame struct {
	Index     int
	Timestamp float64
	Path      string
}

// Bytes reads the frame image from disk.
func (f Frame) Bytes() ([]byte, error) {
	return os.ReadFile(f.Path)
}

// Sampler extracts frames into session-scoped directories under tempDir.
type Sampler struct {
	tempDir string
}

// NewSampler creates a sampler writing under tempDir/frames.
func NewSampler(tempDir string) *Sampler {
	return &Sampler{tempDir: tempDir}
}

// CleanupFunc removes a session's extracted frames. Whether to call it is
// the caller's policy; the loop itself does not decide frame retention.
type CleanupFunc func()

// ExtractFrames extracts exactly count evenly spaced PNG stills from the
// video. An unreadable video is fatal; there is no partial result.
func (s *Sampler) ExtractFrames(ctx context.Context, videoPath string, count int) ([]Frame, CleanupFunc, error) {
	if count < 1 {
		return nil, nil, fault.New(fault.CodeInvalidArgument, "frame count must be >= 1")
	}

	duration, err := probeDuration(ctx, videoPath)
	if err != nil {
		return nil, nil, fault.Wrap(fault.CodeFrameExtraction, "probe video duration", err)
	}

	sessionDir := filepath.Join(s.tempDir, "frames", uuid.NewString())
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, nil, fault.Wrap(fault.CodeFrameExtraction, "create session dir", err)
	}
	cleanup := func() { _ = os.RemoveAll(sessionDir) }

	frames := make([]Frame, 0, count)
	for i, ts := range SampleTimestamps(duration, count) {
		framePath := filepath.Join(sessionDir, fmt.Sprintf("frame-%02d.png", i+1))

		// -ss before -i seeks on the demuxer, which is fast enough for
		// short clips and keeps one invocation per frame.
		cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
			"-ss", strconv.FormatFloat(ts, 'f', 3, 64),
			"-i", videoPath,
			"-vframes", "1",
			"-q:v", "2",
			framePath,
		)
		if output, err := cmd.CombinedOutput(); err != nil {
			cleanup()
			return nil, nil, fault.Wrap(fault.CodeFrameExtraction,
				fmt.Sprintf("ffmpeg frame %d at %.3fs: %s", i+1, ts, strings.TrimSpace(string(output))), err)
		}

		frames = append(frames, Frame{Index: i + 1, Timestamp: ts, Path: framePath})
	}

	return frames, cleanup, nil
}

// SampleTimestamps returns count evenly spaced timestamps strictly inside
// (0, duration), ascending. Exposed for the controller's tests.
func SampleTimestamps(duration float64, count int) []float64 {
	out := make([]float64, count)
	step := duration / float64(count+1)
	for i := range count {
		out[i] = step * float64(i+1)
	}
	return out
}

func probeDuration(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", videoPath, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil || duration <= 0 {
		return 0, fmt.Errorf("ffprobe %s: unusable duration %q", videoPath, strings.TrimSpace(string(output)))
	}
	return duration, nil
}
