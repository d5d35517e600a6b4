package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpegEngine implements Engine using the ffmpeg and ffprobe CLIs.
type FFmpegEngine struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpegEngine creates a new FFmpegEngine. Empty paths default to
// "ffmpeg" and "ffprobe" (found via PATH).
func NewFFmpegEngine(ffmpegPath, ffprobePath string) *FFmpegEngine {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegEngine{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// Render implements Engine.Render.
func (e *FFmpegEngine) Render(ctx context.Context, inputs []string, filterGraph string, maps []string, output string) error {
	if len(inputs) == 0 {
		return ErrNoInputs
	}

	args := []string{"-y"}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}
	if filterGraph != "" {
		args = append(args, "-filter_complex", filterGraph)
	}
	for _, m := range maps {
		args = append(args, "-map", m)
	}
	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		output,
	)

	return e.runFFmpeg(ctx, args)
}

// FilterAudio implements Engine.FilterAudio.
func (e *FFmpegEngine) FilterAudio(ctx context.Context, input, audioFilter, output string) error {
	args := []string{
		"-y",
		"-i", input,
		"-c:v", "copy",
		"-af", audioFilter,
		"-c:a", "aac",
		output,
	}
	return e.runFFmpeg(ctx, args)
}

// ExtractAudio implements Engine.ExtractAudio.
func (e *FFmpegEngine) ExtractAudio(ctx context.Context, input, output string) error {
	args := []string{
		"-y",
		"-i", input,
		"-vn",
		"-acodec", "libmp3lame",
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "64k",
		output,
	}
	return e.runFFmpeg(ctx, args)
}

// runFFmpeg executes ffmpeg with the given arguments and returns an error
// containing stderr output if the command fails.
func (e *FFmpegEngine) runFFmpeg(ctx context.Context, args []string) error {
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg cancelled: %w", ctx.Err())
		}
		return &FFmpegError{
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return nil
}

// FFmpegError represents an error from running ffmpeg, including the stderr output.
type FFmpegError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *FFmpegError) Unwrap() error {
	return e.Err
}

// probeOutput mirrors the subset of ffprobe JSON output the engine reads.
type probeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		RFrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

// Probe implements Engine.Probe using ffprobe JSON output.
func (e *FFmpegEngine) Probe(ctx context.Context, path string) (Metadata, error) {
	// #nosec G204 - ffprobePath is set by the application, not user input
	cmd := exec.CommandContext(ctx, e.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Metadata{}, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		return Metadata{}, fmt.Errorf("%w: %w, stderr: %s", ErrProbeFailed, err, stderr.String())
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return Metadata{}, fmt.Errorf("%w: parse output: %w", ErrProbeFailed, err)
	}

	return metadataFromProbe(out), nil
}

// ProbeOrDefault implements Engine.ProbeOrDefault.
func (e *FFmpegEngine) ProbeOrDefault(ctx context.Context, path string) Metadata {
	md, err := e.Probe(ctx, path)
	if err != nil {
		return DefaultMetadata()
	}
	return md
}

func metadataFromProbe(out probeOutput) Metadata {
	md := Metadata{
		FPS:       30,
		Container: out.Format.FormatName,
	}
	if md.Container == "" {
		md.Container = "unknown"
	}

	if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
		md.Duration = d
	}
	if s, err := strconv.ParseInt(out.Format.Size, 10, 64); err == nil {
		md.FileSize = s
	}

	for _, stream := range out.Streams {
		if stream.CodecType != "video" {
			continue
		}
		md.Width = stream.Width
		md.Height = stream.Height
		if fps, ok := parseFrameRate(stream.RFrameRate); ok {
			md.FPS = fps
		}
		break
	}

	return md
}

// parseFrameRate parses ffprobe's rational frame rate, e.g. "30000/1001".
func parseFrameRate(s string) (float64, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, false
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

// Verify interface implementation at compile time.
var _ Engine = (*FFmpegEngine)(nil)
