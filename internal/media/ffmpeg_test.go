package media

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMetadataFromProbe(t *testing.T) {
	raw := `{
		"streams": [
			{"codec_type": "audio"},
			{"codec_type": "video", "width": 1920, "height": 1080, "r_frame_rate": "30000/1001"}
		],
		"format": {"duration": "12.48", "size": "1048576", "format_name": "mov,mp4,m4a"}
	}`

	var out probeOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	md := metadataFromProbe(out)
	if md.Duration != 12.48 {
		t.Errorf("duration: got %v", md.Duration)
	}
	if md.Width != 1920 || md.Height != 1080 {
		t.Errorf("dimensions: got %dx%d", md.Width, md.Height)
	}
	if md.FPS < 29.96 || md.FPS > 29.98 {
		t.Errorf("fps: got %v, want ~29.97", md.FPS)
	}
	if md.FileSize != 1048576 {
		t.Errorf("file size: got %d", md.FileSize)
	}
	if md.Container != "mov,mp4,m4a" {
		t.Errorf("container: got %q", md.Container)
	}
	if md.IsPortrait() {
		t.Error("1920x1080 must not be portrait")
	}
}

func TestMetadataFromProbe_MissingFields(t *testing.T) {
	md := metadataFromProbe(probeOutput{})

	if md.Duration != 0 || md.Width != 0 || md.Height != 0 {
		t.Errorf("expected zero values, got %+v", md)
	}
	if md.FPS != 30 {
		t.Errorf("fps must default to 30, got %v", md.FPS)
	}
	if md.Container != "unknown" {
		t.Errorf("container must default to unknown, got %q", md.Container)
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOk bool
	}{
		{"30/1", 30, true},
		{"30000/1001", 29.97002997002997, true},
		{"30", 0, false},
		{"a/b", 0, false},
		{"30/0", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseFrameRate(tt.in)
		if ok != tt.wantOk || got != tt.want {
			t.Errorf("parseFrameRate(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestDefaultMetadata(t *testing.T) {
	md := DefaultMetadata()
	if md.Duration != 30 || md.Width != 0 || md.Height != 0 {
		t.Errorf("unexpected defaults: %+v", md)
	}
}

func TestProbeOrDefault_Degrades(t *testing.T) {
	e := NewFFmpegEngine("", "/nonexistent/ffprobe-binary")

	md := e.ProbeOrDefault(context.Background(), "input.mp4")
	if md != DefaultMetadata() {
		t.Errorf("expected conservative defaults, got %+v", md)
	}

	_, err := e.Probe(context.Background(), "input.mp4")
	if !errors.Is(err, ErrProbeFailed) {
		t.Errorf("expected ErrProbeFailed, got %v", err)
	}
}

func TestRender_NoInputs(t *testing.T) {
	e := NewFFmpegEngine("", "")
	if err := e.Render(context.Background(), nil, "", nil, "out.mp4"); !errors.Is(err, ErrNoInputs) {
		t.Errorf("expected ErrNoInputs, got %v", err)
	}
}
