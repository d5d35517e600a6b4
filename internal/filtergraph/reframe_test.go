package filtergraph

import (
	"strings"
	"testing"
)

func TestReframeSpec_ScaledDimensions(t *testing.T) {
	spec := ReframeSpec{
		SourceWidth:  720,
		SourceHeight: 1280,
		TargetWidth:  1920,
		TargetHeight: 1080,
	}

	// scale = min(1920/720, 1080/1280) = 0.84375
	// 720*0.84375 = 607.5 -> 607 -> 606 (even)
	// 1280*0.84375 = 1080 (already even)
	w, h := spec.ScaledDimensions()
	if w != 606 || h != 1080 {
		t.Errorf("got %dx%d, want 606x1080", w, h)
	}
}

func TestReframeSpec_IsPortrait(t *testing.T) {
	portrait := ReframeSpec{SourceWidth: 720, SourceHeight: 1280, TargetWidth: 1920, TargetHeight: 1080}
	landscape := ReframeSpec{SourceWidth: 1280, SourceHeight: 720, TargetWidth: 1920, TargetHeight: 1080}
	square := ReframeSpec{SourceWidth: 1080, SourceHeight: 1080, TargetWidth: 1920, TargetHeight: 1080}

	if !portrait.IsPortrait() {
		t.Error("720x1280 must be portrait")
	}
	if landscape.IsPortrait() {
		t.Error("1280x720 must not be portrait")
	}
	if square.IsPortrait() {
		t.Error("square sources pass through unchanged")
	}
}

func TestReframe_BlurBackground(t *testing.T) {
	spec := ReframeSpec{
		SourceWidth:    720,
		SourceHeight:   1280,
		TargetWidth:    1920,
		TargetHeight:   1080,
		BlurBackground: true,
	}

	got := Reframe(spec).String()

	want := "[0:v]scale=1920:1080:force_original_aspect_ratio=increase," +
		"crop=1920:1080,boxblur=20:5[bg];" +
		"[0:v]scale=606:1080[fg];" +
		"[bg][fg]overlay=(W-w)/2:(H-h)/2[outv]"
	if got != want {
		t.Errorf("graph mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

func TestReframe_SolidBackground(t *testing.T) {
	spec := ReframeSpec{
		SourceWidth:  720,
		SourceHeight: 1280,
		TargetWidth:  1920,
		TargetHeight: 1080,
	}

	got := Reframe(spec).String()

	if !strings.Contains(got, "color=black:size=1920x1080[bg]") {
		t.Errorf("missing solid background canvas: %s", got)
	}
	if !strings.Contains(got, "[0:v]scale=606:1080[fg]") {
		t.Errorf("missing scaled foreground: %s", got)
	}
	if !strings.Contains(got, "[bg][fg]overlay=(W-w)/2:(H-h)/2[outv]") {
		t.Errorf("missing centered overlay: %s", got)
	}
	if strings.Contains(got, "boxblur") {
		t.Errorf("solid background must not blur: %s", got)
	}
}

func TestReframe_EvenDimensions(t *testing.T) {
	specs := []ReframeSpec{
		{SourceWidth: 719, SourceHeight: 1281, TargetWidth: 1920, TargetHeight: 1080},
		{SourceWidth: 1079, SourceHeight: 1921, TargetWidth: 1280, TargetHeight: 720},
		{SourceWidth: 405, SourceHeight: 720, TargetWidth: 1920, TargetHeight: 1080},
	}

	for _, spec := range specs {
		w, h := spec.ScaledDimensions()
		if w%2 != 0 || h%2 != 0 {
			t.Errorf("spec %+v produced odd dimensions %dx%d", spec, w, h)
		}
		if w <= 0 || h <= 0 {
			t.Errorf("spec %+v produced non-positive dimensions %dx%d", spec, w, h)
		}
	}
}
