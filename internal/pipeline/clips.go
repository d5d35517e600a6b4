package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/reelcut/reelcut-api/internal/video/id"
)

// Clip is a candidate highlight window within a video. The score is a
// random stub standing in for future content analysis.
type Clip struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Score     float64 `json:"score"`
	Summary   string  `json:"summary"`
}

// ViralClips returns count randomly placed candidate windows of
// clipDuration seconds, clamped to the video bounds. A video shorter than
// clipDuration yields full-length windows. Zero count or duration take
// the defaults of 3 clips of 30 seconds.
func (p *Pipeline) ViralClips(ctx context.Context, videoID string, count int, clipDuration float64) ([]Clip, error) {
	if count <= 0 {
		count = 3
	}
	if clipDuration <= 0 {
		clipDuration = 30
	}

	v, err := p.repo.FindByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	total := v.Metadata.Duration

	clips := make([]Clip, 0, count)
	for i := 0; i < count; i++ {
		var start, end float64
		if total <= clipDuration {
			start, end = 0, total
		} else {
			start = p.randFloat() * (total - clipDuration)
			end = math.Min(total, start+clipDuration)
		}

		clips = append(clips, Clip{
			ID:        id.WithPrefix("clip"),
			StartTime: round2(start),
			EndTime:   round2(end),
			Score:     round2(0.8 + p.randFloat()*0.19),
			Summary:   fmt.Sprintf("Viral Highlight #%d - Key moment detected", i+1),
		})
	}

	return clips, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
