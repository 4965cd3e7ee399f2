package game

// AudioCommand tells the client audio player what to do. Either MusicSrc or
// FxSrc is set, never both.
type AudioCommand struct {
	MusicSrc           string  `json:"musicSrc,omitempty"`
	FxSrc              string  `json:"fxSrc,omitempty"`
	Loop               bool    `json:"loop,omitempty"`
	StopPreviousSounds bool    `json:"stopPreviousSounds,omitempty"`
	Volume             float64 `json:"volume"`
}

// Client-side audio asset paths.
const (
	MusicFastestFinger         = "assets/audio/fastest_finger.mp3"
	MusicFastestFingerReveal   = "assets/audio/fastest_finger_reveal.mp3"
	MusicHotSeatBackground     = "assets/audio/hot_seat_background.mp3"
	MusicAskTheAudience        = "assets/audio/ask_the_audience.mp3"
	SfxThreeStrikes            = "assets/audio/three_strikes.mp3"
	SfxFinalAnswer             = "assets/audio/final_answer.mp3"
	SfxVictory                 = "assets/audio/victory.mp3"
	SfxLoss                    = "assets/audio/loss.mp3"
	SfxWalkAway                = "assets/audio/walk_away.mp3"
)
