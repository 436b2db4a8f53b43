package service

import "math"

// EstimateSampleSeconds estimates how long an uploaded sample plays from
// its byte size alone. Average mp3 bitrate is ~128kbps, so one minute is
// roughly 960KB. Deliberately rough, not a media probe.
func EstimateSampleSeconds(size int64) int {
	return int(math.Ceil(float64(size) / 1024 / 16))
}

// EstimateSpeechSeconds estimates the play time of generated speech from
// the input text: ~5 characters per word at ~150 words per minute,
// rounded up to whole seconds
func EstimateSpeechSeconds(text string) int {
	words := float64(len(text)) / 5
	minutes := words / 150

	return int(math.Ceil(minutes * 60))
}
