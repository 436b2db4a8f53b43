package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateSampleSeconds(t *testing.T) {
	tests := []struct {
		name string
		size int64
		want int
	}{
		{"one byte rounds up", 1, 1},
		{"exactly 16KB is one second", 16 * 1024, 1},
		{"just over 16KB is two seconds", 16*1024 + 1, 2},
		{"960KB is one minute", 960 * 1024, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateSampleSeconds(tt.size))
		})
	}
}

func TestEstimateSpeechSeconds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"single char rounds up", "a", 1},
		{"120 chars", strings.Repeat("a", 120), 10},
		{"exactly one minute", strings.Repeat("a", 750), 60},
		{"5000 chars", strings.Repeat("a", 5000), 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateSpeechSeconds(tt.text))
		})
	}
}
