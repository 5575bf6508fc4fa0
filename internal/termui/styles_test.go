package termui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/yacobolo/gradgen"
)

func TestNoticeStyle(t *testing.T) {
	tests := []struct {
		notice gradgen.Notice
		want   lipgloss.Style
	}{
		{gradgen.NoticeStopAdded, StyleGreen},
		{gradgen.NoticeMinimumStops, StyleYellow},
		{gradgen.NoticeInvalidURL, StyleRed},
		{gradgen.Notice{Key: "unknown-level", Level: "debug"}, StyleGray},
	}

	for _, tt := range tests {
		t.Run(tt.notice.Key, func(t *testing.T) {
			got := NoticeStyle(tt.notice.Level)
			assert.Equal(t, tt.want.GetForeground(), got.GetForeground())
			assert.Equal(t, tt.want.GetBold(), got.GetBold())
		})
	}
}
