package gradgen

import "time"

// Notice is a transient message for the user. Hosts decide how to show it
// and for how long; Duration is the suggested display time.
type Notice struct {
	Key      string        `json:"key"`      // stable identifier, safe for URLs
	Message  string        `json:"message"`  // "Color stop removed."
	Level    string        `json:"level"`    // "", "warning", "error"
	Duration time.Duration `json:"duration"` // 1.5s
}

// Notice levels
const (
	LevelInfo    = ""
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notices emitted by the Editor.
var (
	NoticeStopAdded      = Notice{Key: "stop-added", Message: "New color stop added.", Duration: 1500 * time.Millisecond}
	NoticeStopRemoved    = Notice{Key: "stop-removed", Message: "Color stop removed.", Duration: 1500 * time.Millisecond}
	NoticeMinimumStops   = Notice{Key: "minimum-stops", Message: "Must have at least two color stops.", Level: LevelWarning, Duration: 3 * time.Second}
	NoticeRandomized     = Notice{Key: "randomized", Message: "New random gradient generated! ✨", Duration: 3 * time.Second}
	NoticeLoadedFromURL  = Notice{Key: "loaded", Message: "Gradient loaded from URL! 🔗", Duration: 3 * time.Second}
	NoticeInvalidURL     = Notice{Key: "invalid-url", Message: "Invalid gradient URL data.", Level: LevelError, Duration: 3 * time.Second}
	NoticeCSSCopied      = Notice{Key: "css-copied", Message: "CSS code copied!", Duration: time.Second}
	NoticeCSSCopyError   = Notice{Key: "css-copy-failed", Message: "Failed to copy CSS.", Level: LevelError, Duration: 2 * time.Second}
	NoticeShareCopied    = Notice{Key: "share-copied", Message: "Share URL copied to clipboard! 📋", Duration: 2 * time.Second}
	NoticeShareCopyError = Notice{Key: "share-copy-failed", Message: "Failed to copy URL.", Level: LevelError, Duration: 2 * time.Second}
	NoticeInvalidColor   = Notice{Key: "invalid-color", Message: "Colors must be #rgb or #rrggbb.", Level: LevelWarning, Duration: 2 * time.Second}
)

var noticesByKey = map[string]Notice{}

func init() {
	for _, n := range []Notice{
		NoticeStopAdded, NoticeStopRemoved, NoticeMinimumStops, NoticeRandomized,
		NoticeLoadedFromURL, NoticeInvalidURL, NoticeCSSCopied, NoticeCSSCopyError, NoticeShareCopied,
		NoticeShareCopyError, NoticeInvalidColor,
	} {
		noticesByKey[n.Key] = n
	}
}

// LookupNotice finds a notice by its Key.
func LookupNotice(key string) (Notice, bool) {
	n, ok := noticesByKey[key]
	return n, ok
}
