package update

import (
	"os"
	"strings"
	"time"
)

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func DesktopNotificationsEnabledFromEnv() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("HABITD_DESKTOP_NOTIFICATIONS")))
	return v == "1" || v == "true" || v == "yes"
}

func formatClock(ms int64) string {
	return time.UnixMilli(ms).Local().Format("15:04")
}
