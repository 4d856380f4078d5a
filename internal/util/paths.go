package util

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DataDir is where the app keeps its database and logs:
// $XDG_DATA_HOME/<app>, falling back to ~/.local/share/<app>.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	return filepath.Join(homeOr("."), ".local", "share", app)
}

// ReportsDir is where generated reports land: <documents>/<app>/reports.
func ReportsDir(app string) string {
	return filepath.Join(documentsDir(), app, "reports")
}

// LogPath returns the log file of the named component inside DataDir.
func LogPath(app, component string) string {
	return filepath.Join(DataDir(app), component+".log")
}

func documentsDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_DOCUMENTS_DIR")); dir != "" {
		return expandHome(dir)
	}
	home := homeOr(".")
	if dir := lookupUserDir(filepath.Join(home, ".config", "user-dirs.dirs"), "XDG_DOCUMENTS_DIR"); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(home, "Documents")
}

// lookupUserDir reads KEY="value" from an xdg user-dirs file.
func lookupUserDir(path, key string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if ok && name == key {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}

func expandHome(path string) string {
	return strings.ReplaceAll(path, "$HOME", homeOr(""))
}

func homeOr(fallback string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return fallback
	}
	return home
}
