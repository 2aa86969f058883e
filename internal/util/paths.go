package util

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir returns $XDG_DATA_HOME/app, falling back to ~/.local/share/app.
func DataDir(app string) string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), app)
}

// ConfigDir returns $XDG_CONFIG_HOME/app, falling back to ~/.config/app.
func ConfigDir(app string) string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), app)
}

// ReportsDir is where exported PDFs go by default.
func ReportsDir(app string) string {
	return filepath.Join(DocumentsDir(), strings.ToUpper(app))
}

// DocumentsDir honours XDG_DOCUMENTS_DIR from the environment or from
// user-dirs.dirs before falling back to ~/Documents.
func DocumentsDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_DOCUMENTS_DIR")); dir != "" {
		return expandHome(dir)
	}
	home := homeDir()
	if home == "" {
		return "."
	}
	userDirs := filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "user-dirs.dirs")
	if data, err := os.ReadFile(userDirs); err == nil {
		if dir := userDirEntry(string(data), "XDG_DOCUMENTS_DIR"); dir != "" {
			return expandHome(dir)
		}
	}
	return filepath.Join(home, "Documents")
}

// xdgDir is the directory named by env, or home joined with fallback. With
// no usable home it resolves relative to the working directory.
func xdgDir(env string, fallback ...string) string {
	if dir := strings.TrimSpace(os.Getenv(env)); dir != "" {
		return dir
	}
	home := homeDir()
	if home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// userDirEntry reads KEY="value" from a user-dirs.dirs file.
func userDirEntry(data, key string) string {
	for _, line := range strings.Split(data, "\n") {
		name, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok || name != key {
			continue
		}
		return strings.Trim(value, `"`)
	}
	return ""
}

func expandHome(path string) string {
	return os.Expand(path, func(name string) string {
		if name == "HOME" {
			return homeDir()
		}
		return "$" + name
	})
}
