package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// EnvFileOverrideVar names a .env file that wins over the --env flag.
const EnvFileOverrideVar = "TRANSLATE_ENV_FILE"

// ErrNoEnvFile is returned when none of the candidate .env files could be loaded.
var ErrNoEnvFile = errors.New("no env file loaded")

// EnvLoader loads .env files with a predictable override order.
type EnvLoader struct {
	value       *string
	defaultPath string
}

// AddEnvFlag registers an --env flag and returns an EnvLoader.
func AddEnvFlag(fs *flag.FlagSet, defaultPath, description string) *EnvLoader {
	if fs == nil {
		fs = flag.CommandLine
	}
	if defaultPath == "" {
		defaultPath = ".env"
	}
	if description == "" {
		description = "Path to the .env file"
	}

	value := fs.String("env", defaultPath, description)
	return &EnvLoader{
		value:       value,
		defaultPath: defaultPath,
	}
}

// Load overlays the first loadable candidate onto the process environment:
// $TRANSLATE_ENV_FILE, the --env value, its basename, then the default path.
func (l *EnvLoader) Load() (string, error) {
	if l == nil {
		return "", fmt.Errorf("env loader is nil")
	}

	tried := make([]string, 0, 4)
	for _, candidate := range l.candidates() {
		if containsPath(tried, candidate) {
			continue
		}
		tried = append(tried, candidate)
		if err := godotenv.Overload(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w (tried %s)", ErrNoEnvFile, strings.Join(tried, ", "))
}

func (l *EnvLoader) candidates() []string {
	candidates := make([]string, 0, 4)
	if custom := strings.TrimSpace(os.Getenv(EnvFileOverrideVar)); custom != "" {
		candidates = append(candidates, custom)
	}

	requested := strings.TrimSpace(derefString(l.value))
	if requested == "" {
		requested = l.defaultPath
	}
	candidates = append(candidates, requested)
	if base := filepath.Base(requested); base != "" && base != requested {
		candidates = append(candidates, base)
	}
	return append(candidates, l.defaultPath)
}

func containsPath(paths []string, path string) bool {
	for _, existing := range paths {
		if existing == path {
			return true
		}
	}
	return false
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
