package config

import (
	"os"

	"github.com/joho/godotenv"
)

// DotEnvCandidates returns the .env files considered for env, highest priority first.
func DotEnvCandidates(env string) []string {
	candidates := []string{}
	if env != "" {
		candidates = append(candidates, ".env."+env+".local", ".env."+env)
	}
	return append(candidates, ".env.local", ".env")
}

// LoadDotEnv loads the existing candidate files for env.
// godotenv.Load never overwrites variables that are already set, so OS env vars
// always win and earlier candidates win over later ones.
// Returns list of files actually loaded.
func LoadDotEnv(env string) []string {
	var loaded []string
	for _, f := range DotEnvCandidates(env) {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

// ConfigPath returns the YAML config path for env.
func ConfigPath(env string) string {
	if env == "" {
		env = "local"
	}
	return "configs/config." + env + ".yaml"
}
