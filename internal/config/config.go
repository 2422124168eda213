package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config bundles every option the engine consumes, loaded from an
// optional .env file in the project root with environment variables
// taking precedence, the same two-layer load a device-credentials loader
// would use.
type Config struct {
	Scope     string // "voter", "relative", or "anywhere"
	ExactOnly bool

	PrefixLenStrict int
	PrefixLenExact  int
	PrefixLenLoose  int

	MaxConPerWord     int
	MaxConTotal2W     int
	MaxConTotal3PlusW int

	PFMaxSubsFor2W          int
	PFMaxSubsFor3W          int
	PFMaxExtraSuffixPerWord int
	PFGlobalExtraMultiplier int

	AddFirstWordMaxAddInMulti int

	IndexDBPath string
	HTTPAddr    string
}

var (
	loaded     *Config
	loadedOnce bool
)

// Load reads the engine configuration, caching the result. Call order is:
// compiled-in defaults, then .env in the project root, then environment
// variables, each layer overriding the last.
func Load() *Config {
	if loaded != nil && loadedOnce {
		return loaded
	}

	cfg := Default()

	projectRoot := findProjectRoot()
	envPath := filepath.Join(projectRoot, ".env")
	if data, err := os.ReadFile(envPath); err == nil {
		parseEnvFile(string(data), cfg)
	}
	applyEnv(cfg)

	loaded = cfg
	loadedOnce = true
	return cfg
}

// Default returns the compiled-in defaults.
func Default() *Config {
	return &Config{
		Scope:                     "anywhere",
		PrefixLenStrict:           3,
		PrefixLenExact:            2,
		PrefixLenLoose:            2,
		MaxConPerWord:             4,
		MaxConTotal2W:             5,
		MaxConTotal3PlusW:         7,
		PFMaxSubsFor2W:            1,
		PFMaxSubsFor3W:            2,
		PFMaxExtraSuffixPerWord:   2,
		PFGlobalExtraMultiplier:   2,
		AddFirstWordMaxAddInMulti: 2,
		IndexDBPath:               "voterfind.db",
		HTTPAddr:                  ":8080",
	}
}

func parseEnvFile(content string, cfg *Config) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		setField(cfg, strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
}

func applyEnv(cfg *Config) {
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			setField(cfg, key, v)
		}
	}
}

var envKeys = []string{
	"VOTERFIND_SCOPE", "VOTERFIND_EXACT_ONLY",
	"VOTERFIND_PREFIX_LEN_STRICT", "VOTERFIND_PREFIX_LEN_EXACT", "VOTERFIND_PREFIX_LEN_LOOSE",
	"VOTERFIND_MAX_CON_PER_WORD", "VOTERFIND_MAX_CON_TOTAL_2W", "VOTERFIND_MAX_CON_TOTAL_3W",
	"VOTERFIND_PF_MAX_SUBS_2W", "VOTERFIND_PF_MAX_SUBS_3W",
	"VOTERFIND_PF_MAX_EXTRA_SUFFIX", "VOTERFIND_PF_GLOBAL_EXTRA_MULTIPLIER",
	"VOTERFIND_ADD_FIRST_WORD_MAX", "VOTERFIND_INDEX_DB_PATH", "VOTERFIND_HTTP_ADDR",
}

func setField(cfg *Config, key, value string) {
	asInt := func() (int, bool) {
		n, err := strconv.Atoi(value)
		return n, err == nil
	}
	switch key {
	case "VOTERFIND_SCOPE":
		cfg.Scope = value
	case "VOTERFIND_EXACT_ONLY":
		cfg.ExactOnly = value == "1" || strings.EqualFold(value, "true")
	case "VOTERFIND_PREFIX_LEN_STRICT":
		if n, ok := asInt(); ok {
			cfg.PrefixLenStrict = n
		}
	case "VOTERFIND_PREFIX_LEN_EXACT":
		if n, ok := asInt(); ok {
			cfg.PrefixLenExact = n
		}
	case "VOTERFIND_PREFIX_LEN_LOOSE":
		if n, ok := asInt(); ok {
			cfg.PrefixLenLoose = n
		}
	case "VOTERFIND_MAX_CON_PER_WORD":
		if n, ok := asInt(); ok {
			cfg.MaxConPerWord = n
		}
	case "VOTERFIND_MAX_CON_TOTAL_2W":
		if n, ok := asInt(); ok {
			cfg.MaxConTotal2W = n
		}
	case "VOTERFIND_MAX_CON_TOTAL_3W":
		if n, ok := asInt(); ok {
			cfg.MaxConTotal3PlusW = n
		}
	case "VOTERFIND_PF_MAX_SUBS_2W":
		if n, ok := asInt(); ok {
			cfg.PFMaxSubsFor2W = n
		}
	case "VOTERFIND_PF_MAX_SUBS_3W":
		if n, ok := asInt(); ok {
			cfg.PFMaxSubsFor3W = n
		}
	case "VOTERFIND_PF_MAX_EXTRA_SUFFIX":
		if n, ok := asInt(); ok {
			cfg.PFMaxExtraSuffixPerWord = n
		}
	case "VOTERFIND_PF_GLOBAL_EXTRA_MULTIPLIER":
		if n, ok := asInt(); ok {
			cfg.PFGlobalExtraMultiplier = n
		}
	case "VOTERFIND_ADD_FIRST_WORD_MAX":
		if n, ok := asInt(); ok {
			cfg.AddFirstWordMaxAddInMulti = n
		}
	case "VOTERFIND_INDEX_DB_PATH":
		cfg.IndexDBPath = value
	case "VOTERFIND_HTTP_ADDR":
		cfg.HTTPAddr = value
	}
}

func findProjectRoot() string {
	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, ".env")); err == nil {
		return cwd
	}
	for {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			return cwd
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			return cwd
		}
		cwd = parent
	}
}
