package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one group of console routes.
type Rule struct {
	Name   string
	Prefix string // exact path, or a prefix when it ends in "/"
	Method string // empty matches any method
	Limit  int    // requests per Window; 0 means unlimited
	Window time.Duration
	Burst  int // bucket capacity, defaults to Limit
}

func (r *Rule) capacity() int {
	if r.Burst > 0 {
		return r.Burst
	}
	return r.Limit
}

// DefaultConfig returns an enabled config with DefaultRules.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		Rules:           DefaultRules(),
	}
}

// LoadConfig reads RATE_LIMIT_* variables over DefaultConfig.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.IdleTTL = envDuration("RATE_LIMIT_IDLE_TTL", cfg.IdleTTL)
	cfg.Whitelist = clientSet(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = clientSet(os.Getenv("RATE_LIMIT_BLACKLIST"))

	// The ATS proxy spends backend AI credits, so its budget is tunable.
	for i := range cfg.Rules {
		if cfg.Rules[i].Name == "ats" {
			cfg.Rules[i].Limit = envInt("RATE_LIMIT_ATS_LIMIT", cfg.Rules[i].Limit)
			cfg.Rules[i].Window = envDuration("RATE_LIMIT_ATS_WINDOW", cfg.Rules[i].Window)
		}
	}
	return cfg
}

// DefaultRules returns the console route budgets, strictest first.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "health", Prefix: "/health", Method: "GET"},
		{Name: "ats", Prefix: "/api/ats-analyze", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Name: "board-load", Prefix: "/board/load", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Name: "board-read", Prefix: "/board", Method: "GET", Limit: 300, Window: time.Minute, Burst: 60},
		{Name: "board-write", Prefix: "/board/", Limit: 120, Window: time.Minute, Burst: 20},
		{Name: "charts", Prefix: "/charts/", Method: "GET", Limit: 600, Window: time.Minute, Burst: 100},
	}
}

func envInt(key string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return def
}

func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}

// clientSet parses a comma-separated list of client addresses.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = true
		}
	}
	return set
}
