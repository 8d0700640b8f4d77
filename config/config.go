package config

import (
	"log/slog"
	"os"

	"github.com/owasp-blt/showcase/enums"
)

type AppConfig struct {
	Repository     string // owner/repo
	GithubToken    string // optional; raises the API rate limit
	GithubAPIURL   string
	OutputPath     string
	ContestsPath   string // optional; embedded defaults when empty
	PushgatewayURL string // optional; build metrics are skipped when empty
	RankMode       enums.RankMode
	LogLevel       slog.Level
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.Repository = loadOptional("GITHUB_REPOSITORY", "OWASP-BLT/BLT-Design-Contest")
	cfg.GithubToken = os.Getenv("GITHUB_TOKEN")
	cfg.GithubAPIURL = loadOptional("GITHUB_API_URL", "https://api.github.com")
	cfg.OutputPath = loadOptional("OUTPUT_PATH", "index.html")
	cfg.ContestsPath = os.Getenv("CONTESTS_PATH")
	cfg.PushgatewayURL = os.Getenv("PUSHGATEWAY_URL")

	rankString := loadOptional("RANK_MODE", string(enums.RankModeThumbs))
	cfg.RankMode = enums.RankMode(rankString)
	if cfg.RankMode != enums.RankModeThumbs && cfg.RankMode != enums.RankModeAll {
		slog.Error("Invalid RANK_MODE", "value", rankString)
		cfg.RankMode = enums.RankModeThumbs
	}

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	var err error
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	Config = cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
