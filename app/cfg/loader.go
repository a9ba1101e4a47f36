package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Summarization
	OpenAIAPIKey string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key (required)" required:"true"`
	Model        string `long:"model" env:"OPENAI_MODEL" default:"gpt-4.1-mini" description:"Chat completion model used for briefings"`
	MaxTokens    int    `long:"max-tokens" env:"OPENAI_MAX_TOKENS" default:"900" description:"Output token budget per briefing"`

	// Content layout
	VerticalsDir string `long:"verticals-dir" env:"VERTICALS_DIR" default:"./verticals" description:"Directory containing vertical configuration files"`
	SiteDir      string `long:"site-dir" env:"SITE_DIR" default:"." description:"Directory containing the published HTML pages"`
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./briefgen.db" description:"Path to the run history database"`

	// Fetching
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Per-feed HTTP timeout in seconds"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"briefgen/1.0" description:"User agent string for HTTP requests"`

	// Daemon mode
	Daemon            bool   `long:"daemon" env:"DAEMON" description:"Keep running and publish verticals on a schedule"`
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP status server port (daemon mode)"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"300" description:"Scheduler wakeup interval in seconds (daemon mode)"`

	// Notifications
	TelegramToken  string `long:"telegram-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token for publish notifications (optional)"`
	TelegramChatID int64  `long:"telegram-chat-id" env:"TELEGRAM_CHAT_ID" description:"Telegram chat ID for publish notifications (optional)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps and date slugs (e.g. UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		OpenAIAPIKey:      raw.OpenAIAPIKey,
		Model:             raw.Model,
		MaxTokens:         raw.MaxTokens,
		VerticalsDir:      raw.VerticalsDir,
		SiteDir:           raw.SiteDir,
		DBPath:            raw.DBPath,
		FetchTimeout:      raw.FetchTimeout,
		UserAgent:         raw.UserAgent,
		Daemon:            raw.Daemon,
		Port:              raw.Port,
		SchedulerInterval: raw.SchedulerInterval,
		TelegramToken:     raw.TelegramToken,
		TelegramChatID:    raw.TelegramChatID,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		loc, err := time.LoadLocation(timezone)
		if err != nil {
			return err
		}
		time.Local = loc
	}
	return nil
}
