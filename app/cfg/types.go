package cfg

type Cfg struct {
	// Summarization
	OpenAIAPIKey string
	Model        string
	MaxTokens    int

	// Content layout
	VerticalsDir string
	SiteDir      string
	DBPath       string

	// Fetching
	FetchTimeout int // seconds
	UserAgent    string

	// Daemon mode
	Daemon            bool
	Port              string
	SchedulerInterval int // seconds

	// Notifications
	TelegramToken  string
	TelegramChatID int64

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
