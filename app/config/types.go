package config

// Vertical represents one topical configuration of the publishing pipeline.
// All verticals share the same pipeline; only the data below differs.
type Vertical struct {
	ID    string   // Derived from filename (without .yml extension)
	Name  string   `yaml:"name"`
	Page  string   `yaml:"page"` // Main HTML page, relative to the site directory
	Feeds []string `yaml:"feeds"`

	Settings Settings `yaml:"settings"`
	Prompt   Prompt   `yaml:"prompt"`
	Filter   Filter   `yaml:"filter"`
	Anchors  Anchors  `yaml:"anchors"`
	Archive  Archive  `yaml:"archive"`
}

type Settings struct {
	Enabled            bool `yaml:"enabled"`
	MaxArticles        int  `yaml:"max_articles"`
	RefreshInterval    int  `yaml:"refresh_interval"` // seconds, daemon mode only
	PublishEmpty       bool `yaml:"publish_empty"`    // publish a placeholder when no items were fetched
	EnrichDescriptions bool `yaml:"enrich_descriptions"`
	IncludeSources     bool `yaml:"include_sources"`
}

type Prompt struct {
	Topic     string   `yaml:"topic"` // e.g. "GAMING", "TECHNOLOGY"
	Persona   string   `yaml:"persona"`
	Scope     []string `yaml:"scope"`
	Rules     []string `yaml:"rules"`
	WordRange string   `yaml:"word_range"`
}

// Filter drops summary headings whose text matches none of the keywords.
// An empty keyword list disables filtering.
type Filter struct {
	HeadingKeywords []string `yaml:"heading_keywords"`
}

type Anchors struct {
	Article     string `yaml:"article"`      // id of the briefing region, e.g. "article"
	ArchiveList string `yaml:"archive_list"` // id of the archive index region, empty disables the index
}

type Archive struct {
	Dir        string `yaml:"dir"` // relative to the site directory
	Title      string `yaml:"title"`
	BackLink   string `yaml:"back_link"`
	EmptyLabel string `yaml:"empty_label"`
}
