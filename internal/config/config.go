package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App    App    `mapstructure:"app"`
	AI     AI     `mapstructure:"ai"`
	Search Search `mapstructure:"search"`
	Video  Video  `mapstructure:"video"`
	Enrich Enrich `mapstructure:"enrich"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// AI holds generative-service configuration.
type AI struct {
	Gemini Gemini `mapstructure:"gemini"`
}

// Gemini holds Google Gemini configuration.
type Gemini struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
}

// Search holds article search configuration.
type Search struct {
	Provider string  `mapstructure:"provider"`
	Quota    int     `mapstructure:"quota"`
	SerpAPI  SerpAPI `mapstructure:"serpapi"`
}

// SerpAPI holds SerpAPI configuration.
type SerpAPI struct {
	APIKey string `mapstructure:"api_key"`
}

// Video holds video search configuration.
type Video struct {
	Provider string  `mapstructure:"provider"`
	Quota    int     `mapstructure:"quota"`
	YouTube  YouTube `mapstructure:"youtube"`
}

// YouTube holds YouTube Data API configuration.
type YouTube struct {
	APIKey string `mapstructure:"api_key"`
}

// Enrich holds enrichment configuration.
type Enrich struct {
	ArticleLimit    int    `mapstructure:"article_limit"`
	SummaryDelay    string `mapstructure:"summary_delay"`
	CaptionLanguage string `mapstructure:"caption_language"`
}

// Load reads configuration in layers: defaults, then an optional YAML
// config file, then .env, then environment variables. Environment wins.
func Load(cfgFile string) (*Config, error) {
	// .env is optional; missing files are not an error.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".blogscout")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("BLOGSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Widely used key names take precedence over nothing, not over the
	// config file.
	if cfg.AI.Gemini.APIKey == "" {
		cfg.AI.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Search.SerpAPI.APIKey == "" {
		cfg.Search.SerpAPI.APIKey = os.Getenv("SERPAPI_API_KEY")
	}
	if cfg.Video.YouTube.APIKey == "" {
		cfg.Video.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	v.SetDefault("ai.gemini.temperature", 0.2)
	v.SetDefault("search.provider", "serpapi")
	v.SetDefault("search.quota", 50)
	v.SetDefault("video.provider", "youtube")
	v.SetDefault("video.quota", 50)
	v.SetDefault("enrich.article_limit", 3)
	v.SetDefault("enrich.summary_delay", "2s")
	v.SetDefault("enrich.caption_language", "en")
}
