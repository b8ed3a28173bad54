package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "CSVCHARTS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	API       APIConfig       `mapstructure:"api"`
	Log       LogConfig       `mapstructure:"log"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	WordCloud WordCloudConfig `mapstructure:"wordcloud"`
	Import    ImportConfig    `mapstructure:"import"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	StaticDir    string        `mapstructure:"static_dir"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type APIConfig struct {
	// StrictErrors answers failed requests with HTTP 500 instead of 200.
	StrictErrors bool `mapstructure:"strict_errors"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type TableRef struct {
	Table string `mapstructure:"table"`
}

type ColumnRef struct {
	Table  string `mapstructure:"table"`
	Column string `mapstructure:"column"`
}

type SourcesConfig struct {
	Location     TableRef  `mapstructure:"location"`
	WordCloud    ColumnRef `mapstructure:"wordcloud"`
	PublishTimes ColumnRef `mapstructure:"publish_times"`
	Themes       ColumnRef `mapstructure:"themes"`
}

type WordCloudConfig struct {
	TopK            int      `mapstructure:"top_k"`
	StopWordsFile   string   `mapstructure:"stopwords_file"`
	Segmentation    string   `mapstructure:"segmentation"`
	DictionaryFiles []string `mapstructure:"dictionary_files"`
	StemLatin       bool     `mapstructure:"stem_latin"`
	FoldWidth       bool     `mapstructure:"fold_width"`
}

type ImportConfig struct {
	Dir       string `mapstructure:"dir"`
	BatchSize int    `mapstructure:"batch_size"`
	Workers   int    `mapstructure:"workers"`
}

const (
	SegmentationRuns       = "runs"
	SegmentationDictionary = "dictionary"
)

func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.static_dir", "static")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("database.path", "Sqlite/data.db")

	v.SetDefault("api.strict_errors", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("sources.location.table", "publish_location_count")
	v.SetDefault("sources.wordcloud.table", "recommend_reason_count")
	v.SetDefault("sources.wordcloud.column", "recommend_reason")
	v.SetDefault("sources.publish_times.table", "video_publish_times")
	v.SetDefault("sources.publish_times.column", "publish_time")
	v.SetDefault("sources.themes.table", "theme_name_data")
	v.SetDefault("sources.themes.column", "theme_name")

	v.SetDefault("wordcloud.top_k", 100)
	v.SetDefault("wordcloud.stopwords_file", "")
	v.SetDefault("wordcloud.segmentation", SegmentationRuns)
	v.SetDefault("wordcloud.dictionary_files", []string{})
	v.SetDefault("wordcloud.stem_latin", false)
	v.SetDefault("wordcloud.fold_width", false)

	v.SetDefault("import.dir", "csv_files")
	v.SetDefault("import.batch_size", 500)
	v.SetDefault("import.workers", 4)
}

// Load reads configuration from defaults, an optional config file and
// CSVCHARTS_* environment variables, in increasing precedence. Flags bound
// to v by the caller win over all of them.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("csvcharts")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}

	refs := map[string]string{
		"sources.location.table":       c.Sources.Location.Table,
		"sources.wordcloud.table":      c.Sources.WordCloud.Table,
		"sources.wordcloud.column":     c.Sources.WordCloud.Column,
		"sources.publish_times.table":  c.Sources.PublishTimes.Table,
		"sources.publish_times.column": c.Sources.PublishTimes.Column,
		"sources.themes.table":         c.Sources.Themes.Table,
		"sources.themes.column":        c.Sources.Themes.Column,
	}
	for key, name := range refs {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s is required", key)
		}
	}

	if c.WordCloud.TopK <= 0 {
		return fmt.Errorf("wordcloud.top_k must be positive, got %d", c.WordCloud.TopK)
	}
	switch c.WordCloud.Segmentation {
	case SegmentationRuns, SegmentationDictionary:
	default:
		return fmt.Errorf("wordcloud.segmentation must be %q or %q, got %q",
			SegmentationRuns, SegmentationDictionary, c.WordCloud.Segmentation)
	}
	return nil
}
