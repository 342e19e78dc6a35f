package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Classifier holds the classification knobs shared by every service.
type Classifier struct {
	TopWords       int
	MinMatches     int
	AllowStrong    bool
	TaxonomyFile   string
	DetectLanguage bool
}

// Tagger configures the batch tagger CLI.
type Tagger struct {
	Classifier
	DataDir string
	OutDir  string
	Workers int
}

// Downloader configures the corpus downloader CLI.
type Downloader struct {
	APIKey      string
	APIURL      string
	Countries   []string
	PerCountry  int
	OutDir      string
	Categories  []string
	LanguageAll string
	Pause       time.Duration
	Timeout     time.Duration
	Feeds       []string
}

// Worker holds configuration for the Kafka tagging worker.
type Worker struct {
	Classifier
	KafkaBrokers     []string
	KafkaTopic       string
	KafkaOutputTopic string
	KafkaConsumer    string
	DedupeCapacity   int
	DedupeTTL        time.Duration
	BatchSize        int
}

// API describes HTTP-layer configuration.
type API struct {
	Classifier
	BindAddr string
}

// Retention configures the report cleanup loop.
type Retention struct {
	Dir      string
	Interval time.Duration
	MaxAge   time.Duration
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are named. A missing file is not an error; variables already set win.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadClassifier reads the shared classification settings.
func LoadClassifier() (Classifier, error) {
	c := Classifier{
		TopWords:       getInt("TAGGER_TOP_WORDS", 12),
		MinMatches:     getInt("TAGGER_MIN_MATCHES", 2),
		AllowStrong:    getBool("TAGGER_ALLOW_STRONG", true),
		TaxonomyFile:   getEnv("TAGGER_TAXONOMY_FILE", ""),
		DetectLanguage: getBool("TAGGER_DETECT_LANGUAGE", false),
	}

	if c.TopWords < 0 {
		return Classifier{}, fmt.Errorf("TAGGER_TOP_WORDS cannot be negative")
	}
	if c.MinMatches <= 0 {
		return Classifier{}, fmt.Errorf("TAGGER_MIN_MATCHES must be positive")
	}

	return c, nil
}

// LoadTagger builds a Tagger config from environment variables.
func LoadTagger() (*Tagger, error) {
	cl, err := LoadClassifier()
	if err != nil {
		return nil, err
	}

	c := &Tagger{
		Classifier: cl,
		DataDir:    getEnv("TAGGER_DATA_DIR", "./data"),
		OutDir:     getEnv("TAGGER_OUT_DIR", "./output"),
		Workers:    getInt("TAGGER_WORKERS", 4),
	}

	if c.Workers <= 0 {
		return nil, fmt.Errorf("TAGGER_WORKERS must be positive")
	}

	return c, nil
}

// LoadDownloader builds a Downloader config from environment variables.
// The API key is checked by the caller, since feed-only runs do not need it.
func LoadDownloader() (*Downloader, error) {
	c := &Downloader{
		APIKey:      strings.TrimSpace(getEnv("NEWSDATA_API_KEY", "")),
		APIURL:      getEnv("NEWSDATA_API_URL", "https://newsdata.io/api/1/news"),
		Countries:   splitLower(getEnv("DOWNLOADER_COUNTRIES", "us,mx,es,ar,br,co,cl,pe,cr,gb")),
		PerCountry:  getInt("DOWNLOADER_PER_COUNTRY", 1),
		OutDir:      getEnv("DOWNLOADER_OUT_DIR", "./data"),
		Categories:  splitLower(getEnv("DOWNLOADER_CATEGORIES", "")),
		LanguageAll: strings.ToLower(strings.TrimSpace(getEnv("DOWNLOADER_LANGUAGE_ALL", ""))),
		Pause:       getDuration("DOWNLOADER_PAUSE", "600ms"),
		Timeout:     getDuration("DOWNLOADER_TIMEOUT", "20s"),
		Feeds:       splitAndTrim(getEnv("DOWNLOADER_FEEDS", "")),
	}

	if c.PerCountry <= 0 {
		return nil, fmt.Errorf("DOWNLOADER_PER_COUNTRY must be positive")
	}
	if c.Pause < 0 {
		return nil, fmt.Errorf("DOWNLOADER_PAUSE cannot be negative")
	}
	if c.Timeout <= 0 {
		return nil, fmt.Errorf("DOWNLOADER_TIMEOUT must be positive")
	}

	return c, nil
}

// LoadWorker builds a Worker config from environment variables.
func LoadWorker() (*Worker, error) {
	cl, err := LoadClassifier()
	if err != nil {
		return nil, err
	}

	c := &Worker{
		Classifier:       cl,
		KafkaBrokers:     splitAndTrim(getEnv("KAFKA_BROKERS", "kafka:9092")),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "news_raw"),
		KafkaOutputTopic: getEnv("KAFKA_OUTPUT_TOPIC", "news_tagged"),
		KafkaConsumer:    getEnv("KAFKA_CONSUMER_GROUP", "news-tagger"),
		DedupeCapacity:   getInt("WORKER_DEDUPE_CAPACITY", 20000),
		DedupeTTL:        getDuration("WORKER_DEDUPE_TTL", "24h"),
		BatchSize:        getInt("WORKER_BATCH_SIZE", 10),
	}

	if len(c.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS must contain at least one broker")
	}
	if c.KafkaTopic == c.KafkaOutputTopic {
		return nil, fmt.Errorf("KAFKA_OUTPUT_TOPIC must differ from KAFKA_TOPIC")
	}
	if c.BatchSize <= 0 {
		return nil, fmt.Errorf("WORKER_BATCH_SIZE must be positive")
	}
	if c.DedupeCapacity <= 0 {
		return nil, fmt.Errorf("WORKER_DEDUPE_CAPACITY must be positive")
	}

	return c, nil
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	cl, err := LoadClassifier()
	if err != nil {
		return nil, err
	}

	return &API{
		Classifier: cl,
		BindAddr:   getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
	}, nil
}

// LoadRetention builds a Retention config from environment variables.
func LoadRetention() (*Retention, error) {
	c := &Retention{
		Dir:      getEnv("RETENTION_DIR", "./output"),
		Interval: getDuration("RETENTION_CRON", "24h"),
		MaxAge:   getDuration("RETENTION_MAX_AGE", "168h"),
	}

	if c.MaxAge <= 0 {
		return nil, fmt.Errorf("RETENTION_MAX_AGE must be positive")
	}

	if c.Interval <= 0 {
		return nil, fmt.Errorf("RETENTION_CRON must be positive")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func splitLower(raw string) []string {
	out := splitAndTrim(raw)
	for i, s := range out {
		out[i] = strings.ToLower(s)
	}
	return out
}

// SplitList splits a comma-separated flag value the same way environment
// lists are split.
func SplitList(raw string) []string { return splitAndTrim(raw) }

// SplitLowerList is SplitList with lower-cased items.
func SplitLowerList(raw string) []string { return splitLower(raw) }
