package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/DeafMist/news-tagger/internal/analyzer"
	"github.com/DeafMist/news-tagger/internal/config"
	"github.com/DeafMist/news-tagger/internal/dedupe"
	"github.com/DeafMist/news-tagger/internal/language"
	"github.com/DeafMist/news-tagger/internal/logger"
	"github.com/DeafMist/news-tagger/internal/models"
	"github.com/DeafMist/news-tagger/internal/processing"
	"github.com/DeafMist/news-tagger/internal/taxonomy"
)

type rawNews struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
	Source      string `json:"source"`
}

type publisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func main() {
	log := logger.New("worker")
	if err := config.LoadDotEnv(); err != nil {
		log.Warn("dotenv not loaded", slog.Any("err", err))
	}

	cfg, err := config.LoadWorker()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	an, err := newAnalyzer(cfg.Classifier)
	if err != nil {
		log.Error("init analyzer", slog.Any("err", err))
		os.Exit(1)
	}

	cache := dedupe.NewCache(cfg.DedupeCapacity, cfg.DedupeTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaTopic,
		GroupID:        cfg.KafkaConsumer,
		QueueCapacity:  cfg.BatchSize,
		MinBytes:       1e3,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commit only
	})
	defer reader.Close()

	out := &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaOutputTopic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
	}
	defer out.Close()

	dlqTopic := cfg.KafkaTopic + "_dlq"
	dlqWriter := &kafka.Writer{
		Addr:        kafka.TCP(cfg.KafkaBrokers...),
		Topic:       dlqTopic,
		MaxAttempts: 5,
	}
	defer dlqWriter.Close()

	log.Info("worker started",
		slog.String("topic", cfg.KafkaTopic),
		slog.String("output_topic", cfg.KafkaOutputTopic),
		slog.String("group", cfg.KafkaConsumer),
		slog.String("dlq_topic", dlqTopic),
	)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info("context canceled, stopping")
				return
			}
			log.Error("fetch message", slog.Any("err", err))
			continue
		}

		if err := processMessage(ctx, log, out, cache, an, msg); err != nil {
			if ctx.Err() != nil {
				log.Info("context canceled, leaving message uncommitted")
				return
			}
			log.Warn("process message failed, sending to DLQ",
				slog.Any("err", err),
				slog.Int("partition", msg.Partition),
				slog.Int64("offset", msg.Offset),
			)

			if dlqErr := dlqWriter.WriteMessages(ctx, deadLetter(msg, err, time.Now())); dlqErr != nil {
				// Left uncommitted so the message is redelivered after a restart.
				log.Error("DLQ write failed",
					slog.Any("err", dlqErr),
					slog.Int("partition", msg.Partition),
					slog.Int64("offset", msg.Offset),
				)
				continue
			}
			log.Info("message sent to DLQ", slog.Int("partition", msg.Partition), slog.Int64("offset", msg.Offset))
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message", slog.Any("err", err))
		}
	}
}

func newAnalyzer(cfg config.Classifier) (*analyzer.Analyzer, error) {
	tax, err := taxonomy.FromFileOrDefault(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}

	opts := []analyzer.Option{
		analyzer.WithTopWords(cfg.TopWords),
		analyzer.WithMinMatches(cfg.MinMatches),
		analyzer.WithAllowStrong(cfg.AllowStrong),
	}
	if cfg.DetectLanguage {
		opts = append(opts, analyzer.WithLanguageDetector(language.NewLingua()))
	}
	return analyzer.New(tax, opts...), nil
}

func deadLetter(msg kafka.Message, cause error, now time.Time) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers)+4)
	headers = append(headers, msg.Headers...)
	headers = append(headers,
		kafka.Header{Key: "original_partition", Value: []byte(fmt.Sprintf("%d", msg.Partition))},
		kafka.Header{Key: "original_offset", Value: []byte(fmt.Sprintf("%d", msg.Offset))},
		kafka.Header{Key: "error", Value: []byte(cause.Error())},
		kafka.Header{Key: "timestamp", Value: []byte(now.UTC().Format(time.RFC3339))},
	)
	return kafka.Message{Key: msg.Key, Value: msg.Value, Headers: headers}
}

func processMessage(ctx context.Context, log *slog.Logger, pub publisher, cache *dedupe.Cache, an *analyzer.Analyzer, msg kafka.Message) error {
	var payload rawNews
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return err
	}

	title := processing.CleanText(payload.Title)
	description := processing.CleanText(payload.Description)
	text := processing.CleanText(payload.Text)
	if title == "" && description == "" && text == "" {
		return errors.New("empty payload")
	}

	ts := parseTimestamp(payload.Timestamp)
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	source := strings.TrimSpace(payload.Source)
	if source == "" {
		source = "unknown"
	}

	id := strings.TrimSpace(payload.ID)
	if id == "" {
		id = processing.BuildDocumentID(title, strings.TrimSpace(description+" "+text))
	}
	if id == "" {
		id = uuid.NewString()
	}

	if cache.Seen(dedupe.KindID, id) {
		log.Debug("duplicate news", slog.String("id", id))
		return nil
	}

	doc := models.TaggedNews{
		ID:        id,
		Source:    source,
		Timestamp: ts,
		Analysis:  an.AnalyzeFields(id, title, description, text),
	}

	value, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if err := pub.WriteMessages(ctx, kafka.Message{Key: []byte(id), Value: value}); err != nil {
		return fmt.Errorf("publish analysis: %w", err)
	}

	cache.Mark(dedupe.KindID, id)
	log.Info("tagged news",
		slog.String("id", id),
		slog.String("category", doc.Category),
		slog.String("reason", doc.CategoryReason),
	)
	return nil
}

func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		time.RFC1123Z,
		time.RFC1123,
		"2006-01-02 15:04:05",
	}

	for _, f := range formats {
		if ts, err := time.Parse(f, raw); err == nil {
			return ts.UTC()
		}
	}

	return time.Time{}
}
