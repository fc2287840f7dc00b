package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"StockPulse/internal/domain/models"
	drepo "StockPulse/internal/domain/repository"
	pkgkafka "StockPulse/pkg/kafka"
)

// Schema for the record sink. Nullable columns mirror the record's nullable
// fields: absent data lands as NULL, never as a zero sentinel.
var RecordSchema = []string{
	`CREATE TABLE IF NOT EXISTS stock_records (
		run_id         String,
		as_of          DateTime,
		symbol         String,
		price          Nullable(Float64),
		day_high       Nullable(Float64),
		day_low        Nullable(Float64),
		volume         Nullable(Float64),
		short_ma       Nullable(Float64),
		long_ma        Nullable(Float64),
		trend          Nullable(String),
		futures_price  Nullable(Float64),
		call_price     Nullable(Float64),
		put_price      Nullable(Float64),
		options_trend  Nullable(String),
		sentiment      Nullable(Float64),
		recommendation String
	) ENGINE = MergeTree()
	ORDER BY (run_id, symbol)`,
}

// ClickHouseRecordSink implements RecordSink over ClickHouse.
type ClickHouseRecordSink struct {
	db    *sql.DB
	table string
}

// NewClickHouseRecordSink creates a ClickHouse-backed record sink.
func NewClickHouseRecordSink(db *sql.DB, table string) drepo.RecordSink {
	if table == "" {
		table = "stock_records"
	}
	return &ClickHouseRecordSink{db: db, table: table}
}

const recordColumns = "run_id, as_of, symbol, price, day_high, day_low, volume, " +
	"short_ma, long_ma, trend, futures_price, call_price, put_price, " +
	"options_trend, sentiment, recommendation"

// StoreBatch inserts the run's records as multi-row VALUES, chunked to keep
// statements bounded.
func (s *ClickHouseRecordSink) StoreBatch(ctx context.Context, runID string, records []*models.StockRecord) error {
	if len(records) == 0 {
		return nil
	}
	asOf := time.Now().UTC()

	const chunkSize = 500
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*16)
		for _, r := range records[start:end] {
			if r == nil || r.Symbol == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				runID,
				asOf,
				r.Symbol,
				nullFloat(r.Price),
				nullFloat(r.DayHigh),
				nullFloat(r.DayLow),
				nullFloat(r.Volume),
				nullFloat(r.ShortMA),
				nullFloat(r.LongMA),
				nullTrend(r.Trend),
				nullFloat(r.FuturesPrice),
				nullFloat(r.CallPrice),
				nullFloat(r.PutPrice),
				nullTrend(r.OptionsTrend),
				nullFloat(r.SentimentScore),
				string(r.Recommendation),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, recordColumns, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert records: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseRecordSink) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseRecordSink) Close() error {
	return nil // connection owned by pkg client
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullTrend(t *models.Trend) interface{} {
	if t == nil {
		return nil
	}
	return string(*t)
}

// KafkaRecordPublisher implements RecordPublisher over the Kafka producer.
type KafkaRecordPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaRecordPublisher creates a Kafka-backed record publisher.
func NewKafkaRecordPublisher(producer *pkgkafka.Producer, topic string) drepo.RecordPublisher {
	return &KafkaRecordPublisher{producer: producer, topic: topic}
}

type recordEnvelope struct {
	RunID  string              `json:"run_id"`
	Record *models.StockRecord `json:"record"`
}

// Publish emits one record keyed by symbol.
func (p *KafkaRecordPublisher) Publish(ctx context.Context, runID string, rec *models.StockRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(rec.Symbol), recordEnvelope{RunID: runID, Record: rec})
}

// PublishBatch emits the whole run in one producer write.
func (p *KafkaRecordPublisher) PublishBatch(ctx context.Context, runID string, records []*models.StockRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		msgs = append(msgs, pkgkafka.Message{
			Key:   []byte(r.Symbol),
			Value: recordEnvelope{RunID: runID, Record: r},
		})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaRecordPublisher) Close() error {
	return p.producer.Close()
}
