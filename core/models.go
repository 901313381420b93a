package core

import (
	"time"

	"github.com/google/uuid"
)

// Step identifies the kind of dialog event.
type Step string

const (
	// StepQuestion is a customer question.
	StepQuestion Step = "question"
	// StepAnswer is an assistant answer.
	StepAnswer Step = "answer"
	// StepSearchResult is a knowledge-base document retained for a turn.
	StepSearchResult Step = "search_result"
)

// Sentiment is the classified tone of an event's content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Default language placeholders assigned at event creation. Events whose
// lang still equals a placeholder are re-detected during enrichment.
const (
	DefaultQuestionLang = "en"
	DefaultAnswerLang   = "uk"
)

// SentimentScore is the classifier's confidence distribution over the
// three sentiment classes. The values conceptually sum to 1.0.
type SentimentScore struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Meta carries mutable annotations on an Event. It is always present as a
// record after first write; enrichment only adds fields, never removes them.
type Meta struct {
	Lang           string          `json:"lang,omitempty"`
	Source         string          `json:"source,omitempty"`
	Score          *float64        `json:"score,omitempty"`
	LatencyMS      *int64          `json:"latency_ms,omitempty"`
	Sentiment      Sentiment       `json:"sentiment,omitempty"`
	SentimentScore *SentimentScore `json:"sentiment_score,omitempty"`
	KeyPhrases     []string        `json:"key_phrases,omitempty"`
}

// Event is the atomic persisted unit of a conversation.
// Question, answer, and search_result events of one turn share a DialogID.
type Event struct {
	ID        string    `json:"id"`
	DialogID  string    `json:"dialog_id"`
	UserID    string    `json:"user_id"`
	Step      Step      `json:"step"`
	Timestamp time.Time `json:"timestamp"` // Assigned at write time
	Content   string    `json:"content"`
	Meta      Meta      `json:"meta"`
}

// Processed reports whether the event has been through enrichment.
// Once meta.sentiment is set the event must not be re-selected by the
// enrichment scan.
func (e *Event) Processed() bool {
	return e.Meta.Sentiment != ""
}

// NewID mints a unique identifier for events and dialogs.
func NewID() string {
	return uuid.NewString()
}

// MetricKind categorizes a derived analytics fact.
type MetricKind string

const (
	MetricSentiment MetricKind = "sentiment"
	MetricLanguage  MetricKind = "language"
	MetricKeyword   MetricKind = "keyword"
	MetricOther     MetricKind = "other"
)

// MetricRecord is a flattened analytics fact derived from one event during
// enrichment. Records are written once to the metrics sink and never
// updated; corrections require re-ingesting a corrected record.
type MetricRecord struct {
	TimeGenerated time.Time  `json:"time_generated"`
	Metric        MetricKind `json:"metric"`
	Value         string     `json:"value"`
	MessageID     string     `json:"message_id"`
	UserID        string     `json:"user_id"`
	DialogID      string     `json:"dialog_id"`
	MessageType   Step       `json:"message_type"`
}
