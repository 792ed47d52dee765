package event

// Source identifies where a raw item came from.
type Source struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// RawEvent is an unprocessed item as received from the collector.
// Immutable once published; the pipeline never writes it back.
type RawEvent struct {
	EventID   string `json:"event_id"`
	Source    Source `json:"source"`
	EventType string `json:"event_type"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Link      string `json:"link"`
	CreatedAt string `json:"created_at"`
}

// Event types accepted on the inbound queue.
const (
	TypeFinancial    = "financial"
	TypeGeopolitical = "geopolitical"
	TypeOdds         = "odds"
)

// Entities groups the heuristic named-entity matches, ≤5 per category.
type Entities struct {
	People    []string `json:"people"`
	Orgs      []string `json:"orgs"`
	Locations []string `json:"locations"`
}

// Count returns the total number of extracted entities.
func (e Entities) Count() int {
	return len(e.People) + len(e.Orgs) + len(e.Locations)
}

// Location carries the inferred country and sub-national region.
type Location struct {
	Country string `json:"country"`
	Region  string `json:"region"`
}

// Sentiment holds polarity/subjectivity rounded to 2 decimal places.
type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Label        string  `json:"label"`
}

// Analytics aggregates sentiment and the lexical impact score.
type Analytics struct {
	Sentiment Sentiment `json:"sentiment"`
	Score     int       `json:"score"`
}

// EnrichedEvent is the pipeline output persisted to the events collection
// and republished downstream. ID equals the originating RawEvent's EventID;
// reprocessing the same id overwrites, never duplicates.
type EnrichedEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Impact      string    `json:"impact"`
	Urgency     string    `json:"urgency"`
	Sector      string    `json:"sector"`
	SubSector   string    `json:"sub_sector"`
	Keywords    []string  `json:"keywords"`
	Entities    Entities  `json:"entities"`
	Location    Location  `json:"location"`
	Analytics   Analytics `json:"analytics"`
	Insight     string    `json:"insight"`
	Source      Source    `json:"source"`
	Link        string    `json:"link"`
	Timestamp   string    `json:"timestamp"`
	AnalyzedAt  string    `json:"analyzed_at"`
}

// Impact tiers.
const (
	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// Urgency tiers.
const (
	UrgencyNormal = "normal"
	UrgencyUrgent = "urgent"
)

// Sentiment labels.
const (
	SentimentBullish = "Bullish"
	SentimentBearish = "Bearish"
	SentimentNeutral = "Neutral"
)

// Prediction is the stored impact prediction, upserted by EventID.
type Prediction struct {
	EventID        string             `json:"event_id"`
	EventTitle     string             `json:"event_title"`
	Sector         string             `json:"sector"`
	SubSector      string             `json:"sub_sector"`
	Probability    float64            `json:"probability"`
	Confidence     string             `json:"confidence"`
	ImpactCategory string             `json:"impact_category"`
	FeaturesUsed   map[string]float64 `json:"features_used"`
	LLMReasoning   *string            `json:"llm_reasoning"`
	ModelVersion   string             `json:"model_version"`
	PredictedAt    string             `json:"predicted_at"`
}
