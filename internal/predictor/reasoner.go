package predictor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"

	"sentinelwatch/internal/event"
)

const reasonerMaxTokens = 300

// ClaudeReasoner implements the optional reasoning adjustment via the
// Anthropic API. Every call is bounded by the configured timeout; the
// caller treats any error as "no adjustment".
type ClaudeReasoner struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewClaudeReasoner constructs the reasoning layer.
func NewClaudeReasoner(apiKey, model string, timeout time.Duration, logger zerolog.Logger) *ClaudeReasoner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}

	return &ClaudeReasoner{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
		logger:  logger.With().Str("component", "reasoner").Logger(),
	}
}

type reasonerReply struct {
	Reasoning            string  `json:"reasoning"`
	ConfidenceAdjustment float64 `json:"confidence_adjustment"`
}

// Analyze asks for a short rationale plus a bounded probability delta.
// The deadline is enforced here so a slow upstream can never stall the
// consume loop.
func (r *ClaudeReasoner) Analyze(ctx context.Context, ev event.EnrichedEvent) (*Adjustment, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	description := ev.Description
	if runes := []rune(description); len(runes) > 300 {
		description = string(runes[:300])
	}

	prompt := fmt.Sprintf(`Você é um analista sênior de risco financeiro.

Evento: %q
Descrição: %s
Setor: %s
Sentimento detectado: %s

Avalie o impacto potencial deste evento no mercado financeiro.
Responda em JSON com exatamente dois campos:
1. "reasoning": uma frase curta (máx 50 palavras) explicando o impacto potencial
2. "confidence_adjustment": um número entre -0.2 e +0.2 indicando se a probabilidade de impacto deve ser ajustada para cima (+) ou para baixo (-)

Responda APENAS o JSON, sem markdown.`, ev.Title, description, ev.Sector, ev.Analytics.Sentiment.Label)

	resp, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(r.model),
		MaxTokens:   reasonerMaxTokens,
		Temperature: anthropic.Float(0.3),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("reasoning request: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("reasoning reply was empty")
	}

	reply, err := parseReasonerReply(text.String())
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("event_id", ev.ID).
		Float64("delta", reply.ConfidenceAdjustment).
		Msg("reasoning adjustment received")

	return &Adjustment{
		Reasoning: reply.Reasoning,
		Delta:     clampDelta(reply.ConfidenceAdjustment),
	}, nil
}

// parseReasonerReply tolerates fenced or prefixed output around the JSON
// object the prompt asks for.
func parseReasonerReply(raw string) (*reasonerReply, error) {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var reply reasonerReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return nil, fmt.Errorf("decode reasoning reply: %w", err)
	}
	return &reply, nil
}

var _ Reasoner = (*ClaudeReasoner)(nil)
