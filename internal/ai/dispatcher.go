package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"shoppingapp-backend/internal/models"
	"shoppingapp-backend/pkg/logger"
)

// Recorder persists one completed interaction. Satisfied by *ledger.Ledger.
type Recorder interface {
	Record(rec *models.InteractionRecord) error
}

// TaskInput describes one dispatch: what to ask, with which model, about
// what subject.
type TaskInput struct {
	Kind    TaskKind
	ModelID string
	Values  map[string]string // placeholder values for the prompt template
	Image   []byte            // optional; rejected for non-vision models
	Subject string            // optional item name, recorded in history
}

// Outcome is the successful result of one dispatch.
type Outcome struct {
	Content  string // full assistant text
	JSONText string // extracted JSON substring
	Usage    TokenUsage
	RecordID string
}

// Dispatcher runs one AI call end to end: render prompt, shape the request,
// execute it, extract and decode the answer, price it, record it. Each call
// is an independent unit of work; many may be in flight concurrently, and
// only the ledger serializes them.
type Dispatcher struct {
	registry  *Registry
	templates *TemplateStore
	builder   *RequestBuilder
	recorder  Recorder
	client    *http.Client
}

func NewDispatcher(registry *Registry, templates *TemplateStore, builder *RequestBuilder, recorder Recorder, client *http.Client) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Dispatcher{
		registry:  registry,
		templates: templates,
		builder:   builder,
		recorder:  recorder,
		client:    client,
	}
}

// Dispatch executes one task and decodes the answer into out (one of the
// task result shapes). A record is written only when the answer decoded:
// cost is attributed to usable answers, so NoContent and DecodeFailure leave
// the ledger untouched. Cancelling ctx before the record is written
// abandons the call with nothing persisted.
func (d *Dispatcher) Dispatch(ctx context.Context, in TaskInput, out any) (*Outcome, error) {
	if !in.Kind.Valid() {
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown task kind %q", in.Kind)}
	}

	desc, err := d.registry.Resolve(in.ModelID)
	if err != nil {
		return nil, err
	}

	prompt, err := d.templates.Render(in.Kind, in.Values)
	if err != nil {
		return nil, err
	}

	outbound, err := d.builder.Build(in.ModelID, prompt, in.Image)
	if err != nil {
		return nil, err
	}

	raw, err := d.execute(ctx, outbound)
	if err != nil {
		return nil, err
	}

	content, reported, err := ExtractContent(raw, desc.Family)
	if err != nil {
		return nil, err
	}

	jsonText := ExtractJSONObject(content)
	if err := Decode(jsonText, out); err != nil {
		logger.Log.Warn("ai response did not decode",
			zap.String("task_kind", string(in.Kind)),
			zap.String("model", in.ModelID),
			zap.String("extracted", jsonText))
		return nil, err
	}

	usage := TokenUsage{}
	if reported != nil {
		usage.InputTokens = reported.InputTokens
		usage.OutputTokens = reported.OutputTokens
		usage.Reported = true
	} else {
		usage.InputTokens = EstimateTokens(prompt)
		usage.OutputTokens = EstimateTokens(content)
	}
	usage.Cost = Cost(usage.InputTokens, usage.OutputTokens, desc.Pricing)

	// Abandoned dispatches must not leave a partial record behind.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("dispatch abandoned: %w", err)
	}

	rec := &models.InteractionRecord{
		TaskKind:     string(in.Kind),
		PromptText:   prompt,
		ResponseText: content,
		Cost:         usage.Cost,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		SubjectName:  in.Subject,
		ProviderName: desc.Family.DisplayName(),
		ModelID:      desc.ID,
	}
	if err := d.recorder.Record(rec); err != nil {
		return nil, fmt.Errorf("record interaction: %w", err)
	}

	logger.Log.Info("ai dispatch completed",
		zap.String("task_kind", string(in.Kind)),
		zap.String("model", in.ModelID),
		zap.Int("input_tokens", usage.InputTokens),
		zap.Int("output_tokens", usage.OutputTokens),
		zap.Bool("usage_reported", usage.Reported),
		zap.Float64("cost", usage.Cost))

	return &Outcome{
		Content:  content,
		JSONText: jsonText,
		Usage:    usage,
		RecordID: rec.ID,
	}, nil
}

func (d *Dispatcher) execute(ctx context.Context, outbound *OutboundRequest) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, outbound.URL, bytes.NewReader(outbound.Body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	for k, v := range outbound.Headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("provider returned %s: %s", resp.Status, truncateBody(body)),
		}
	}
	return body, nil
}

func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "...(truncated)"
	}
	return string(body)
}
