package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/zenplan-go/internal/schedule"
)

const (
	// DefaultModel is the generative model queried for reminders.
	DefaultModel = "gemini-3-flash-preview"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// requestTimeout bounds a single reminder fetch. The caller has no
	// retry policy; one slow request must not hang the session.
	requestTimeout = 30 * time.Second
)

// Gemini is a Client backed by the Gemini generateContent endpoint.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	logger  *log.Logger
	now     func() time.Time
}

// GeminiOption configures a Gemini client.
type GeminiOption func(*Gemini)

// WithModel overrides the model name.
func WithModel(model string) GeminiOption {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) GeminiOption {
	return func(g *Gemini) {
		if url != "" {
			g.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(g *Gemini) {
		if client != nil {
			g.http = client
		}
	}
}

// WithLogger sets the logger for fallback diagnostics.
func WithLogger(logger *log.Logger) GeminiOption {
	return func(g *Gemini) { g.logger = logger }
}

// WithClock overrides the clock used to select today's schedules.
func WithClock(now func() time.Time) GeminiOption {
	return func(g *Gemini) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGemini creates a Gemini client. An empty apiKey is allowed: the
// client stays usable and serves the no-key fallback.
func NewGemini(apiKey string, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		apiKey:  apiKey,
		model:   DefaultModel,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Request/response shapes for the generateContent endpoint. Only the
// fields this client reads or writes are modeled.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// reminderSchema constrains the model output to the Reminder shape.
const reminderSchema = `{
  "type": "OBJECT",
  "properties": {
    "message": { "type": "STRING", "description": "A motivational greeting focusing on priorities." },
    "suggestions": { "type": "ARRAY", "items": { "type": "STRING" }, "description": "Strategic actionable advice points." }
  },
  "required": ["message", "suggestions"]
}`

// DailyReminder queries the model for today's summary. It never
// returns an error: every failure mode resolves to a fallback.
func (g *Gemini) DailyReminder(ctx context.Context, schedules []schedule.Schedule) Reminder {
	if g.apiKey == "" {
		return FallbackNoKey
	}

	prompt := buildPrompt(schedules, g.now())
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   json.RawMessage(reminderSchema),
		},
	})
	if err != nil {
		g.debug("marshal request", "err", err)
		return FallbackError
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		g.debug("build request", "err", err)
		return FallbackError
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.http.Do(req)
	if err != nil {
		g.debug("assistant request failed", "err", err)
		return FallbackError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.debug("assistant request failed", "status", resp.StatusCode)
		return FallbackError
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		g.debug("decode response", "err", err)
		return FallbackError
	}

	text := firstText(decoded)
	if text == "" {
		g.debug("empty response")
		return FallbackError
	}

	var reminder Reminder
	if err := json.Unmarshal([]byte(text), &reminder); err != nil {
		g.debug("response is not reminder JSON", "err", err)
		return FallbackError
	}
	if reminder.Message == "" {
		return FallbackError
	}
	return reminder
}

func firstText(resp generateResponse) string {
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if strings.TrimSpace(p.Text) != "" {
				return p.Text
			}
		}
	}
	return ""
}

func (g *Gemini) debug(msg string, keyvals ...any) {
	if g.logger == nil {
		return
	}
	g.logger.Debug(msg, keyvals...)
}
