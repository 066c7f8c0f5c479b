package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/artem13815/jobportal/pkg/apperr"
)

var (
	ErrNotConfigured = apperr.New(apperr.KindUpstream, "AI assistant is not configured")
	ErrTimeout       = apperr.New(apperr.KindUpstreamTimeout, "AI assistant did not answer in time, try again later")
	ErrBadAnswer     = apperr.New(apperr.KindUpstream, "AI assistant returned an unreadable answer")
)

const (
	generateSystem = "You are a professional resume writer. Write clear, truthful, ATS-friendly resumes in Markdown. Never invent facts that are not in the input."
	scoreSystem    = "You are an experienced technical recruiter reviewing resumes. Answer strictly with one JSON object, no markdown and no explanations."
	maxDocChars    = 12_000
)

type assistant struct {
	model   ChatModel
	timeout time.Duration
	log     *slog.Logger
}

// NewAssistant wraps a chat model. Every call is bounded by timeout; nil model
// yields an assistant that always fails with ErrNotConfigured.
func NewAssistant(model ChatModel, timeout time.Duration, log *slog.Logger) Assistant {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &assistant{model: model, timeout: timeout, log: log}
}

func (a *assistant) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := a.ask(ctx, generateSystem, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

type scorePayload struct {
	Score    float64  `json:"score"`
	Summary  string   `json:"summary"`
	Feedback []string `json:"feedback"`
}

func (a *assistant) Score(ctx context.Context, document, targetRole string) (Score, error) {
	document = strings.TrimSpace(document)
	document = truncate(document, maxDocChars)
	role := strings.TrimSpace(targetRole)
	if role == "" {
		role = "an entry-level position matching the candidate's background"
	}
	user := fmt.Sprintf(
		"Target role: %s\n\nResume text between markers:\n<<<\n%s\n>>>\n\nReturn JSON with fields:\n- score (integer 0-100, overall quality and fit)\n- summary (string, 2-3 sentences)\n- feedback (string[], up to 10 concrete improvements)\n",
		role, document,
	)
	raw, err := a.ask(ctx, scoreSystem, user)
	if err != nil {
		return Score{}, err
	}
	p, err := parseScore(raw)
	if err != nil {
		a.log.Warn("unparsable score answer", slog.String("model", a.model.Name()), slog.String("error", err.Error()))
		return Score{}, ErrBadAnswer
	}
	score := int(p.Score + 0.5)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if p.Feedback == nil {
		p.Feedback = []string{}
	}
	return Score{Score: score, Summary: p.Summary, Feedback: p.Feedback, Model: a.model.Name()}, nil
}

func (a *assistant) ask(ctx context.Context, system, user string) (string, error) {
	if a.model == nil {
		return "", ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	out, err := a.model.Ask(ctx, system, user)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			a.log.Warn("assistant timeout", slog.String("model", a.model.Name()), slog.Duration("timeout", a.timeout))
			return "", ErrTimeout
		}
		a.log.Error("assistant call failed", slog.String("model", a.model.Name()), slog.String("error", err.Error()))
		return "", apperr.Wrap(apperr.KindUpstream, "AI assistant request failed", err)
	}
	return out, nil
}

// parseScore accepts a bare JSON object or one wrapped in prose / a fenced block.
func parseScore(raw string) (scorePayload, error) {
	raw = strings.TrimSpace(raw)
	var out scorePayload
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			if err := json.Unmarshal([]byte(raw[i:j+1]), &out); err == nil {
				return out, nil
			}
		}
	}
	return scorePayload{}, errors.New("no JSON object in answer")
}

// truncate keeps the first limit characters and never splits a multi-byte one.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
