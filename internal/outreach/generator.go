package outreach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bcnlabs/prospect-ai-platform/internal/geo"
	"github.com/bcnlabs/prospect-ai-platform/internal/observability/metrics"
	"github.com/bcnlabs/prospect-ai-platform/pkg/logging"
)

var generateTracer = otel.Tracer("prospect.internal.outreach.generator")

// DefaultCharLimit matches the LinkedIn connection-note limit.
const DefaultCharLimit = 300

// MessageRequest is a prospect projection used to build one outreach message.
type MessageRequest struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	WorkEmail string `json:"work_email"`
	StartDate string `json:"start_date"`
	Country   string `json:"country"`
}

// GeneratorConfig wires the message generator.
type GeneratorConfig struct {
	LLM       TextGenerator // nil when the generation credential is not configured
	Metrics   *metrics.PipelineMetrics
	Logger    *logging.Logger
	CharLimit int
	Timeout   time.Duration // per-call provider deadline, 0 for none
	Now       func() time.Time
}

// Generator produces outreach messages. Generation failures are absorbed: the
// caller always receives a displayable string.
type Generator struct {
	llm       TextGenerator
	metrics   *metrics.PipelineMetrics
	logger    *logging.Logger
	charLimit int
	timeout   time.Duration
	now       func() time.Time
}

// NewGenerator creates the message generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	charLimit := cfg.CharLimit
	if charLimit <= 0 {
		charLimit = DefaultCharLimit
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Generator{
		llm:       cfg.LLM,
		metrics:   cfg.Metrics,
		logger:    logger,
		charLimit: charLimit,
		timeout:   cfg.Timeout,
		now:       now,
	}
}

// Generate returns a personalized outreach message for the prospect, in the
// language of the target country. Never fails: any provider problem resolves
// to the templated fallback, which itself respects the character limit.
func (g *Generator) Generate(ctx context.Context, req MessageRequest) string {
	ctx, span := generateTracer.Start(ctx, "outreach.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("prospect.company", req.Company),
		attribute.String("prospect.country", req.Country),
	)

	firstName := firstNameOf(req.Name)

	if g.llm == nil {
		g.metrics.ObserveGeneration("fallback")
		return g.fallbackMessage(firstName, req.Company)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := g.buildPrompt(req, firstName)
	resp, err := g.llm.Generate(ctx, GenerationRequest{
		Prompt:      prompt,
		Temperature: 0.7,
		TopP:        0.95,
		TopK:        40,
		MaxTokens:   150,
	})
	if err != nil || strings.TrimSpace(resp.Text) == "" {
		g.metrics.ObserveGeneration("fallback")
		g.logger.Warn("message generation failed, using fallback",
			"error", err,
			"company", req.Company,
		)
		return g.fallbackMessage(firstName, req.Company)
	}

	g.metrics.ObserveGeneration("ok")
	return g.clamp(stripWrappingQuotes(strings.TrimSpace(resp.Text)))
}

func (g *Generator) buildPrompt(req MessageRequest, firstName string) string {
	language := geo.LanguageFor(req.Country)
	tenure := tenurePhrase(firstName, req.Company, req.StartDate, g.now())

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert LinkedIn outreach specialist. Write a highly personalized LinkedIn connection request message for %s who works as %s at %s in %s.\n\n",
		firstName, req.Title, req.Company, req.Location)
	b.WriteString("Context about the prospect:\n")
	fmt.Fprintf(&b, "- Name: %s\n", req.Name)
	fmt.Fprintf(&b, "- Job Title: %s\n", req.Title)
	fmt.Fprintf(&b, "- Company: %s\n", req.Company)
	fmt.Fprintf(&b, "- Location: %s\n", req.Location)
	fmt.Fprintf(&b, "- %s\n", tenure)
	if req.WorkEmail != "" {
		fmt.Fprintf(&b, "- Work Email: %s\n", req.WorkEmail)
	}
	b.WriteString("\nWrite a professional yet friendly LinkedIn intro message that:\n")
	fmt.Fprintf(&b, "1. Is written in %s\n", language)
	b.WriteString("2. Demonstrates genuine interest in their work and company\n")
	b.WriteString("3. Mentions how I can help with product scaling and strategy\n")
	b.WriteString("4. Is personalized to their specific role and company\n")
	fmt.Fprintf(&b, "5. Stays under %d characters (strict limit)\n", g.charLimit)
	b.WriteString("6. Has a professional but approachable tone\n")
	b.WriteString("7. Includes a clear but soft call to action\n\n")
	b.WriteString("Focus on being helpful rather than sales-oriented. Make it feel like a genuine connection request from someone in the product/strategy space.\n\n")
	b.WriteString("Return ONLY the message text, no quotes or explanations.")
	return b.String()
}

// tenurePhrase approximates how long the prospect has held the role. A
// missing or unparseable start date yields the neutral phrase; it never
// aborts generation.
func tenurePhrase(firstName, company, startDate string, now time.Time) string {
	neutral := fmt.Sprintf("%s works at %s", firstName, company)
	if startDate == "" {
		return neutral
	}
	start, err := parseStartDate(startDate)
	if err != nil {
		return neutral
	}

	months := int(now.Sub(start).Hours() / 24 / 30)
	switch {
	case months >= 12:
		years := months / 12
		if years == 1 {
			return fmt.Sprintf("%s has been working at %s for 1 year", firstName, company)
		}
		return fmt.Sprintf("%s has been working at %s for %d years", firstName, company, years)
	case months > 0:
		return fmt.Sprintf("%s recently joined %s", firstName, company)
	default:
		return neutral
	}
}

// parseStartDate accepts the date layouts the directory has been seen to use.
func parseStartDate(value string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02", "2006-01", "2006"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("outreach: unparseable start date %q", value)
}

// fallbackMessage is the deterministic template used whenever generation is
// unavailable. Clamped like any other output.
func (g *Generator) fallbackMessage(firstName, company string) string {
	msg := fmt.Sprintf("Hi %s! I help product leaders scale their teams and optimize strategy. Would love to connect and learn about %s's product initiatives.", firstName, company)
	return g.clamp(msg)
}

// clamp hard-truncates to the character limit with a trailing ellipsis.
func (g *Generator) clamp(msg string) string {
	runes := []rune(msg)
	if len(runes) <= g.charLimit {
		return msg
	}
	return string(runes[:g.charLimit-3]) + "..."
}

func firstNameOf(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "there"
	}
	return strings.Fields(name)[0]
}

func stripWrappingQuotes(msg string) string {
	for _, quote := range []string{`"`, `'`} {
		if strings.HasPrefix(msg, quote) && strings.HasSuffix(msg, quote) && len(msg) >= 2 {
			return strings.TrimSpace(msg[1 : len(msg)-1])
		}
	}
	return msg
}
