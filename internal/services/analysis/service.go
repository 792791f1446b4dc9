// Package analysis streams an AI-written narrative assessment of a company,
// grounded in its reconciled profile and report history.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"finsight/internal/domain"
	"finsight/internal/ports"
)

type Service struct {
	apiKey    string
	cfg       ModelConfig
	analytics ports.Analytics
}

func New(apiKey string, cfg ModelConfig, analytics ports.Analytics) *Service {
	return &Service{apiKey: apiKey, cfg: cfg, analytics: analytics}
}

// Stream generates the narrative chunk by chunk through emit. The analytics
// overview supplies everything the prompt needs; its not-found error passes
// through untouched so the handler can map it.
func (s *Service) Stream(ctx context.Context, inn string, emit func(chunk string) error) error {
	if s.apiKey == "" {
		return ErrUnavailable
	}

	overview, err := s.analytics.Overview(ctx, inn)
	if err != nil {
		return err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(s.cfg.Temperature),
		MaxOutputTokens: s.cfg.MaxOutputTokens,
	}

	for resp, err := range client.Models.GenerateContentStream(ctx, s.cfg.Model, genai.Text(buildPrompt(overview)), config) {
		if err != nil {
			return fmt.Errorf("generation: %w", err)
		}
		if text := resp.Text(); text != "" {
			if err := emit(text); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildPrompt renders the company data as a markdown briefing. Only the last
// five report years are included; older history adds tokens, not insight.
func buildPrompt(overview domain.Analytics) string {
	company := overview.Company
	var b strings.Builder

	b.WriteString("Analyze the following company based on its registry profile and financial history.\n\n")
	b.WriteString("## COMPANY\n")
	fmt.Fprintf(&b, "- Name: %s\n", company.Name)
	if company.FullName != "" {
		fmt.Fprintf(&b, "- Full name: %s\n", company.FullName)
	}
	fmt.Fprintf(&b, "- INN: %s\n", company.INN)
	if company.OGRN != "" {
		fmt.Fprintf(&b, "- OGRN: %s\n", company.OGRN)
	}
	if company.OKVED != "" {
		fmt.Fprintf(&b, "- Activity code: %s\n", company.OKVED)
	}
	if company.RegistrationDate != "" {
		fmt.Fprintf(&b, "- Registered: %s\n", company.RegistrationDate)
	}
	if company.CharterCapital != "" {
		fmt.Fprintf(&b, "- Charter capital: %s\n", company.CharterCapital)
	}
	if company.LegalForm != "" {
		fmt.Fprintf(&b, "- Legal form: %s\n", company.LegalForm)
	}
	if company.Address != "" {
		fmt.Fprintf(&b, "- Address: %s\n", company.Address)
	}

	reports := overview.Reports
	if len(reports) > 5 {
		reports = reports[len(reports)-5:]
	}
	if len(reports) > 0 {
		b.WriteString("\n## FINANCIALS (most recent years)\n")
		for _, r := range reports {
			fmt.Fprintf(&b, "### %d\n", r.Year)
			fmt.Fprintf(&b, "- Revenue: %s\n", money(r.Revenue))
			fmt.Fprintf(&b, "- Gross profit: %s\n", money(r.GrossProfit))
			fmt.Fprintf(&b, "- Operating profit: %s\n", money(r.OperatingProfit))
			fmt.Fprintf(&b, "- Net profit: %s\n", money(r.NetProfit))
			fmt.Fprintf(&b, "- Total assets: %s\n", money(r.TotalAssets))
			fmt.Fprintf(&b, "- Equity: %s\n", money(r.Equity))
		}
	}

	if company.Owners != nil {
		b.WriteString("\n## OWNERSHIP\n")
		fmt.Fprintf(&b, "- Individual owners: %d\n", len(company.Owners.Individuals))
		fmt.Fprintf(&b, "- Corporate owners: %d\n", len(company.Owners.Companies))
	}

	if n := len(overview.SimilarCompanies); n > 0 {
		b.WriteString("\n## COMPETITORS\n")
		fmt.Fprintf(&b, "%d similar companies share the activity code.\n", n)
	}

	b.WriteString(`
## TASKS
1. Assess the financial trajectory: growth, profitability, balance strength.
2. Call out risks visible in the data (declining metrics, thin equity, ownership concentration).
3. Give an overall outlook in two or three sentences.
Respond in markdown.
`)
	return b.String()
}

func money(v *float64) string {
	if v == nil {
		return "no data"
	}
	return fmt.Sprintf("%.0f RUB", *v)
}

var ErrUnavailable = errString("ai analysis is not configured")

type errString string

func (e errString) Error() string { return string(e) }
