// Package analysis turns aggregated source data into prompts and
// validates the structured report the model returns.
package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sells-group/venture-check/internal/model"
)

// keyAnalysisQuestions steer the comprehensive prompt toward the
// signals the sources actually provide.
const keyAnalysisQuestions = `### KEY ANALYSIS QUESTIONS TO ANSWER:
1. What does the trends data tell us about market timing and public interest?
2. Who are the main competitors and what gaps do they leave?
3. What customer pain points and needs are evident from community data?
4. How does this idea differentiate from existing solutions?
5. What are the real risks and opportunities based on the data?`

// BuildComprehensiveContext renders the full raw payload of every
// source for the comprehensive prompt. A source that failed is rendered
// as an explicit error line rather than omitted, so the model can
// reason about missing data. This function never fails.
func BuildComprehensiveContext(idea string, data model.SourceData) string {
	var b strings.Builder

	b.WriteString("## COMPREHENSIVE DATA FOR ANALYSIS\n\n")
	fmt.Fprintf(&b, "### STARTUP IDEA: %q\n\n", idea)

	b.WriteString("### SEARCH TRENDS DATA (Public Interest & Market Timing)\n")
	b.WriteString(renderPayload("Search Trends", data.Trends, trendsError(data.Trends)))
	b.WriteString("\n\n### COMPETITIVE LANDSCAPE DATA (Market Analysis)\n")
	b.WriteString(renderPayload("Competitor Research", data.Competitors, competitorsError(data.Competitors)))
	b.WriteString("\n\n### COMMUNITY SENTIMENT DATA (Customer Insights)\n")
	b.WriteString(renderPayload("Community Analysis", data.Community, communityError(data.Community)))

	b.WriteString("\n\n")
	b.WriteString(keyAnalysisQuestions)
	b.WriteString("\n")

	return b.String()
}

// BuildQuickContext renders one headline-metric line per source for
// the cheaper quick prompt. This function never fails.
func BuildQuickContext(data model.SourceData) string {
	var b strings.Builder

	b.WriteString("## QUICK ASSESSMENT DATA\n\n")
	fmt.Fprintf(&b, "### TRENDS: %s\n", quickTrendsLine(data.Trends))
	fmt.Fprintf(&b, "### COMPETITION: %s\n", quickCompetitorsLine(data.Competitors))
	fmt.Fprintf(&b, "### COMMUNITY: %s\n", quickCommunityLine(data.Community))

	b.WriteString(`
### QUICK ANALYSIS FOCUS:
- What do these metrics tell us about market potential?
- What competitive challenges does this idea face?
- What customer interest or concerns are evident?
- What's the immediate next step based on this data?
`)

	return b.String()
}

func renderPayload(name string, payload any, errMsg string) string {
	if errMsg != "" {
		return fmt.Sprintf("Error fetching %s data: %s", name, errMsg)
	}
	raw, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error fetching %s data: %v", name, err)
	}
	return string(raw)
}

func trendsError(d *model.TrendsData) string {
	if d == nil {
		return "source disabled for this run"
	}
	return d.Error
}

func competitorsError(d *model.CompetitorData) string {
	if d == nil {
		return "source disabled for this run"
	}
	return d.Error
}

func communityError(d *model.CommunityData) string {
	if d == nil {
		return "source disabled for this run"
	}
	return d.Error
}

func quickTrendsLine(d *model.TrendsData) string {
	if d == nil {
		return "Search Trends: disabled"
	}
	if d.Error != "" {
		return "Search Trends: Error - " + d.Error
	}
	return fmt.Sprintf("Interest Score: %.1f, Direction: %s", d.InterestScore, d.TrendDirection)
}

func quickCompetitorsLine(d *model.CompetitorData) string {
	if d == nil {
		return "Competitors: disabled"
	}
	if d.Error != "" {
		return "Competitors: Error - " + d.Error
	}
	domains := d.TopDomains
	if len(domains) > 3 {
		domains = domains[:3]
	}
	return fmt.Sprintf("Found: %d competitors, Top domains: %s", d.CompetitorCount, strings.Join(domains, ", "))
}

func quickCommunityLine(d *model.CommunityData) string {
	if d == nil {
		return "Community: disabled"
	}
	if d.Error != "" {
		return "Community: Error - " + d.Error
	}
	return fmt.Sprintf("Posts: %d, Engagement: %.1f", d.PostCount, d.AvgScore)
}
