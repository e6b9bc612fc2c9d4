package a2a

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/strategy-agent/internal/models"
)

// formatStrategyResponse renders a chat-friendly markdown summary. The full
// result travels in the data artifact.
func formatStrategyResponse(r *models.GenerationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Marketing Strategy for: %s\n\n", r.Profile.CompanyName)

	if r.RealAdsData.Available {
		fmt.Fprintf(&b, "_Based on %d live competitor ads from %d advertisers._\n\n",
			len(r.RealAdsData.Ads), r.RealAdsData.UniqueCompetitors)
	} else {
		b.WriteString("_No live competitor ads were available; analysis uses general market knowledge._\n\n")
	}

	if ca := r.CompetitorAnalysis; ca != nil {
		b.WriteString("## Competitive Landscape\n")
		if ca.MarketOverview != "" {
			b.WriteString(ca.MarketOverview + "\n")
		}
		writeList(&b, "Opportunities", ca.Opportunities)
		b.WriteString("\n")
	}

	if icp := r.ICP; icp != nil {
		b.WriteString("## Ideal Customer\n")
		if icp.Summary != "" {
			b.WriteString(icp.Summary + "\n")
		}
		writeList(&b, "Pain Points", icp.PainPoints)
		if icp.DreamOutcome != "" {
			fmt.Fprintf(&b, "\n**Dream Outcome:** %s\n", icp.DreamOutcome)
		}
		b.WriteString("\n")
	}

	if ac := r.AdCampaign; ac != nil && len(ac.AdVariants) > 0 {
		b.WriteString("## Ad Variants\n")
		for _, v := range ac.AdVariants {
			fmt.Fprintf(&b, "- **%s** (%s): %s\n", v.Name, v.Type, v.Headline)
		}
		b.WriteString("\n")
	}

	if lp := r.LandingPage; lp != nil {
		b.WriteString("## Landing Page\n")
		if lp.PageTitle != "" {
			fmt.Fprintf(&b, "**%s**\n", lp.PageTitle)
		}
		slots := lp.Sections.Slots()
		for _, key := range models.SectionKeys {
			if sec := *slots[key]; sec != nil && sec.Headline != "" {
				fmt.Fprintf(&b, "- %s: %s\n", key, sec.Headline)
			}
		}
		b.WriteString("\n")
	}

	if r.ID != "" {
		fmt.Fprintf(&b, "Saved as strategy `%s`.\n", r.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s:**\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", strings.TrimSpace(item))
	}
}
