package stages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/strategy-agent/internal/llm"
	"github.com/BerylCAtieno/strategy-agent/internal/models"
)

// Placeholder stands in for any missing prompt input.
const Placeholder = "[not provided]"

// MaxSampleAds bounds how many collected ads are embedded in the analysis prompt.
const MaxSampleAds = 10

const noAdsNote = "No live competitor ad data was available; base the analysis on general market knowledge for this industry."

const systemRole = "You are a senior direct-response marketing strategist for local and service businesses. " +
	"You answer with JSON only, no markdown and no commentary."

const competitorAnalysisShape = `{
  "marketOverview": "string",
  "competitors": [{"name": "string", "positioning": "string", "strengths": ["string"], "weaknesses": ["string"]}],
  "adPatterns": {"commonHooks": ["string"], "commonOffers": ["string"], "commonCallsToAction": ["string"], "gaps": ["string"]},
  "opportunities": ["string"],
  "threats": ["string"]
}`

const icpShape = `{
  "summary": "string",
  "demographics": {"ageRange": "string", "gender": "string", "location": "string", "occupation": "string", "income": "string"},
  "psychographics": {"values": ["string"], "interests": ["string"], "motivations": ["string"], "fears": ["string"]},
  "buyingBehavior": "string",
  "painPoints": ["string"],
  "dreamOutcome": "string",
  "messagingAngles": ["string"],
  "preferredChannels": ["string"]
}`

const adCampaignShape = `{
  "campaignStrategy": {"objective": "string", "channels": ["string"], "budgetSplit": {"<channel>": 0}, "targeting": "string"},
  "adVariants": [{"id": "ad-1", "name": "string", "type": "pain|dream-outcome|social-proof|guarantee|urgency|video-script",
    "angle": "string", "targetEmotion": "string", "headline": "string", "body": "string", "callToAction": "string", "visualBrief": "string"}]
}`

const landingPageShape = `{
  "pageTitle": "string",
  "metaDescription": "string",
  "sections": {
    "hero": {"headline": "string", "body": "string", "purpose": "string"},
    "problem": {...}, "solution": {...}, "process": {..., "items": ["string"]},
    "socialProof": {...}, "guarantee": {...}, "faq": {..., "items": ["string"]}, "finalCta": {...}
  }
}`

const marketingStrategyShape = `{
  "positioning": "string",
  "valueProposition": "string",
  "keyMessages": ["string"],
  "channels": ["string"],
  "timeline": ["string"]
}`

const marketAnalysisShape = `{
  "marketSize": "string",
  "trends": ["string"],
  "competitors": ["string"],
  "opportunities": ["string"],
  "risks": ["string"]
}`

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func listOrPlaceholder(items []string) string {
	var kept []string
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return Placeholder
	}
	return strings.Join(kept, "; ")
}

func intOrPlaceholder(n int) string {
	if n <= 0 {
		return Placeholder
	}
	return strconv.Itoa(n)
}

func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

func writeProfile(b *strings.Builder, p models.OnboardingProfile) {
	b.WriteString("BUSINESS PROFILE\n")
	fmt.Fprintf(b, "- Company: %s\n", orPlaceholder(p.CompanyName))
	fmt.Fprintf(b, "- What they sell: %s\n", orPlaceholder(p.WhatYouSell))
	fmt.Fprintf(b, "- Description: %s\n", orPlaceholder(p.ServiceDescription))
	fmt.Fprintf(b, "- Price range: %s\n", orPlaceholder(p.PriceRange))
	fmt.Fprintf(b, "- Years in business: %s\n", intOrPlaceholder(p.YearsInBusiness))
	fmt.Fprintf(b, "- Projects completed: %s\n", intOrPlaceholder(p.ProjectsCompleted))
	fmt.Fprintf(b, "- Service area: %s\n", orPlaceholder(p.ServiceArea))
	fmt.Fprintf(b, "- Guarantee: %s\n", orPlaceholder(p.GuaranteeType))
	fmt.Fprintf(b, "- Warranty: %s\n", orPlaceholder(p.WarrantyDetails))
	fmt.Fprintf(b, "- Unique selling point: %s\n", orPlaceholder(p.UniqueSellingPoint))
	fmt.Fprintf(b, "- Customer decision time: %s\n", orPlaceholder(p.DecisionTime))
	fmt.Fprintf(b, "- Customer's primary fear: %s\n", orPlaceholder(p.PrimaryFear))
	fmt.Fprintf(b, "- Monthly marketing budget: %s\n", orPlaceholder(p.MarketingBudget))
	fmt.Fprintf(b, "- Ad budget: %s\n", orPlaceholder(p.AdBudget))
	fmt.Fprintf(b, "- Tone of voice: %s\n", orPlaceholder(p.ToneOfVoice))
	fmt.Fprintf(b, "- Preferred call to action: %s\n", orPlaceholder(p.CallToAction))
}

func writeAnalysis(b *strings.Builder, a *models.CompetitorAnalysis) {
	b.WriteString("\nCOMPETITOR ANALYSIS\n")
	if a == nil {
		fmt.Fprintf(b, "%s\n", Placeholder)
		return
	}
	fmt.Fprintf(b, "- Market overview: %s\n", orPlaceholder(a.MarketOverview))
	if len(a.Competitors) == 0 {
		fmt.Fprintf(b, "- Competitors: %s\n", Placeholder)
	}
	for _, c := range a.Competitors {
		fmt.Fprintf(b, "- %s (%s): strengths %s; weaknesses %s\n",
			orPlaceholder(c.Name), orPlaceholder(c.Positioning), listOrPlaceholder(c.Strengths), listOrPlaceholder(c.Weaknesses))
	}
	fmt.Fprintf(b, "- Common hooks: %s\n", listOrPlaceholder(a.AdPatterns.CommonHooks))
	fmt.Fprintf(b, "- Gaps in competitor ads: %s\n", listOrPlaceholder(a.AdPatterns.Gaps))
	fmt.Fprintf(b, "- Opportunities: %s\n", listOrPlaceholder(a.Opportunities))
	fmt.Fprintf(b, "- Threats: %s\n", listOrPlaceholder(a.Threats))
}

func writeICP(b *strings.Builder, icp *models.IdealCustomerProfile) {
	b.WriteString("\nIDEAL CUSTOMER PROFILE\n")
	if icp == nil {
		fmt.Fprintf(b, "%s\n", Placeholder)
		return
	}
	d := icp.Demographics
	fmt.Fprintf(b, "- Summary: %s\n", orPlaceholder(icp.Summary))
	fmt.Fprintf(b, "- Demographics: age %s, %s, %s, %s, income %s\n",
		orPlaceholder(d.AgeRange), orPlaceholder(d.Gender), orPlaceholder(d.Location), orPlaceholder(d.Occupation), orPlaceholder(d.Income))
	fmt.Fprintf(b, "- Motivations: %s\n", listOrPlaceholder(icp.Psychographics.Motivations))
	fmt.Fprintf(b, "- Fears: %s\n", listOrPlaceholder(icp.Psychographics.Fears))
	fmt.Fprintf(b, "- Buying behavior: %s\n", orPlaceholder(icp.BuyingBehavior))
	fmt.Fprintf(b, "- Pain points: %s\n", listOrPlaceholder(icp.PainPoints))
	fmt.Fprintf(b, "- Dream outcome: %s\n", orPlaceholder(icp.DreamOutcome))
	fmt.Fprintf(b, "- Messaging angles: %s\n", listOrPlaceholder(icp.MessagingAngles))
	fmt.Fprintf(b, "- Preferred channels: %s\n", listOrPlaceholder(icp.PreferredChannels))
}

func writeCampaign(b *strings.Builder, c *models.AdCampaign) {
	b.WriteString("\nAD CAMPAIGN\n")
	if c == nil {
		fmt.Fprintf(b, "%s\n", Placeholder)
		return
	}
	fmt.Fprintf(b, "- Objective: %s\n", orPlaceholder(c.Strategy.Objective))
	fmt.Fprintf(b, "- Channels: %s\n", listOrPlaceholder(c.Strategy.Channels))
	if len(c.AdVariants) == 0 {
		fmt.Fprintf(b, "- Ads: %s\n", Placeholder)
	}
	for _, v := range c.AdVariants {
		fmt.Fprintf(b, "- [%s] %s: %q (%s)\n", orPlaceholder(v.Type), orPlaceholder(v.Angle), orPlaceholder(v.Headline), orPlaceholder(v.CallToAction))
	}
}

func writeSampleAds(b *strings.Builder, ads models.CompetitorAdBundle) {
	b.WriteString("\nLIVE COMPETITOR ADS\n")
	if !ads.Available || len(ads.Ads) == 0 {
		b.WriteString(noAdsNote + "\n")
		return
	}
	fmt.Fprintf(b, "%d ads from %d unique advertisers. Sample:\n", len(ads.Ads), ads.UniqueCompetitors)
	for i, ad := range ads.Ads {
		if i == MaxSampleAds {
			break
		}
		fmt.Fprintf(b, "%d. %s | headline: %s | body: %s | platforms: %s\n",
			i+1, orPlaceholder(ad.AdvertiserName), orPlaceholder(truncate(ad.Headline, 120)),
			orPlaceholder(truncate(ad.Body, 200)), listOrPlaceholder(ad.Platforms))
	}
}

func messages(user string) []llm.Message {
	return []llm.Message{llm.NewSystemMessage(systemRole), llm.NewUserMessage(user)}
}

func competitorAnalysisPrompt(p models.OnboardingProfile, ads models.CompetitorAdBundle) []llm.Message {
	var b strings.Builder
	writeProfile(&b, p)
	writeSampleAds(&b, ads)
	b.WriteString("\nTASK\nAnalyze the competitive landscape for this business. Name the competitors you can identify, " +
		"what their ads have in common, where they leave gaps, and the opportunities and threats for this business.")
	return messages(b.String())
}

func icpPrompt(p models.OnboardingProfile, a *models.CompetitorAnalysis) []llm.Message {
	var b strings.Builder
	writeProfile(&b, p)
	writeAnalysis(&b, a)
	b.WriteString("\nTASK\nDescribe the ideal customer for this business. Ground the pain points and messaging angles " +
		"in the competitor weaknesses and gaps above.")
	return messages(b.String())
}

func adCampaignPrompt(p models.OnboardingProfile, icp *models.IdealCustomerProfile, a *models.CompetitorAnalysis) []llm.Message {
	var b strings.Builder
	writeProfile(&b, p)
	writeAnalysis(&b, a)
	writeICP(&b, icp)
	fmt.Fprintf(&b, "\nTASK\nCreate a paid social campaign with exactly %d ad variants, one of each type: "+
		"pain, dream-outcome, social-proof, guarantee, urgency, video-script. Speak to the ideal customer above "+
		"and exploit the competitor gaps. Split the budget across channels in percent.", AdVariantCount)
	return messages(b.String())
}

func landingPagePrompt(p models.OnboardingProfile, icp *models.IdealCustomerProfile, c *models.AdCampaign) []llm.Message {
	var b strings.Builder
	writeProfile(&b, p)
	writeICP(&b, icp)
	writeCampaign(&b, c)
	fmt.Fprintf(&b, "\nTASK\nStructure the landing page these ads send traffic to. Fill every section: %s. "+
		"Keep the message consistent with the ads.", strings.Join(models.SectionKeys, ", "))
	return messages(b.String())
}

func marketingStrategyPrompt(p models.OnboardingProfile) []llm.Message {
	var b strings.Builder
	writeProfile(&b, p)
	b.WriteString("\nTASK\nWrite the marketing strategy for this business: positioning, value proposition, key messages, channels and a 90-day timeline.")
	return messages(b.String())
}

func marketAnalysisPrompt(p models.OnboardingProfile) []llm.Message {
	var b strings.Builder
	writeProfile(&b, p)
	b.WriteString("\nTASK\nSummarize the market this business competes in: size, trends, typical competitors, opportunities and risks.")
	return messages(b.String())
}
