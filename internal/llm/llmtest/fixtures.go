package llmtest

// Fixtures holds a valid reply for every request name the stages use.
var Fixtures = map[string]string{
	"competitor_analysis": `{
  "marketOverview": "Local storefront signage is fragmented across small fabricators.",
  "competitors": [
    {"name": "SignCo", "positioning": "cheapest in town", "strengths": ["price"], "weaknesses": ["slow installs"]},
    {"name": "BrightLetters", "positioning": "premium LED", "strengths": ["design"], "weaknesses": ["no warranty"]}
  ],
  "adPatterns": {
    "commonHooks": ["Get noticed"],
    "commonOffers": ["Free mockup"],
    "commonCallsToAction": ["Get a quote"],
    "gaps": ["Nobody shows install timelines"]
  },
  "opportunities": ["Guaranteed install dates"],
  "threats": ["Online print shops"]
}`,
	"icp": `{
  "summary": "Independent retail owners opening or refreshing a storefront.",
  "demographics": {"ageRange": "30-55", "gender": "any", "location": "Urban", "occupation": "Shop owner", "income": "$80k-150k"},
  "psychographics": {"values": ["reliability"], "interests": ["local business"], "motivations": ["foot traffic"], "fears": ["missing opening day"]},
  "buyingBehavior": "Compares three quotes over two weeks.",
  "painPoints": ["Installers miss deadlines"],
  "dreamOutcome": "A sign that pulls customers in from day one.",
  "messagingAngles": ["On-time or it's free"],
  "preferredChannels": ["Facebook", "Google Search"]
}`,
	"ad_campaign": `{
  "campaignStrategy": {
    "objective": "Lead generation",
    "channels": ["Facebook", "Instagram"],
    "budgetSplit": {"Facebook": 60, "Instagram": 40},
    "targeting": "Retail owners within 25 miles"
  },
  "adVariants": [
    {"id": "ad-1", "name": "Deadline Pain", "type": "pain", "angle": "missed openings", "targetEmotion": "fear", "headline": "Opening day with no sign?", "body": "We install on time.", "callToAction": "Get a quote", "visualBrief": "Empty storefront"},
    {"id": "ad-2", "name": "Dream Storefront", "type": "dream-outcome", "angle": "busy store", "targetEmotion": "hope", "headline": "Turn heads", "body": "Signs that sell.", "callToAction": "Get a quote", "visualBrief": "Lit sign at night"},
    {"id": "ad-3", "name": "Proof", "type": "social-proof", "angle": "300 installs", "targetEmotion": "trust", "headline": "300 shops trust us", "body": "Join them.", "callToAction": "See our work", "visualBrief": "Collage"},
    {"id": "ad-4", "name": "Guarantee", "type": "guarantee", "angle": "risk reversal", "targetEmotion": "safety", "headline": "On time or free", "body": "No risk.", "callToAction": "Book now", "visualBrief": "Calendar"},
    {"id": "ad-5", "name": "Urgency", "type": "urgency", "angle": "season", "targetEmotion": "urgency", "headline": "Book before spring", "body": "Slots are filling.", "callToAction": "Reserve", "visualBrief": "Countdown"},
    {"name": "Install Video", "type": "video-script", "angle": "behind the scenes", "targetEmotion": "curiosity", "headline": "Watch an install", "body": "0-3s: crane lifts sign...", "callToAction": "Get a quote", "visualBrief": "Timelapse"}
  ]
}`,
	"landing_page": `{
  "pageTitle": "Storefront Signs Installed On Time",
  "metaDescription": "Custom signage for local shops.",
  "sections": {
    "hero": {"headline": "Your sign, up before opening day", "body": "Design to install in 14 days.", "purpose": "Hook"},
    "problem": {"headline": "Late signs cost sales", "body": "Every day without a sign is lost traffic.", "purpose": "Agitate"},
    "solution": {"headline": "Fixed-date installs", "body": "We commit to a date.", "purpose": "Resolve"},
    "process": {"headline": "How it works", "body": "Three steps.", "purpose": "Clarify", "items": ["Quote", "Design", "Install"]},
    "socialProof": {"headline": "300 shops", "body": "Reviews.", "purpose": "Trust"},
    "guarantee": {"headline": "On time or free", "body": "Written guarantee.", "purpose": "Risk reversal"},
    "faq": {"headline": "Questions", "body": "Answers.", "purpose": "Objections", "items": ["Do you handle permits? Yes."]},
    "finalCta": {"headline": "Get your quote", "body": "Takes two minutes.", "purpose": "Convert"}
  }
}`,
	"marketing_strategy": `{
  "positioning": "The on-time signage partner",
  "valueProposition": "Storefront signs installed by a guaranteed date",
  "keyMessages": ["On time or free"],
  "channels": ["Facebook"],
  "timeline": ["Month 1: launch"]
}`,
	"market_analysis": `{
  "marketSize": "Regional, fragmented",
  "trends": ["LED retrofits"],
  "competitors": ["SignCo"],
  "opportunities": ["Deadline guarantees"],
  "risks": ["Material costs"]
}`,
}
