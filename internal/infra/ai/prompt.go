package ai

import (
	"fmt"
	"strings"
)

// buildClassificationPrompt constructs the batched per-headline sentiment
// prompt. Each headline carries a stable id the backend must echo back, so
// the mapping survives reordered or dropped response entries.
func buildClassificationPrompt(headlines []Headline) string {
	var sb strings.Builder
	sb.WriteString(`You are a financial news analyst. Classify the sentiment of each headline below for equity investors.

HEADLINES:
`)
	for _, h := range headlines {
		fmt.Fprintf(&sb, "- id=%q headline=%q\n", h.ID, h.Text)
	}
	sb.WriteString(`
RULES:
1. Sentiment must be exactly one of "Positive", "Negative", "Neutral".
2. Echo back the exact id of each headline; never invent or renumber ids.
3. Classify every headline; do not skip entries.

OUTPUT FORMAT:
Return ONLY valid minified JSON.
- Do NOT include markdown.
- Do NOT include code fences.
- Do NOT include any explanation or comments.
Return JSON only: [{ "id": "string", "sentiment": "Positive"|"Negative"|"Neutral" }]`)
	return sb.String()
}

// buildSynthesisPrompt constructs the aggregate market-sentiment prompt with
// fixed score banding rules.
func buildSynthesisPrompt(headlines []string) string {
	var sb strings.Builder
	sb.WriteString(`You are a senior global macro and US equity strategist at a top-tier hedge fund.
Your job is to read news headlines and give a calm, probabilistic view of the overall US equity market sentiment.

HEADLINES:
`)
	for _, h := range headlines {
		fmt.Fprintf(&sb, "- %s\n", h)
	}
	sb.WriteString(`
RULES:
1. Focus on the broad US equity market (e.g. S&P 500 / Nasdaq), NOT just individual tickers.
2. Weigh the headlines by importance:
  - Highest weight: macro & policy (Fed, rates, inflation, jobs, GDP, yields, credit, geopolitics).
  - Medium weight: large caps / big tech leaders.
  - Lower weight: small single-stock stories unless they clearly signal a broader theme.
3. Define sentiment score (0-100):
  - 0-20   = extremely bearish (crisis / panic)
  - 21-40  = bearish
  - 41-59  = neutral / balanced
  - 60-80  = bullish
  - 81-100 = extremely bullish (euphoria / strong risk-on)
4. Choose "status" using this logic:
  - If score <= 40        -> "Bearish"
  - If 41 <= score <= 59  -> "Neutral"
  - If score >= 60        -> "Bullish"
  - Use "Volatile" ONLY when the headlines are strongly mixed (big positive AND big negative at the same time, or high uncertainty), even if the score is around neutral.
5. "summary" must:
  - Be 1-2 sentences.
  - Be clear and human-readable.
  - Mention the main drivers (macro, earnings, policy, geopolitics, positioning, etc.).
6. "factors" EXACTLY 5 very short reasons (max 6-8 words each).

OUTPUT FORMAT:
Return ONLY valid minified JSON.
- Do NOT include markdown.
- Do NOT include code fences.
- Do NOT include any explanation or comments.
Return JSON only: { "status": "Bullish"|"Bearish"|"Neutral"|"Volatile", "score": 0-100, "summary": "string", "factors": ["string"] }`)
	return sb.String()
}
