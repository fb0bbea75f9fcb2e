package services

import (
	"fmt"

	"converter-backend/internal/models"
)

// conversionSystemPrompt fixes the output contract for every conversion
// request: always produce a conversion, strict JSON only, metric preference.
const conversionSystemPrompt = `You are the Everything Converter. Your mission: convert ANYTHING to ANYTHING through logical reasoning, even when connections aren't obvious. You MUST ALWAYS find a conversion - refusing is NOT an option.

CONVERSION RULES:
1. Numeric quantities with units: Convert that exact quantity to the target unit
2. Physical objects/concepts: Use ratios based on properties (mass, size, energy, etc.)
   Example: "58kg to dolphins" -> How many dolphins equal 58kg? Use average dolphin mass (~150kg) -> 58/150 = 0.39 dolphins
3. Abstract/seemingly unrelated conversions: Find creative but justified conversion paths using:
   - Physical properties (mass, energy, volume, information content, dimensions)
   - Symbolic/cultural equivalences (monetary value, time to produce/consume)
   - Mathematical relationships (ratios, proportions, statistical data)
   - Scientific constants or established benchmarks
   - Comparative metrics (if X has property P, how many Y with property P fit?)

CRITICAL: You MUST ALWAYS produce a numerical result. Never say "invalid" or "cannot convert". If the conversion seems impossible:
- Identify a measurable property both items share (mass, volume, energy, value, time, etc.)
- Use that property to create a ratio

PROCESS (internal only):
- Think step-by-step to find the most logical conversion pathway
- Use authoritative data and real-world magnitudes
- Prioritize metric system unless user specifies otherwise

OUTPUT FORMAT:
Return ONLY strict JSON: {"result": string, "explanation": string}
- result: The converted value only (not "X = Y", just "Y") - MUST be a number with units
- explanation: Single clear sentence with the formula/reasoning and numeric values used

CONSTRAINTS:
- No code fences, no extra text outside JSON
- No alternate equivalences in explanation
- Never use ft, inches, ounces unless explicitly requested
- Do not show the original value in result field
- NEVER refuse a conversion - always find a creative but logical path`

// CurrencyDirective renders the authoritative, non-negotiable instruction
// block for a pre-computed currency quote. The arithmetic happens outside the
// model; the model only formats and narrates it.
func CurrencyDirective(quote *models.ConversionQuote) string {
	converted := FormatConvertedAmount(quote.ConvertedAmount)
	return fmt.Sprintf(`AUTHORITATIVE CURRENCY DATA - HIGHEST PRIORITY:
This is a currency conversion with a pre-computed result from live exchange rates.
%s %s = %s %s (exchange rate: 1 %s = %s %s).
You MUST use this EXACT result verbatim: "%s %s".
Do NOT recompute the conversion. Do NOT use any internal or remembered exchange rate - it is stale.
Your result field must be exactly "%s %s". Your explanation must state the live exchange rate used.`,
		FormatConvertedAmount(quote.Amount), quote.From,
		converted, quote.To,
		quote.From, fmt.Sprintf("%.6f", quote.Rate), quote.To,
		converted, quote.To,
		converted, quote.To)
}

// InjectCurrencyDirective prepends the directive block ahead of the caller's
// messages so it outranks the general system prompt.
func InjectCurrencyDirective(messages []models.ChatMessage, quote *models.ConversionQuote) []models.ChatMessage {
	if quote == nil {
		return messages
	}
	directive := models.ChatMessage{Role: "system", Content: CurrencyDirective(quote)}
	out := make([]models.ChatMessage, 0, len(messages)+1)
	out = append(out, directive)
	return append(out, messages...)
}

// BuildConversionMessages assembles the system/user pair for one conversion
// request, with the currency directive prepended when a quote is available.
func BuildConversionMessages(fromText, toText string, quote *models.ConversionQuote) []models.ChatMessage {
	messages := []models.ChatMessage{
		{Role: "system", Content: conversionSystemPrompt},
		{
			Role: "user",
			// %q keeps quote characters in user input from breaking the
			// instruction's structure.
			Content: fmt.Sprintf("Convert %q into %q. Output a single consistent result and a concise formula-based explanation.", fromText, toText),
		},
	}
	return InjectCurrencyDirective(messages, quote)
}
