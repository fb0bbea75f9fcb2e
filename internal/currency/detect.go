package currency

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"converter-backend/internal/models"
)

// sortedCodes fixes the iteration order over the keyword table so detection
// is reproducible. First matching code wins.
var sortedCodes []string

// keywordPatterns holds a compiled whole-word pattern per keyword, in the
// same order as the keyword lists.
var keywordPatterns = map[string][]*regexp.Regexp{}

var amountPattern = regexp.MustCompile(`[\d,]+\.?\d*`)

func init() {
	for code, keywords := range currencyKeywords {
		sortedCodes = append(sortedCodes, code)
		patterns := make([]*regexp.Regexp, len(keywords))
		for i, kw := range keywords {
			patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		keywordPatterns[code] = patterns
	}
	sort.Strings(sortedCodes)
}

// Detect reports the currency code mentioned in text, if any. A keyword
// counts when it appears as a whole word or when the trimmed input equals it
// exactly, which also catches symbol-only inputs like "$".
func Detect(text string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, code := range sortedCodes {
		for i, kw := range currencyKeywords[code] {
			if normalized == kw || keywordPatterns[code][i].MatchString(normalized) {
				return code, true
			}
		}
	}
	return "", false
}

// DetectConversion decides whether a conversion request is a currency
// conversion. Both endpoints must independently name a currency; there is no
// partial detection.
func DetectConversion(fromText, toText string) (*models.CurrencyPair, bool) {
	from, ok := Detect(fromText)
	if !ok {
		return nil, false
	}
	to, ok := Detect(toText)
	if !ok {
		return nil, false
	}
	return &models.CurrencyPair{From: from, To: to}, true
}

// ExtractAmount pulls the first numeric run out of text ("1,234.5 USD" ->
// 1234.5). Defaults to 1 when no number is present, so "dollars" alone means
// one dollar.
func ExtractAmount(text string) float64 {
	match := amountPattern.FindString(text)
	if match == "" {
		return 1
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 1
	}
	return amount
}
