// internal/common/docparse/fields.go
package docparse

import (
	"regexp"
	"strconv"
	"strings"

	"startup-analyst/internal/models"
)

var (
	dollarAmountRe = regexp.MustCompile(`(?i)\$\s*(\d+(?:[.,]\d+)*)\s*(k|mm|m|bn|b|thousand|million|billion)?\b`)
	plainAmountRe  = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)*)\s*(k|mm|m|bn|b|thousand|million|billion)?\b`)
	percentRe      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	monthsRe       = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*months?`)
	yearsRe        = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)`)
	exitsRe        = regexp.MustCompile(`(?i)(\d+)\s*(?:prior |previous )?exits?`)
	founderLineRe  = regexp.MustCompile(`(?i)^\s*(co-founder|founder|ceo|cto|coo|cfo|cpo)\s*[:\-]\s*([^,;(]+)(.*)$`)
	stageRe        = regexp.MustCompile(`(?i)\b(idea|prototype|mvp|beta|launched|growth|scale)\b`)
	marketSizeRe   = regexp.MustCompile(`(?i)\b(market size|tam|addressable market)\b`)
	revenueRe      = regexp.MustCompile(`(?i)\b(revenue|arr|mrr|sales)\b`)
)

var businessModels = []string{"saas", "marketplace", "subscription", "platform", "hardware", "services", "consulting", "ecommerce", "e-commerce"}

var educationLevels = []struct {
	keyword string
	level   string
}{
	{"phd", "phd"},
	{"ph.d", "phd"},
	{"mba", "mba"},
	{"master", "masters"},
	{"msc", "masters"},
	{"bachelor", "bachelors"},
	{"bsc", "bachelors"},
}

const maxHighlights = 3

// ExtractFields applies line-oriented heuristics to pitch-deck text.
func ExtractFields(name, text string) models.Record {
	founderInfo := models.Record{}
	businessModel := models.Record{}
	financials := models.Record{}
	market := models.Record{}
	product := models.Record{}

	var founders []interface{}
	var highlights []interface{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if len(highlights) < maxHighlights {
			highlights = append(highlights, truncate(line, 120))
		}

		if m := founderLineRe.FindStringSubmatch(line); m != nil {
			founders = append(founders, parseFounder(m[1], m[2], m[3]))
			continue
		}

		switch {
		case marketSizeRe.MatchString(line):
			if v, ok := parseAmount(line); ok {
				market["size"] = v
			}
		case strings.Contains(lower, "market") && strings.Contains(lower, "growth"):
			if v, ok := parsePercent(line); ok {
				market["growthRate"] = v
			}
		case strings.Contains(lower, "competitor"):
			if names := parseList(line); len(names) > 0 {
				market["competitors"] = names
			}
		case strings.Contains(lower, "growth"):
			if v, ok := parsePercent(line); ok {
				financials["growthRate"] = v
			}
		case strings.Contains(lower, "margin"):
			if v, ok := parsePercent(line); ok {
				financials["grossMargin"] = v
			}
		case strings.Contains(lower, "burn"):
			if v, ok := parseAmount(line); ok {
				financials["burnRate"] = v
			}
		case strings.Contains(lower, "runway"):
			if m := monthsRe.FindStringSubmatch(line); m != nil {
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					financials["runway"] = v
				}
			}
		case revenueRe.MatchString(line):
			if v, ok := parseAmount(line); ok {
				financials["revenue"] = v
			}
		case strings.Contains(lower, "raised") || strings.Contains(lower, "funding"):
			if v, ok := parseAmount(line); ok {
				financials["capitalRaised"] = v
			}
		case strings.Contains(lower, "customers"):
			if m := plainAmountRe.FindStringSubmatch(line); m != nil {
				if v, ok := scaleAmount(m[1], m[2]); ok {
					businessModel["customers"] = v
				}
			}
		case strings.Contains(lower, "stage"):
			if m := stageRe.FindStringSubmatch(line); m != nil {
				product["stage"] = strings.ToLower(m[1])
			}
		}

		if !businessModel.Has("model") {
			for _, bm := range businessModels {
				if strings.Contains(lower, bm) {
					businessModel["model"] = strings.ReplaceAll(bm, "-", "")
					break
				}
			}
		}
	}

	if len(founders) > 0 {
		founderInfo["founders"] = founders
		founderInfo["teamSize"] = len(founders)
	}

	record := models.Record{
		models.FieldSources:    []interface{}{name},
		models.FieldHighlights: highlights,
	}
	for key, section := range map[string]models.Record{
		models.FieldFounderInfo:   founderInfo,
		models.FieldBusinessModel: businessModel,
		models.FieldFinancials:    financials,
		models.FieldMarket:        market,
		models.FieldProduct:       product,
	} {
		if len(section) > 0 {
			record[key] = section
		}
	}
	return record
}

func parseFounder(role, name, rest string) models.Record {
	role = strings.ToUpper(strings.TrimSpace(role))
	lower := strings.ToLower(rest)

	founder := models.Record{
		"name": strings.TrimSpace(name),
		"role": role,
	}
	if m := yearsRe.FindStringSubmatch(rest); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			founder["yearsExperience"] = v
		}
	}
	for _, e := range educationLevels {
		if strings.Contains(lower, e.keyword) {
			founder["education"] = e.level
			break
		}
	}
	if m := exitsRe.FindStringSubmatch(rest); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			founder["previousExits"] = v
		}
	} else if strings.Contains(lower, "exit") || strings.Contains(lower, "acquired") {
		founder["previousExits"] = 1
	}
	founder["technical"] = role == "CTO" || strings.Contains(lower, "engineer") ||
		strings.Contains(lower, "technical") || strings.Contains(lower, "computer science")
	return founder
}

func parseAmount(line string) (float64, bool) {
	if m := dollarAmountRe.FindStringSubmatch(line); m != nil {
		return scaleAmount(m[1], m[2])
	}
	if m := plainAmountRe.FindStringSubmatch(line); m != nil {
		return scaleAmount(m[1], m[2])
	}
	return 0, false
}

func scaleAmount(number, unit string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(number, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(unit) {
	case "k", "thousand":
		v *= 1e3
	case "m", "mm", "million":
		v *= 1e6
	case "b", "bn", "billion":
		v *= 1e9
	}
	return v, true
}

// parsePercent returns a fraction, so "40%" yields 0.4.
func parsePercent(line string) (float64, bool) {
	m := percentRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

func parseList(line string) []interface{} {
	idx := strings.IndexAny(line, ":-")
	if idx < 0 {
		return nil
	}
	var out []interface{}
	for _, part := range strings.Split(line[idx+1:], ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
