package match

import (
	"math"
	"strconv"
	"strings"

	"github.com/poiesic/recobot/config"
	"github.com/poiesic/recobot/core"
)

// yearRange is an inclusive range of release years.
type yearRange struct {
	from, to int
}

func (r yearRange) contains(year int) bool {
	return year >= r.from && year <= r.to
}

// eraResolver turns era subcategories into year ranges. Named rules are
// relative to the current year; literal years, ranges and decades are not.
type eraResolver struct {
	rules map[string]config.EraRule
}

func newEraResolver(rules map[string]config.EraRule) eraResolver {
	normalized := make(map[string]config.EraRule, len(rules))
	for name, rule := range rules {
		normalized[core.NormalizeKey(name)] = rule
	}
	return eraResolver{rules: normalized}
}

// resolve accepts a rule name ("recent"), a year ("2015"), a range
// ("1990-1999") or a decade ("1990s").
func (e eraResolver) resolve(subcategory string, currentYear int) (yearRange, bool) {
	tokens := core.Tokenize(subcategory)
	if rule, ok := e.rules[strings.Join(tokens, " ")]; ok {
		r := yearRange{from: math.MinInt, to: currentYear - rule.MinAge}
		if rule.MaxAge > 0 {
			r.from = currentYear - rule.MaxAge
		}
		return r, true
	}

	switch len(tokens) {
	case 1:
		if year, ok := parseYear(tokens[0]); ok {
			return yearRange{from: year, to: year}, true
		}
		if decade, ok := strings.CutSuffix(tokens[0], "s"); ok {
			if year, ok := parseYear(decade); ok && year%10 == 0 {
				return yearRange{from: year, to: year + 9}, true
			}
		}
	case 2:
		from, ok1 := parseYear(tokens[0])
		to, ok2 := parseYear(tokens[1])
		if ok1 && ok2 && from <= to {
			return yearRange{from: from, to: to}, true
		}
	}
	return yearRange{}, false
}

func parseYear(token string) (int, bool) {
	if len(token) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(token)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
