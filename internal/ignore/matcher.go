package ignore

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// decisionCacheSize bounds the number of memoized match decisions per matcher.
	decisionCacheSize = 4096

	caseInsensitiveFlags = "(?is)"
	anyRunExpression     = ".*"
	anyCharExpression    = "."
	anyParentExpression  = "(?:.*/)?"
	anyChildExpression   = "(?:/.*)?"
	currentDirPrefix     = "./"
)

// compiledPattern holds one source pattern and its expression.
type compiledPattern struct {
	source     string
	expression *regexp.Regexp
}

// Matcher evaluates candidates against a compiled PatternSet.
// Decisions are memoized, so repeated passes over the same tree reuse them.
type Matcher struct {
	compiled  []compiledPattern
	decisions *lru.Cache[string, bool]
}

// NewMatcher compiles every pattern of the set once.
func NewMatcher(set PatternSet) *Matcher {
	compiled := make([]compiledPattern, 0, len(set.patterns))
	for _, pattern := range set.patterns {
		expression, valid := compileGlob(pattern)
		if !valid {
			continue
		}
		compiled = append(compiled, compiledPattern{source: pattern, expression: expression})
	}
	// lru.New only fails for a non-positive size.
	decisions, _ := lru.New[string, bool](decisionCacheSize)
	return &Matcher{compiled: compiled, decisions: decisions}
}

// Matches reports whether any pattern matches the candidate's base name or its path form.
func (matcher *Matcher) Matches(candidate string) bool {
	if matcher == nil || len(matcher.compiled) == 0 {
		return false
	}
	normalized := normalizeCandidate(candidate)
	if normalized == "" {
		return false
	}
	if decision, cached := matcher.decisions.Get(normalized); cached {
		return decision
	}
	decision := matcher.evaluate(normalized)
	matcher.decisions.Add(normalized, decision)
	return decision
}

// MatchingPattern returns the first pattern that excludes the candidate.
func (matcher *Matcher) MatchingPattern(candidate string) (string, bool) {
	if matcher == nil {
		return "", false
	}
	normalized := normalizeCandidate(candidate)
	if normalized == "" {
		return "", false
	}
	baseName := path.Base(normalized)
	for _, rule := range matcher.compiled {
		if rule.expression.MatchString(baseName) || rule.expression.MatchString(normalized) {
			return rule.source, true
		}
	}
	return "", false
}

func (matcher *Matcher) evaluate(normalized string) bool {
	_, matched := matcher.MatchingPattern(normalized)
	return matched
}

// Matches is the stateless form of Matcher.Matches for a raw pattern list.
// Invalid entries in patterns are ignored.
func Matches(candidate string, patterns []string) bool {
	return NewMatcher(NewPatternSet(patterns, false)).Matches(candidate)
}

// normalizeCandidate converts native separators to slashes and drops leading "./" segments.
func normalizeCandidate(candidate string) string {
	normalized := filepath.ToSlash(candidate)
	for strings.HasPrefix(normalized, currentDirPrefix) {
		normalized = strings.TrimPrefix(normalized, currentDirPrefix)
	}
	if len(normalized) > 1 {
		normalized = strings.TrimSuffix(normalized, DirectorySuffix)
	}
	if normalized == "." {
		return ""
	}
	return normalized
}

// compileGlob translates a glob into an anchored, case-insensitive expression.
// "*" matches any run including "/", "?" matches one character, everything else is literal.
// A trailing "/" extends the match to every path beneath the directory; without an inner
// slash such a directory may sit at any level.
func compileGlob(pattern string) (*regexp.Regexp, bool) {
	isDirectoryPattern := strings.HasSuffix(pattern, DirectorySuffix)
	body := strings.TrimRight(pattern, DirectorySuffix)
	if body == "" {
		return nil, false
	}

	var builder strings.Builder
	builder.WriteString(caseInsensitiveFlags)
	builder.WriteString("^")
	if isDirectoryPattern && !strings.Contains(body, DirectorySuffix) {
		builder.WriteString(anyParentExpression)
	}
	for _, character := range body {
		switch character {
		case '*':
			builder.WriteString(anyRunExpression)
		case '?':
			builder.WriteString(anyCharExpression)
		default:
			builder.WriteString(regexp.QuoteMeta(string(character)))
		}
	}
	if isDirectoryPattern {
		builder.WriteString(anyChildExpression)
	}
	builder.WriteString("$")

	expression, compileError := regexp.Compile(builder.String())
	if compileError != nil {
		return nil, false
	}
	return expression, true
}
