package scene

import "strings"

// Rule maps any of its keywords to a scene. Keywords match as case-sensitive
// substrings.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Scene    Scene    `yaml:"scene"`
}

func (r Rule) matches(text string) bool {
	for _, k := range r.Keywords {
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// DefaultRules is the built-in rule table. Shutdown phrases come first so they
// win over mood words in the same sentence.
var DefaultRules = []Rule{
	{Keywords: []string{"关灯", "关闭灯光"}, Scene: Off},
	{Keywords: []string{"恢复正常", "默认"}, Scene: Relax},
	{Keywords: []string{"派对", "party"}, Scene: Party},
	{Keywords: []string{"浪漫"}, Scene: Romantic},
	{Keywords: []string{"睡前", "放松", "relax"}, Scene: Relax},
}

// DefaultScene is what unmatched text resolves to.
const DefaultScene = Relax

// Classifier evaluates an ordered rule table; the first matching rule wins.
type Classifier struct {
	rules    []Rule
	fallback Scene
}

// NewClassifier copies rules so later edits by the caller do not leak in.
func NewClassifier(rules []Rule, fallback Scene) *Classifier {
	rs := make([]Rule, len(rules))
	for i, r := range rules {
		rs[i] = Rule{Keywords: append([]string(nil), r.Keywords...), Scene: r.Scene}
	}
	return &Classifier{rules: rs, fallback: fallback}
}

// WithRules returns a classifier that checks extra ahead of the receiver's rules.
func (c *Classifier) WithRules(extra []Rule) *Classifier {
	return NewClassifier(append(append([]Rule(nil), extra...), c.rules...), c.fallback)
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	return NewClassifier(c.rules, c.fallback).rules
}

func (c *Classifier) Classify(text string) Scene {
	for _, r := range c.rules {
		if r.matches(text) {
			return r.Scene
		}
	}
	return c.fallback
}

var defaultClassifier = NewClassifier(DefaultRules, DefaultScene)

// Default returns the classifier built from DefaultRules.
func Default() *Classifier { return defaultClassifier }

// MapFromText classifies text with the default rule table.
func MapFromText(text string) Scene {
	return defaultClassifier.Classify(text)
}
