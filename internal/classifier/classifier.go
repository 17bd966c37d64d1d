package classifier

import (
	"strings"
)

type Classifier interface {
	ClassifyContent(content string) []string
}

type topicRule struct {
	tag      string
	keywords []string
}

// Checked in order; a message yields each tag at most once.
var farmingTopics = []topicRule{
	{tag: "maize", keywords: []string{"maize"}},
	{tag: "tomatoes", keywords: []string{"tomato"}},
	{tag: "pest_control", keywords: []string{"pest"}},
	{tag: "soil", keywords: []string{"soil"}},
}

// KeywordClassifier tags text with canonical farming topics by keyword match.
type KeywordClassifier struct {
	rules []topicRule
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{rules: farmingTopics}
}

func (c *KeywordClassifier) ClassifyContent(content string) []string {
	content = strings.ToLower(content)

	tags := make([]string, 0, len(c.rules))
	for _, rule := range c.rules {
		for _, keyword := range rule.keywords {
			if strings.Contains(content, keyword) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}

	return tags
}
