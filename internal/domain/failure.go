package domain

import "strings"

type FailureCategory string

const (
	FailureAuth         FailureCategory = "auth"
	FailureNetwork      FailureCategory = "network"
	FailureRateLimited  FailureCategory = "rate_limited"
	FailureUnclassified FailureCategory = "unclassified"
)

type failureRule struct {
	category FailureCategory
	needles  []string
}

// Evaluated in order; the first rule with a matching needle wins.
var failureRules = []failureRule{
	{category: FailureAuth, needles: []string{"unauthorized", "401"}},
	{category: FailureNetwork, needles: []string{"network", "timeout"}},
	{category: FailureRateLimited, needles: []string{"rate limit", "429"}},
}

// ClassifyMessage maps the rendered text of a failed completion call to a
// guidance category.
func ClassifyMessage(message string) FailureCategory {
	folded := strings.ToLower(message)
	for _, rule := range failureRules {
		for _, needle := range rule.needles {
			if strings.Contains(folded, needle) {
				return rule.category
			}
		}
	}

	return FailureUnclassified
}

func ClassifyFailure(err error) FailureCategory {
	if err == nil {
		return FailureUnclassified
	}

	return ClassifyMessage(err.Error())
}

// Hint returns the one-line guidance shown after a failure, or "" when the
// category has none.
func (c FailureCategory) Hint() string {
	switch c {
	case FailureAuth:
		return "Please check your DEEPSEEK_API_KEY in the .env file"
	case FailureNetwork:
		return "Please check your internet connection and try again"
	case FailureRateLimited:
		return "Rate limit exceeded. Please wait a moment before trying again"
	default:
		return ""
	}
}
