package domain

import "fmt"

// Usage counts tokens reported by the completion service. CachedInputTokens
// is the part of InputTokens served from the provider's prompt cache.
type Usage struct {
	InputTokens       int64
	OutputTokens      int64
	CachedInputTokens int64
}

func (u Usage) Add(other Usage) Usage {
	return Usage{
		InputTokens:       u.InputTokens + other.InputTokens,
		OutputTokens:      u.OutputTokens + other.OutputTokens,
		CachedInputTokens: u.CachedInputTokens + other.CachedInputTokens,
	}
}

// Total returns InputTokens + OutputTokens.
func (u Usage) Total() int64 {
	return u.InputTokens + u.OutputTokens
}

func (u Usage) TotalCompact() string {
	return compactNumber(u.Total())
}

func compactNumber(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	// 999_950 and up would print as "1000.0k".
	if v < 999_950 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}
