package llm

import (
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// quotaIndicators are message fragments that mark quota/rate-limit
// failures across OpenAI-compatible backends.
var quotaIndicators = []string{"quota", "rate limit", "rate_limit", "insufficient_quota", "429"}

// IsQuotaError reports whether err is a quota or rate-limit failure, the
// class of generation error that gets a degraded templated answer rather
// than a generic apology.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range quotaIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
