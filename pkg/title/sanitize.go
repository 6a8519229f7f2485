package title

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// InlinePolicy allows the inline formatting elements titles commonly use and
// strips everything else.
func InlinePolicy() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "small", "code", "sub", "sup", "span")
		policy.AllowAttrs("class").OnElements("span")
		inlinePolicy = policy
	})
	return inlinePolicy
}
