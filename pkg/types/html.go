package types

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	safePolicyOnce sync.Once
	safePolicy     *bluemonday.Policy
)

// SafeHTML accepts strings carrying user-generated markup and strips anything
// outside bluemonday's UGC policy.
var SafeHTML = HTML(nil)

// HTML returns a string type that sanitises values with policy. A nil policy
// selects the shared UGC policy.
func HTML(policy *bluemonday.Policy) Type {
	return New("html", func(value any) (any, error) {
		raw, ok := value.(string)
		if !ok {
			return nil, mismatch("html string", value)
		}
		p := policy
		if p == nil {
			p = ugcPolicy()
		}
		return strings.TrimSpace(p.Sanitize(raw)), nil
	})
}

func ugcPolicy() *bluemonday.Policy {
	safePolicyOnce.Do(func() {
		safePolicy = bluemonday.UGCPolicy()
	})
	return safePolicy
}
