package featureflags

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled(t *testing.T) {
	t.Parallel()

	flags := Parse("signup=on, closed=off, yes=1, no=0, all=100%, none=0%, bad, =oops, weird=maybe")

	tests := []struct {
		name    string
		flag    string
		subject string
		want    bool
	}{
		{"On", "signup", "alice@example.com", true},
		{"On With Empty Subject", "signup", "", true},
		{"Off", "closed", "alice@example.com", false},
		{"Numeric On", "yes", "", true},
		{"Numeric Off", "no", "", false},
		{"Full Rollout", "all", "", true},
		{"Zero Percent Rollout", "none", "alice@example.com", false},
		{"Unknown Flag", "missing", "alice@example.com", false},
		{"Unparseable Value", "weird", "alice@example.com", false},
		{"Case Insensitive Name", "SIGNUP", "alice@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flags.Enabled(tt.flag, tt.subject))
		})
	}
}

func TestEnabledPartialRollout(t *testing.T) {
	t.Parallel()

	flags := Parse("signup=40%")

	// A subject's bucket never changes between evaluations.
	first := flags.Enabled("signup", "alice@example.com")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, flags.Enabled("signup", "alice@example.com"))
	}

	// Bucketing is case-insensitive, so the same email always lands in
	// the same bucket no matter how the caller spelled it.
	assert.Equal(t, first, flags.Enabled("signup", "ALICE@Example.com"))

	// Roughly the configured share of subjects falls inside the rollout.
	enabled := 0
	for i := 0; i < 1000; i++ {
		if flags.Enabled("signup", fmt.Sprintf("user%d@example.com", i)) {
			enabled++
		}
	}
	assert.InDelta(t, 400, enabled, 100)

	// Callers without a stable identity never join a partial rollout.
	assert.False(t, flags.Enabled("signup", ""))
}

func TestEnabledNilFlags(t *testing.T) {
	t.Parallel()

	var flags *Flags
	assert.False(t, flags.Enabled("signup", "alice@example.com"))
}
