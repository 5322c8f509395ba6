// Package featureflags evaluates config-driven feature toggles, including
// deterministic percentage rollouts bucketed by a caller-supplied subject.
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Flags holds parsed feature toggles. The zero value has every flag off.
type Flags struct {
	values map[string]string
}

// Parse builds a flag set from a comma-separated key=value list, e.g.
// "signup=on,ranked_feed=25%". Malformed pairs are skipped.
func Parse(raw string) *Flags {
	values := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		value := normalize(parts[1])
		if key == "" || value == "" {
			continue
		}
		values[key] = value
	}
	return &Flags{values: values}
}

// Enabled reports whether the named flag is on for the given subject.
// Supported values:
//   - on, true, 1: enabled for everyone
//   - off, false, 0: disabled for everyone
//   - N%: enabled for a deterministic N percent of subjects, so a given
//     subject stays in or out of the rollout across requests
//
// The subject is any stable caller identity, such as a lowercased email.
// An empty subject is never part of a partial rollout. Unknown flags and
// unparseable values report false.
func (f *Flags) Enabled(name, subject string) bool {
	if f == nil {
		return false
	}
	value, ok := f.values[normalize(name)]
	if !ok {
		return false
	}
	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}
	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil || pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		if subject == "" {
			return false
		}
		return rolloutBucket(name, subject) < pct
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name, subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + normalize(subject)))
	return int(h.Sum32() % 100)
}
