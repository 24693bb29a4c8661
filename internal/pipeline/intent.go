package pipeline

import "strings"

// Intent is the classified purpose of an inbound message.
type Intent string

// The closed intent set. Classifier output outside this set is coerced to
// IntentUnrelated.
const (
	IntentUpdate    Intent = "UPDATE"
	IntentStatus    Intent = "STATUS"
	IntentPolicy    Intent = "POLICY"
	IntentUnrelated Intent = "UNRELATED"
)

// ParseIntent normalizes raw classifier output into the closed intent set.
// The second return reports whether the raw value was already a member.
func ParseIntent(raw string) (Intent, bool) {
	switch Intent(strings.ToUpper(strings.TrimSpace(raw))) {
	case IntentUpdate:
		return IntentUpdate, true
	case IntentStatus:
		return IntentStatus, true
	case IntentPolicy:
		return IntentPolicy, true
	case IntentUnrelated:
		return IntentUnrelated, true
	default:
		return IntentUnrelated, false
	}
}
