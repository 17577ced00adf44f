package calls

import (
	"sort"
	"strings"

	"github.com/citizenai/commshub/internal/messages"
)

// NumbersMatch is the correlation predicate: bidirectional substring
// containment, tolerating the formatting drift between the two providers
// (leading "+", country prefixes, spacing). A number that is a substring of
// an unrelated longer number is a false positive; callers accept that.
// Empty values never match.
func NumbersMatch(callNumber, externalID string) bool {
	callNumber = strings.TrimSpace(callNumber)
	externalID = strings.TrimSpace(externalID)
	if callNumber == "" || externalID == "" {
		return false
	}
	return strings.Contains(callNumber, externalID) || strings.Contains(externalID, callNumber)
}

// Unassociated returns the distinct message senders with no matching call,
// in order of first appearance.
func Unassociated(msgs []messages.InboundMessage, callRecords []CallRecord) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, msg := range msgs {
		if _, dup := seen[msg.ExternalID]; dup {
			continue
		}
		seen[msg.ExternalID] = struct{}{}
		matched := false
		for _, call := range callRecords {
			if NumbersMatch(call.ExternalNumber, msg.ExternalID) {
				matched = true
				break
			}
		}
		if !matched && strings.TrimSpace(msg.ExternalID) != "" {
			out = append(out, msg.ExternalID)
		}
	}
	return out
}

// MessagesFor returns the messages associated with a call, most recent
// first. Recomputed on every query; volumes are small enough that an index
// is not worth carrying.
func MessagesFor(call CallRecord, msgs []messages.InboundMessage) []messages.InboundMessage {
	out := []messages.InboundMessage{}
	for _, msg := range msgs {
		if NumbersMatch(call.ExternalNumber, msg.ExternalID) {
			out = append(out, msg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}
