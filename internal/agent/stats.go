// ABOUTME: Session statistics folded from the event stream by the consumer
// ABOUTME: Usage events add token deltas; Done events count completed requests

package agent

// SessionStats accumulates token usage and request counts for a session.
// It is a pure fold over events in emission order: the loop never touches
// it, only whoever consumes the event channel.
type SessionStats struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
	RequestCount int   `json:"request_count"`
}

// Apply folds one event into the stats.
func (s *SessionStats) Apply(evt AgentEvent) {
	switch evt.Type {
	case EventUsage:
		if evt.Usage != nil {
			s.InputTokens += evt.Usage.InputTokens
			s.OutputTokens += evt.Usage.OutputTokens
		}
	case EventDone:
		s.RequestCount++
	}
}

// TotalTokens returns the combined input and output token count.
func (s *SessionStats) TotalTokens() int64 {
	return s.InputTokens + s.OutputTokens
}
