package contact

import "context"

// SpamFilter decides whether a submission should be dropped without sending anything.
// Callers must answer a flagged submission exactly as they would a delivered one.
type SpamFilter interface {
	IsSpam(ctx context.Context, s Submission) bool
}

// Honeypot flags submissions whose hidden form field was filled in.
// Real visitors never see the field; form-filling bots usually populate it.
type Honeypot struct{}

func (Honeypot) IsSpam(_ context.Context, s Submission) bool {
	return s.Honeypot != ""
}

// SpamFilterFunc adapts a plain function to SpamFilter.
type SpamFilterFunc func(ctx context.Context, s Submission) bool

func (f SpamFilterFunc) IsSpam(ctx context.Context, s Submission) bool {
	return f(ctx, s)
}
