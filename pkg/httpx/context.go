package httpx

import "context"

type ctxKey string

const ctxKeySubject ctxKey = "subject"

// WithSubject records the authenticated subject for per-subject rate limits.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ctxKeySubject, subject)
}

// SubjectFromContext returns the subject set by WithSubject, if any.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKeySubject).(string)
	return s
}
