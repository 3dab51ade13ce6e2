package auth

import "context"

type ctxKey string

const subjectKey ctxKey = "subject"

// WithSubject attaches the authenticated admin to ctx.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext returns the authenticated admin, or "" for anonymous
// calls.
func SubjectFromContext(ctx context.Context) string {
	s, _ := ctx.Value(subjectKey).(string)
	return s
}
