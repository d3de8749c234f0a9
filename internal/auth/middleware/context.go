package auth

import (
	"context"
	"strings"
)

type subjectKey struct{}

// Anonymous is the subject of a request that carried no token subject.
const Anonymous = "anonymous"

// WithSubject stores the token subject, "guest|<uuid>" or "admin|<name>".
func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subjectKey{}, sub)
}

// SubjectFromContext returns the request subject, or Anonymous.
func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(subjectKey{}).(string); ok && s != "" {
		return s
	}
	return Anonymous
}

// SubjectKind is the part of sub before the first "|".
func SubjectKind(sub string) string {
	kind, _, _ := strings.Cut(sub, "|")
	return kind
}
