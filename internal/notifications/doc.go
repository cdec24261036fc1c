// Package notifications publishes run outcomes to an ntfy topic.
//
// NewService returns a no-op implementation when no topic is configured, so
// callers never need to nil-check. Completion and failure messages can be
// toggled independently in the [notifications] config section.
package notifications
