// Package remote defines the collaborator interface slackfs consumes from the
// remote collection store, and a Slack Web API implementation of it.
//
// The interface is deliberately narrow: list collections, list the items of one
// collection, download an item's content and upload a new item. Pagination is
// bounded by the caller-supplied page limit and never followed beyond the first
// page. Every transport, HTTP or API-level failure is reported as an error that
// wraps ErrTransport, so callers only need a single errors.Is check.
package remote
