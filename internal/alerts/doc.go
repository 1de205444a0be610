// Package alerts implements the rule evaluation engine and webhook delivery
// for shiftscope alerting. Rules are evaluated against page snapshots as they
// arrive; webhooks are delivered to Slack, Teams, or generic HTTP targets.
package alerts
