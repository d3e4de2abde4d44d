// Package postmark delivers security alert emails through the Postmark
// transactional email API.
//
// AlertSender implements the anomaly.Notifier interface: whenever a login
// anomaly is flagged it sends a short plain-text alert to the configured
// security inbox with the user, session, and country transition. Delivery
// failures are returned to the caller, which logs and drops them; alerting
// is advisory and never blocks a login.
//
// Configuration is loaded from environment variables via the Config struct.
// Both Postmark tokens are required so a misconfigured deployment fails at
// startup rather than silently dropping alerts.
package postmark
