// Package anomaly flags geographically anomalous logins for manual review.
//
// The heuristic is deliberately coarse: a transition is suspicious if and
// only if both locations are known and their country codes differ. No
// distance or velocity math is performed, and missing data on either side is
// never flagged, which keeps lookup failures from producing false positives.
//
// Flags are advisory. Recording a review disposition is the only state change
// a flag ever causes; no account is banned, locked, or logged out
// automatically. Surfaced to administrators as "no auto-banning".
package anomaly
