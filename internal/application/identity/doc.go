// Package identity decides, once per navigation, which persona controls a
// browsing session and whether the requested path is allowed for it.
//
// The pipeline is SignalReader -> Resolve -> RouteClassifier -> Decide,
// folded into a single edge-time call by Gate. Resolve and Decide are pure;
// only the shopper-session lookup inside SignalReader may block.
package identity
