// Package preview serves rendered structures over HTTP for local iteration on
// views and themes.
//
// Routes:
//
//	GET  /                full page wrapping the configured structure file
//	GET  /render          fragment for the configured structure file
//	POST /render          fragment for a YAML structure posted as the body
//	GET  /views           registered view names as JSON
//	GET  /options/{type}  ?q=&limit= search of an element's option source
//	GET  /metrics         Prometheus metrics
//	GET  /healthz         liveness
//
// Posted structures have raw html sanitised and may not point view
// overrides at absolute or parent paths.
package preview
