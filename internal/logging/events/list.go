package events

import "github.com/atomicstack/pokedex/internal/logging"

type ListTracer struct{}

type NavTracer struct{}

type DetailTracer struct{}

type skipReason string

const (
	SkipLoading    skipReason = "loading"
	SkipExhausted  skipReason = "exhausted"
	SkipNotEmpty   skipReason = "not-empty"
	SkipNoFailure  skipReason = "no-failure"
	SkipUnknownRow skipReason = "unknown-row"
)

var (
	List   = ListTracer{}
	Nav    = NavTracer{}
	Detail = DetailTracer{}
)

func (ListTracer) Fetch(purpose, requestID string, start, count int) {
	logging.Trace("list.fetch", map[string]interface{}{
		"purpose": purpose,
		"request": requestID,
		"start":   start,
		"count":   count,
	})
}

func (ListTracer) Skip(action string, reason skipReason) {
	logging.Trace("list.skip", map[string]interface{}{"action": action, "reason": string(reason)})
}

func (ListTracer) Page(purpose string, received, appended, cursor int, canLoadMore bool) {
	logging.Trace("list.page", map[string]interface{}{
		"purpose":     purpose,
		"received":    received,
		"appended":    appended,
		"cursor":      cursor,
		"canLoadMore": canLoadMore,
	})
}

func (ListTracer) Duplicate(id int) {
	logging.Trace("list.duplicate", map[string]interface{}{"id": id})
}

func (ListTracer) Stale(purpose, requestID string) {
	logging.Trace("list.stale", map[string]interface{}{"purpose": purpose, "request": requestID})
}

func (ListTracer) Failure(purpose string, err error) {
	payload := map[string]interface{}{"purpose": purpose}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("list.failure", payload)
}

func (ListTracer) Filter(query string, visible int) {
	logging.Trace("list.filter", map[string]interface{}{"query": query, "visible": visible})
}

func (NavTracer) Push(frame int, kind string, depth int) {
	logging.Trace("nav.push", map[string]interface{}{"frame": frame, "kind": kind, "depth": depth})
}

func (NavTracer) Pop(frame int, depth int) {
	logging.Trace("nav.pop", map[string]interface{}{"frame": frame, "depth": depth})
}

func (NavTracer) Orphan(frame int) {
	logging.Trace("nav.orphan", map[string]interface{}{"frame": frame})
}

func (DetailTracer) Toggle(id int, value bool) {
	logging.Trace("detail.toggle", map[string]interface{}{"id": id, "value": value})
}

func (DetailTracer) Species(id int, err error) {
	payload := map[string]interface{}{"id": id}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("detail.species", payload)
}
