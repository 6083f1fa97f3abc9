package events

import "github.com/atomicstack/pokedex/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

var (
	UI     = UITracer{}
	Filter = FilterTracer{}
)

func (UITracer) Key(screen, key string) {
	logging.Trace("ui.key", map[string]interface{}{"screen": screen, "key": key})
}

func (UITracer) Cursor(row int) {
	logging.Trace("ui.cursor", map[string]interface{}{"row": row})
}

func (UITracer) NearEnd(row, total int) {
	logging.Trace("ui.near-end", map[string]interface{}{"row": row, "total": total})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (FilterTracer) Open() {
	logging.Trace("filter.open", nil)
}

func (FilterTracer) Submit(query string) {
	logging.Trace("filter.submit", map[string]interface{}{"query": query})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}
