package events

import "github.com/atomicstack/pokedex/internal/logging"

type StoreTracer struct{}

type EffectTracer struct{}

var (
	Store  = StoreTracer{}
	Effect = EffectTracer{}
)

func (StoreTracer) Apply(action string, effects []string) {
	payload := map[string]interface{}{"action": action}
	if len(effects) > 0 {
		payload["effects"] = effects
	}
	logging.Trace("store.apply", payload)
}

func (StoreTracer) Queued(action string) {
	logging.Trace("store.queued", map[string]interface{}{"action": action})
}

func (StoreTracer) Dropped(action string) {
	logging.Trace("store.dropped", map[string]interface{}{"action": action})
}

func (StoreTracer) Closed() {
	logging.Trace("store.closed", nil)
}

func (EffectTracer) Queue(name string) {
	logging.Trace("effect.queue", map[string]interface{}{"name": name})
}

func (EffectTracer) Result(name, action string) {
	logging.Trace("effect.result", map[string]interface{}{"name": name, "action": action})
}

func (EffectTracer) Cancelled(name string) {
	logging.Trace("effect.cancelled", map[string]interface{}{"name": name})
}
