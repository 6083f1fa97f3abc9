package events

import (
	"time"

	"github.com/atomicstack/pokedex/internal/logging"
)

type ClientTracer struct{}

var Client = ClientTracer{}

func (ClientTracer) Request(url string) {
	logging.Trace("client.request", map[string]interface{}{"url": url})
}

func (ClientTracer) Response(url string, status int, elapsed time.Duration) {
	logging.Trace("client.response", map[string]interface{}{
		"url":     url,
		"status":  status,
		"elapsed": elapsed.String(),
	})
}

func (ClientTracer) Error(url string, err error) {
	if err == nil {
		return
	}
	logging.Trace("client.error", map[string]interface{}{"url": url, "error": err.Error()})
}
