// Package webhookprobe exposes webhook.Prober over HTTP: POST a webhook
// configuration, get back {ok, error}.
package webhookprobe
