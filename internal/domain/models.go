package domain

import "time"

type Verdict struct {
	Domain     string    `json:"domain"`
	Live       bool      `json:"live"`
	URL        string    `json:"url,omitempty"`  // succeeding candidate; empty when dead
	Host       string    `json:"host,omitempty"` // what the live sink records
	HTTPStatus int       `json:"http_status,omitempty"`
	LatencyMS  float64   `json:"latency_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

// LiveVerdict builds the verdict for a domain whose candidate url answered 2xx.
func LiveVerdict(domain, url string, status int, latencyMS float64) Verdict {
	return Verdict{
		Domain:     domain,
		Live:       true,
		URL:        url,
		Host:       ExtractHost(url),
		HTTPStatus: status,
		LatencyMS:  latencyMS,
		CheckedAt:  time.Now().UTC(),
	}
}

func DeadVerdict(domain string, latencyMS float64) Verdict {
	return Verdict{
		Domain:    domain,
		LatencyMS: latencyMS,
		CheckedAt: time.Now().UTC(),
	}
}

// SinkText is the line written for this verdict: the bare host when live,
// the input domain when dead.
func (v Verdict) SinkText() string {
	if v.Live {
		return v.Host
	}
	return v.Domain
}
