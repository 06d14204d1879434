package utils

import "time"

type Metric struct {
	DiscordSendMessage chan float64
}

func NewMetric() *Metric {
	return &Metric{
		DiscordSendMessage: make(chan float64, 16),
	}
}

// ReportDiscordSend never blocks; readings are dropped while no collector
// is draining the channel.
func (m *Metric) ReportDiscordSend(latency time.Duration) {
	select {
	case m.DiscordSendMessage <- float64(latency.Microseconds()):
	default:
	}
}
