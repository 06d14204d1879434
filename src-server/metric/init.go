package metric

import (
	"log/slog"
	"time"

	"neneka/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
)

// gauge registers a gauge and keeps it updated by tick until graceful shutdown,
// then unregisters it.
func gauge(as *utils.AppState, opts prometheus.GaugeOpts, interval time.Duration, tick func(g prometheus.Gauge)) {
	g := prometheus.NewGauge(opts)
	if err := prometheus.Register(g); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			slog.Error("can't register metric", "metric", opts.Name, "error", err)
			return
		}
		g = are.ExistingCollector.(prometheus.Gauge)
	}
	slog.Debug("metric registered", "metric", opts.Name)
	g.Set(0)

	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				if prometheus.Unregister(g) {
					slog.Debug("metric unregistered", "metric", opts.Name)
				} else {
					slog.Warn("metric not registered", "metric", opts.Name)
				}
				return
			case <-ticker.C:
				tick(g)
			}
		}
	}()
}

func databaseEmptyRead(as *utils.AppState, interval time.Duration) {
	gauge(as, prometheus.GaugeOpts{
		Name: "neneka_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	}, interval, func(g prometheus.Gauge) {
		latency, err := database(as)
		if err != nil {
			slog.Error("can't get database latency", "error", err)
			return
		}
		g.Set(float64(latency.Microseconds()))
	})
}

func discordHeartbeatLatency(as *utils.AppState, interval time.Duration) {
	gauge(as, prometheus.GaugeOpts{
		Name: "neneka_discord_heartbeat_latency_microsec",
		Help: "The latency of a discord heartbeat in microseconds",
	}, interval, func(g prometheus.Gauge) {
		g.Set(float64(as.DgSession.HeartbeatLatency().Microseconds()))
	})
}

// discordSendMessage shows the latest send latency and drops back to 0 when
// nothing has been sent for clearInterval.
func discordSendMessage(as *utils.AppState, clearInterval time.Duration) {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "neneka_discord_send_message_microsec",
		Help: "The latency of a discord message send in microseconds",
	})
	if err := prometheus.Register(g); err != nil {
		slog.Error("can't register neneka_discord_send_message_microsec metric", "error", err)
		return
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(clearInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				prometheus.Unregister(g)
				return
			case latency := <-as.MetricChans.DiscordSendMessage:
				g.Set(latency)
				clearTicker.Reset(clearInterval)
			case <-clearTicker.C:
				g.Set(0)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	interval := as.Config.GetMetricCollectionInterval()

	databaseEmptyRead(as, interval)
	discordHeartbeatLatency(as, interval)
	discordSendMessage(as, interval*2)
}
