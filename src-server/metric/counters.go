package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neneka_task_runs_total",
		Help: "Scheduled task runs by task and result",
	}, []string{"task", "result"})

	Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "neneka_deliveries_total",
		Help: "Messages sent by the schedulers, by task and result",
	}, []string{"task", "result"})

	EventsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neneka_events_ingested_total",
		Help: "New events stored from the announcement page",
	})
	EventsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neneka_events_rejected_total",
		Help: "Announcement lines that failed to parse",
	})
	EventsCleaned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neneka_events_cleaned_total",
		Help: "Expired events removed",
	})

	RemindersDrained = promauto.NewCounter(prometheus.CounterOpts{
		Name: "neneka_reminders_drained_total",
		Help: "Due reminders taken out of storage for delivery",
	})
)
