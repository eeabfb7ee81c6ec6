package metric

import (
	"log/slog"
	"time"
	"zlot/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zlot_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register zlot_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("zlot_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("zlot_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("zlot_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func chanFedGauge(as *utils.AppState, name string, help string, samples chan float64, clearTickerInterval *time.Duration) {
	gauge := promauto.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
	good := true
	if err := prometheus.Register(gauge); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register metric", "name", name, "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("metric registered", "name", name)
		gauge.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(gauge) {
				case true:
					slog.Debug("metric unregistered", "name", name)
				case false:
					slog.Warn("metric not registered", "name", name)
				}
				return
			case sample := <-samples:
				gauge.Set(sample)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				gauge.Set(0)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, &tickerInterval)
	chanFedGauge(as,
		"zlot_database_read_microsec",
		"The latency of a database read in microseconds",
		as.MetricChans.DatabaseRead, &clearTickerInterval)
	chanFedGauge(as,
		"zlot_database_write_microsec",
		"The latency of a database write in microseconds",
		as.MetricChans.DatabaseWrite, &clearTickerInterval)
	chanFedGauge(as,
		"zlot_aggregation_microsec",
		"The latency of one occurrence aggregation pass in microseconds",
		as.MetricChans.Aggregation, &clearTickerInterval)
	chanFedGauge(as,
		"zlot_occurrence_count",
		"Occurrences produced by the last aggregation pass",
		as.MetricChans.OccurrenceCount, &clearTickerInterval)
}
