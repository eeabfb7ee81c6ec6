package utils

type Metric struct {
	DatabaseRead  chan float64
	DatabaseWrite chan float64
	// latency of one full aggregation pass in microseconds
	Aggregation chan float64
	// occurrences produced by one aggregation pass
	OccurrenceCount chan float64
}

func NewMetric() *Metric {
	return &Metric{
		DatabaseRead:    make(chan float64),
		DatabaseWrite:   make(chan float64),
		Aggregation:     make(chan float64),
		OccurrenceCount: make(chan float64),
	}
}
