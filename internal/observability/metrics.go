package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "directory",
		Name:      "users_created_total",
		Help:      "Number of users registered since process start.",
	})
	exercisesAppendedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "log",
		Name:      "exercises_appended_total",
		Help:      "Number of exercise entries appended since process start.",
	})
	exerciseAppendGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exercise_tracker",
		Subsystem: "log",
		Name:      "last_exercise_appended_timestamp_seconds",
		Help:      "Unix timestamp of the most recent exercise append.",
	})
)

func init() {
	prometheus.MustRegister(usersCreatedCounter, exercisesAppendedCounter, exerciseAppendGauge)
}

// RecordUserCreated increments the registration counter.
func RecordUserCreated() {
	usersCreatedCounter.Inc()
}

// RecordExerciseAppended updates the append counter and watermark gauge.
func RecordExerciseAppended(ts time.Time) {
	exercisesAppendedCounter.Inc()
	if ts.IsZero() {
		return
	}
	exerciseAppendGauge.Set(float64(ts.Unix()))
}
