package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	Runs              uint64            `json:"runs"`
	ListingsVisited   uint64            `json:"listings_visited"`
	ProfilesHarvested uint64            `json:"profiles_harvested"`
	ProfilesSaved     uint64            `json:"profiles_saved"`
	AICalls           uint64            `json:"ai_calls"`
	ErrorsTotal       uint64            `json:"errors_total"`
	RunSecondsAvg     float64           `json:"run_seconds_avg"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	listingsVisited   uint64
	profilesHarvested uint64
	profilesSaved     uint64
	aiCalls           uint64
	errorsTotal       uint64

	runCount uint64
	runNanos uint64

	statsMu           sync.Mutex
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncListingVisited() {
	atomic.AddUint64(&listingsVisited, 1)
}

func AddProfilesHarvested(n int) {
	if n <= 0 {
		return
	}
	atomic.AddUint64(&profilesHarvested, uint64(n))
}

func IncProfileSaved() {
	atomic.AddUint64(&profilesSaved, 1)
}

func IncAICall(_ string) {
	atomic.AddUint64(&aiCalls, 1)
}

func ObserveRunDuration(seconds float64) {
	atomic.AddUint64(&runCount, 1)
	if seconds <= 0 {
		return
	}
	atomic.AddUint64(&runNanos, uint64(seconds*1e9))
}

func IncError(errType, component string) {
	if errType == "" {
		errType = ErrorUnknown
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	count := atomic.LoadUint64(&runCount)
	avg := 0.0
	if count > 0 {
		avg = float64(atomic.LoadUint64(&runNanos)) / float64(count) / 1e9
	}

	return StatsSnapshot{
		Runs:              count,
		ListingsVisited:   atomic.LoadUint64(&listingsVisited),
		ProfilesHarvested: atomic.LoadUint64(&profilesHarvested),
		ProfilesSaved:     atomic.LoadUint64(&profilesSaved),
		AICalls:           atomic.LoadUint64(&aiCalls),
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		RunSecondsAvg:     avg,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
