package eventbus

import "sync"

// Topics emitted by the analysis domain.
const (
	TopicAnalysisCompleted = "analysis.completed"
	TopicAnalysisFailed    = "analysis.failed"
)

var (
	asyncBus *AsyncEventBus
	once     sync.Once
)

// GetAsync returns the process-wide worker-backed bus, starting it on first
// use. Bootstrap wires this instance into the analyzer and stats collector;
// tests that need isolation construct their own via NewAsyncEventBus.
func GetAsync() *AsyncEventBus {
	once.Do(func() {
		asyncBus = NewAsyncEventBus(4)
		asyncBus.Start()
	})
	return asyncBus
}

// Shutdown stops the shared bus workers. Safe to call repeatedly during
// teardown; a no-op when the shared bus was never requested.
func Shutdown() {
	if asyncBus != nil {
		asyncBus.Stop()
	}
}
