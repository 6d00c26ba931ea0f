package supervisor

import "github.com/kestrelworks/kestrel/internal/adapter"

// Replay constructs a fresh supervisor from a bundle's configuration and
// feeds every archived event in order. With a runtime whose terminations
// depend only on (event id, invocation index), the returned records are
// byte-identical across replays.
func Replay(bundle *CaptureBundle, runtime adapter.RuntimeInvoker) []EpisodeInvocationRecord {
	log := NewMemoryDecisionLog()
	sup := New(bundle.GraphID, bundle.Config, log, runtime)

	for _, record := range bundle.Events {
		sup.OnEvent(record.Rehydrate())
	}

	return log.Records()
}
