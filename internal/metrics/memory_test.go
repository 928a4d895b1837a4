package metrics

import "testing"

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	snap := NewMemoryCollector().Snapshot()
	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Mallocs == 0 {
		t.Error("Mallocs should be > 0")
	}
}

var sink []byte

func TestMemoryCollector_Since(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	before := mc.Snapshot()
	sink = make([]byte, 1024*1024)
	delta := mc.Snapshot().Since(before)

	if delta.TotalAlloc < 1024*1024 {
		t.Errorf("TotalAlloc delta = %d, want at least 1 MiB", delta.TotalAlloc)
	}
	if delta.Mallocs == 0 {
		t.Error("Mallocs delta should be > 0")
	}
}
