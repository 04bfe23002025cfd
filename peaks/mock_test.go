// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"os"
	"sync"
)

// mockHost is a scriptable Host for engine and extractor tests.
type mockHost struct {
	mtx sync.Mutex

	info     Info
	probeErr error

	hasIndex  bool
	indexSize int64
	buildErr  error

	// monoOnly makes multi-channel peak reads come back empty, forcing
	// the extractor's mono fallback.
	monoOnly bool
	// empty makes every peak read come back empty.
	empty bool

	amplitude float32

	probes  int
	builds  int
	removes int
	reads   int

	lastPeakRate int
	lastChannels int
	lastSamples  int
	lastStart    float64
}

func newMockHost(info Info, amplitude float32) *mockHost {
	return &mockHost{
		info:      info,
		hasIndex:  true,
		indexSize: 4096,
		amplitude: amplitude,
	}
}

func (m *mockHost) Probe(path string) (Info, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.probes++
	if m.probeErr != nil {
		return Info{}, m.probeErr
	}
	return m.info, nil
}

func (m *mockHost) IndexSize(path string) (int64, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if !m.hasIndex {
		return 0, os.ErrNotExist
	}
	return m.indexSize, nil
}

func (m *mockHost) RemoveIndex(path string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.removes++
	m.hasIndex = false
	return nil
}

func (m *mockHost) BuildIndex(path string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.builds++
	if m.buildErr != nil {
		return m.buildErr
	}
	m.hasIndex = true
	m.indexSize = 4096
	return nil
}

func (m *mockHost) ReadPeaks(path string, peakRate int, start float64, channels, samples int) (Block, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.reads++
	m.lastPeakRate = peakRate
	m.lastChannels = channels
	m.lastSamples = samples
	m.lastStart = start

	if m.empty {
		return Block{}, nil
	}
	if m.monoOnly && channels > 1 {
		return Block{}, nil
	}

	return makeBlock(samples, channels, m.amplitude), nil
}

// makeBlock builds a block-structured result with max=+amp, min=-amp
// for every sample on every channel.
func makeBlock(samples, channels int, amp float32) Block {
	data := make([]float32, 2*samples*channels)
	for s := 0; s < samples; s++ {
		for ch := 0; ch < channels; ch++ {
			data[s*channels+ch] = amp
			data[samples*channels+s*channels+ch] = -amp
		}
	}
	return Block{Samples: samples, Channels: channels, Data: data}
}
