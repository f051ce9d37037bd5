package scan

import (
	"context"
	"sync"
)

// DemoScanner replays scripted scan batches. It backs --scan.backend=demo
// and the tests. Once the script is exhausted the last batch repeats.
type DemoScanner struct {
	batches [][]Station
	index   int
	mutex   sync.Mutex
}

func NewDemoScanner(batches ...[]Station) *DemoScanner {
	if len(batches) == 0 {
		batches = [][]Station{
			{
				{BSSID: "02:4A:30:11:22:33", SSID: "HomeNet", Signal: 92, Frequency: 2437, Channel: 6},
				{BSSID: "02:4A:30:11:22:44", SSID: "HomeNet-5G", Signal: 88, Frequency: 5180, Channel: 36},
			},
			{
				{BSSID: "02:4A:30:11:22:33", SSID: "HomeNet", Signal: 91, Frequency: 2437, Channel: 6},
				{BSSID: "02:4A:30:11:22:44", SSID: "HomeNet-5G", Signal: 87, Frequency: 5180, Channel: 36},
				{BSSID: "6E:FF:10:AB:CD:EF", SSID: "Pixel_9431", Signal: 74, Frequency: 2412, Channel: 1},
			},
		}
	}
	return &DemoScanner{batches: batches}
}

func (this *DemoScanner) Scan(context.Context) ([]Station, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	batch := this.batches[this.index]
	if this.index < len(this.batches)-1 {
		this.index++
	}

	result := make([]Station, len(batch))
	copy(result, batch)
	return result, nil
}
