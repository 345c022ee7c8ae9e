package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Device is the output backend the engine drives
// Play attaches the root streamer; the device pulls from it on its own goroutine
// while Lock/Unlock exclude that goroutine from concurrent state changes
type Device interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close() error
}

// speaker is process-global in beep; only one device may hold it
var speakerInUse atomic.Bool

// speakerDevice outputs through beep's speaker package
type speakerDevice struct {
	held bool
}

// NewSpeakerDevice returns a Device backed by the system audio output
func NewSpeakerDevice() Device {
	return &speakerDevice{}
}

func (d *speakerDevice) Init(sr beep.SampleRate, bufferSize int) error {
	if d.held {
		return nil
	}
	if !speakerInUse.CompareAndSwap(false, true) {
		return ErrDeviceBusy
	}
	if err := speaker.Init(sr, bufferSize); err != nil {
		speakerInUse.Store(false)
		return fmt.Errorf("speaker init: %w", err)
	}
	d.held = true
	return nil
}

func (d *speakerDevice) Play(s beep.Streamer) { speaker.Play(s) }
func (d *speakerDevice) Lock()                { speaker.Lock() }
func (d *speakerDevice) Unlock()              { speaker.Unlock() }

func (d *speakerDevice) Close() error {
	if !d.held {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	d.held = false
	speakerInUse.Store(false)
	return nil
}

// silentDevice consumes samples in real time and discards them
// Used when audio output is disabled so playback timing still advances
type silentDevice struct {
	mu       sync.Mutex
	streamer beep.Streamer
	buf      [][2]float64
	interval time.Duration

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewSilentDevice returns a Device that never touches audio hardware
func NewSilentDevice() Device {
	return &silentDevice{}
}

func (d *silentDevice) Init(sr beep.SampleRate, bufferSize int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stop != nil {
		return nil
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	d.buf = make([][2]float64, bufferSize)
	d.interval = sr.D(bufferSize)
	if d.interval <= 0 {
		d.interval = time.Millisecond
	}
	d.stop = make(chan struct{})

	d.wg.Add(1)
	go d.run(d.stop)
	return nil
}

func (d *silentDevice) run(stop <-chan struct{}) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.mu.Lock()
			if d.streamer != nil {
				d.streamer.Stream(d.buf)
			}
			d.mu.Unlock()
		}
	}
}

func (d *silentDevice) Play(s beep.Streamer) {
	d.mu.Lock()
	d.streamer = s
	d.mu.Unlock()
}

func (d *silentDevice) Lock()   { d.mu.Lock() }
func (d *silentDevice) Unlock() { d.mu.Unlock() }

func (d *silentDevice) Close() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.streamer = nil
	d.mu.Unlock()

	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	return nil
}
