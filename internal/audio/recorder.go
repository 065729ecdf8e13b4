package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// ringCapacity holds roughly two seconds of mono audio at 16kHz, more
// than any waveform view reads at once.
const ringCapacity = 32_768

// Config holds configuration for one recording session.
type Config struct {
	SampleRate int    // Sample rate in Hz (e.g., 16000)
	Channels   int    // Number of channels (1 for mono)
	OutputPath string // Final MP3 output path
}

// Recorder captures one dictation session: it owns the capture device,
// tees PCM packets into a ring buffer for visualization, and streams
// them through the MP3 encoder into the output file. A Recorder is
// single-use; create a new one per session.
type Recorder struct {
	dev  Device
	cfg  Config
	ring *SampleRingBuffer

	dataC    chan DataPacket
	encC     chan []byte
	file     *os.File
	encoder  *StreamingEncoder
	pumpDone chan struct{}

	bytesWritten atomic.Int64
	startedAt    time.Time
	started      bool
	finished     bool
}

// NewRecorder creates a recorder for one session.
func NewRecorder(dev Device, cfg Config) (*Recorder, error) {
	if dev == nil {
		return nil, errors.New("device cannot be nil")
	}

	if cfg.SampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}

	if cfg.Channels <= 0 {
		return nil, errors.New("channels must be positive")
	}

	if cfg.OutputPath == "" {
		return nil, errors.New("output path cannot be empty")
	}

	return &Recorder{ //nolint:exhaustruct // session fields initialized on Start()
		dev:  dev,
		cfg:  cfg,
		ring: NewSampleRingBuffer(ringCapacity),
	}, nil
}

// Start allocates the device and begins capturing into the output file.
func (r *Recorder) Start(ctx context.Context) error {
	if r.started {
		return errors.New("recorder already started")
	}

	if err := os.MkdirAll(filepath.Dir(r.cfg.OutputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create recording directory: %w", err)
	}

	file, err := os.Create(r.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create recording file %s: %w", r.cfg.OutputPath, err)
	}

	r.encC = make(chan []byte, 64)

	encoder, err := NewStreamingEncoder(EncoderConfig{
		SampleRate: r.cfg.SampleRate,
		Channels:   r.cfg.Channels,
	}.WithDefaults(), r.encC, file)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to create MP3 encoder: %w", err)
	}

	if err := encoder.Start(ctx); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to start MP3 encoder: %w", err)
	}

	r.dataC = make(chan DataPacket, 64)

	if err := r.dev.CaptureInto(ctx, r.dataC); err != nil {
		close(r.encC)
		_ = file.Close()
		return fmt.Errorf("failed to allocate capture device: %w", err)
	}

	if err := r.dev.Start(ctx); err != nil {
		r.dev.Dealloc(ctx)
		close(r.encC)
		_ = file.Close()
		return fmt.Errorf("failed to start capture device: %w", err)
	}

	r.file = file
	r.encoder = encoder
	r.startedAt = time.Now()
	r.started = true
	r.pumpDone = make(chan struct{})

	go r.pump()

	slog.Debug("recording started", "output", r.cfg.OutputPath)

	return nil
}

// pump tees device packets into the ring buffer and the encoder until
// the data channel closes.
func (r *Recorder) pump() {
	defer close(r.pumpDone)
	defer close(r.encC)

	for data := range r.dataC {
		r.ring.Write(BytesToInt16(data))
		r.bytesWritten.Add(int64(len(data)))
		r.encC <- data
	}
}

// Stop ends the session, flushes the encoder, and returns the finished
// recording's path.
func (r *Recorder) Stop(ctx context.Context) (string, error) {
	if err := r.teardown(ctx); err != nil {
		return "", err
	}

	slog.Debug("recording finished",
		"output", r.cfg.OutputPath,
		"pcmBytes", r.bytesWritten.Load(),
		"duration", time.Since(r.startedAt),
	)

	return r.cfg.OutputPath, nil
}

// Cancel ends the session and removes the partial recording file.
func (r *Recorder) Cancel(ctx context.Context) error {
	teardownErr := r.teardown(ctx)

	if err := os.Remove(r.cfg.OutputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to remove cancelled recording", "path", r.cfg.OutputPath, "error", err)
	}

	return teardownErr
}

func (r *Recorder) teardown(ctx context.Context) error {
	if !r.started {
		return errors.New("recorder not started")
	}

	if r.finished {
		return errors.New("recorder already finished")
	}

	r.finished = true

	// The device must stop before dataC closes; the capture callback
	// writes into it from the audio thread.
	stopErr := r.dev.Stop(ctx)

	r.dev.Dealloc(ctx)
	close(r.dataC)
	<-r.pumpDone

	encErr := r.encoder.Wait()
	closeErr := r.file.Close()

	return errors.Join(stopErr, encErr, closeErr)
}

// ReadSamples returns up to n of the most recent captured samples.
func (r *Recorder) ReadSamples(n int) []int16 {
	return r.ring.ReadSamples(n)
}

// BytesWritten returns the raw PCM byte count captured so far.
func (r *Recorder) BytesWritten() int64 {
	return r.bytesWritten.Load()
}

// StartedAt returns when the session began capturing.
func (r *Recorder) StartedAt() time.Time {
	return r.startedAt
}

// IsCapturing reports whether the device is actively capturing.
func (r *Recorder) IsCapturing() bool {
	return r.started && !r.finished && r.dev.IsStarted()
}
