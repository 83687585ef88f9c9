// Package audio covers both ends of the sound path: microphone capture via
// PulseAudio and playback through the default output device.
package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

const (
	captureSampleRate = 16000
	chunkSizeBytes    = 640 // 20ms @ 16kHz mono s16
	preRollChunks     = 10  // 200ms of audio kept before speech onset
	silenceHangover   = 40  // 800ms of quiet ends the phrase
)

// speechThreshold is the RMS amplitude above which a chunk counts as speech.
const speechThreshold = 500.0

// Listener captures one spoken phrase per call. A nil buffer with a nil
// error means nothing was said before the listen window closed.
type Listener interface {
	Listen(ctx context.Context) ([]byte, error)
}

// Microphone records phrases from a Pulse input source. Each Listen call
// opens its own record stream so a wedged server never poisons later turns.
type Microphone struct {
	device      string
	timeout     time.Duration
	phraseLimit time.Duration
}

// NewMicrophone builds a Microphone. device may be empty to use the server
// default source.
func NewMicrophone(device string, timeout, phraseLimit time.Duration) *Microphone {
	return &Microphone{device: device, timeout: timeout, phraseLimit: phraseLimit}
}

// Listen waits up to the configured timeout for speech to begin, then
// records until the phrase limit or a stretch of trailing silence, and
// returns the phrase as a WAV buffer.
func (m *Microphone) Listen(ctx context.Context) ([]byte, error) {
	client, err := pulse.NewClient(pulse.ClientApplicationName("nova"))
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	var source *pulse.Source
	if m.device != "" {
		source, err = client.SourceByID(m.device)
	} else {
		source, err = client.DefaultSource()
	}
	if err != nil {
		return nil, fmt.Errorf("resolve capture source: %w", err)
	}

	chunks := make(chan []byte, 128)
	stopCh := make(chan struct{})
	writer := pulse.NewWriter(writerFunc(func(b []byte) (int, error) {
		select {
		case <-stopCh:
			return 0, io.EOF
		default:
		}
		chunk := make([]byte, len(b))
		copy(chunk, b)
		select {
		case chunks <- chunk:
		case <-stopCh:
			return 0, io.EOF
		}
		return len(b), nil
	}), pulseproto.FormatInt16LE)

	stream, err := client.NewRecord(
		writer,
		pulse.RecordSource(source),
		pulse.RecordMono,
		pulse.RecordSampleRate(captureSampleRate),
		pulse.RecordBufferFragmentSize(chunkSizeBytes),
		pulse.RecordMediaName("nova listen"),
	)
	if err != nil {
		return nil, fmt.Errorf("create record stream: %w", err)
	}
	stream.Start()
	defer func() {
		close(stopCh)
		stream.Stop()
		stream.Close()
	}()

	pcm, err := m.gather(ctx, chunks)
	if err != nil {
		return nil, err
	}
	if len(pcm) == 0 {
		return nil, nil
	}
	return WrapPCM16(pcm, captureSampleRate, 1), nil
}

// gather applies the energy gate: pre-roll until speech, then record until
// the phrase limit or enough consecutive quiet chunks.
func (m *Microphone) gather(ctx context.Context, chunks <-chan []byte) ([]byte, error) {
	onsetDeadline := time.NewTimer(m.timeout)
	defer onsetDeadline.Stop()

	var (
		preRoll  [][]byte
		phrase   []byte
		speaking bool
		quiet    int
		limit    *time.Timer
	)
	for {
		var limitC <-chan time.Time
		if limit != nil {
			limitC = limit.C
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-onsetDeadline.C:
			if !speaking {
				slog.Debug("listen window closed without speech")
				return nil, nil
			}
		case <-limitC:
			return phrase, nil
		case chunk, ok := <-chunks:
			if !ok {
				return phrase, nil
			}
			loud := rms(chunk) >= speechThreshold
			if !speaking {
				if !loud {
					preRoll = append(preRoll, chunk)
					if len(preRoll) > preRollChunks {
						preRoll = preRoll[1:]
					}
					continue
				}
				speaking = true
				limit = time.NewTimer(m.phraseLimit)
				defer limit.Stop()
				for _, c := range preRoll {
					phrase = append(phrase, c...)
				}
			}
			phrase = append(phrase, chunk...)
			if loud {
				quiet = 0
				continue
			}
			quiet++
			if quiet >= silenceHangover {
				return phrase, nil
			}
		}
	}
}

// rms computes the root-mean-square amplitude of little-endian s16 samples.
func rms(pcm []byte) float64 {
	n := len(pcm) / 2
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		s := int16(uint16(pcm[2*i]) | uint16(pcm[2*i+1])<<8)
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(n))
}

// writerFunc adapts a function to io.Writer for pulse.NewWriter.
type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(b []byte) (int, error) {
	return f(b)
}
