package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"go.uber.org/zap"
)

// SampleRate is the rate every sound is decoded to.
const SampleRate = 44100

// Sound is a playable audio handle. Play never blocks and never fails
// loudly; each call starts an independent playback so rapid plays overlap.
type Sound interface {
	URL() string
	Play()
}

// SoundFactory creates the handle for url. It should begin preloading.
type SoundFactory func(url string) Sound

// AudioCache memoizes one Sound per URL string. It is meant to live for the
// whole process and never evicts.
type AudioCache struct {
	mu       sync.Mutex
	sounds   map[string]Sound
	newSound SoundFactory
}

// NewAudioCache creates an empty cache using factory for new URLs.
func NewAudioCache(factory SoundFactory) *AudioCache {
	return &AudioCache{
		sounds:   make(map[string]Sound),
		newSound: factory,
	}
}

// Get returns the handle for url, creating it on first use. An empty url
// yields nil.
func (c *AudioCache) Get(url string) Sound {
	if url == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sounds[url]; ok {
		return s
	}
	s := c.newSound(url)
	c.sounds[url] = s
	return s
}

// Play looks up url and plays it. It reports whether a handle existed.
func (c *AudioCache) Play(url string) bool {
	s := c.Get(url)
	if s == nil {
		return false
	}
	s.Play()
	return true
}

// Len returns the number of cached handles.
func (c *AudioCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sounds)
}

// FuncSound is a handle that reports plays to a callback instead of an
// audio device.
type FuncSound struct {
	Ref    string
	OnPlay func(url string)
}

// URL returns the sound's source.
func (s *FuncSound) URL() string { return s.Ref }

// Play invokes the callback.
func (s *FuncSound) Play() {
	if s.OnPlay != nil {
		s.OnPlay(s.Ref)
	}
}

// FuncSoundFactory creates FuncSounds that all report to onPlay.
func FuncSoundFactory(onPlay func(url string)) SoundFactory {
	return func(url string) Sound {
		return &FuncSound{Ref: url, OnPlay: onPlay}
	}
}

// EbitenAudio creates sounds backed by Ebiten's audio context.
type EbitenAudio struct {
	ctx     context.Context
	audio   *audio.Context
	fetcher *Fetcher
	logger  *zap.Logger
}

// NewEbitenAudio returns a factory owner. Ebiten allows a single audio
// context per process, so an existing one is reused.
func NewEbitenAudio(ctx context.Context, fetcher *Fetcher, logger *zap.Logger) *EbitenAudio {
	ac := audio.CurrentContext()
	if ac == nil {
		ac = audio.NewContext(SampleRate)
	}
	return &EbitenAudio{
		ctx:     ctx,
		audio:   ac,
		fetcher: fetcher,
		logger:  logger,
	}
}

// NewSound is a SoundFactory. Loading starts immediately in the background.
func (a *EbitenAudio) NewSound(url string) Sound {
	s := &ebitenSound{
		url:   url,
		owner: a,
		ready: make(chan struct{}),
	}
	go s.preload()
	return s
}

type ebitenSound struct {
	url   string
	owner *EbitenAudio

	// ready is closed once pcm or err is set.
	ready chan struct{}
	pcm   []byte
	err   error

	mu      sync.Mutex
	players []*audio.Player
}

func (s *ebitenSound) URL() string { return s.url }

func (s *ebitenSound) preload() {
	defer close(s.ready)

	data, err := s.owner.fetcher.ReadAll(s.owner.ctx, s.url)
	if err != nil {
		s.err = err
		return
	}
	s.pcm, s.err = decodePCM(data, s.url)
	if s.err == nil {
		s.owner.logger.Debug("Sound preloaded", zap.String("url", s.url), zap.Int("bytes", len(s.pcm)))
	}
}

// Play starts a new player on the decoded PCM, waiting for preloading in the
// background if it has not finished yet.
func (s *ebitenSound) Play() {
	select {
	case <-s.ready:
		s.play()
	default:
		go func() {
			<-s.ready
			s.play()
		}()
	}
}

func (s *ebitenSound) play() {
	if s.err != nil {
		s.owner.logger.Warn("Audio play error", zap.String("url", s.url), zap.Error(s.err))
		return
	}

	p := s.owner.audio.NewPlayerFromBytes(s.pcm)
	p.Play()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Keep playing players referenced; drop the finished ones.
	live := s.players[:0]
	for _, old := range s.players {
		if old.IsPlaying() {
			live = append(live, old)
		}
	}
	s.players = append(live, p)
}

// decodePCM decodes an mp3, wav or ogg file to 16-bit stereo PCM at SampleRate.
func decodePCM(data []byte, name string) ([]byte, error) {
	var (
		stream io.Reader
		err    error
	)
	switch Ext(name) {
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	case ".ogg", ".oga":
		stream, err = vorbis.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("decode %s: unsupported audio format", name)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return pcm, nil
}
