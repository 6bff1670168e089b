//go:build !ci

package sound

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const sampleRate = beep.SampleRate(44100)

// Player 预加载声音文件并在需要时播放
type Player struct {
	dir     string
	buffers map[Cue]*beep.Buffer
	enabled bool
}

// NewPlayer 创建播放器，dir 为声音文件目录
func NewPlayer(dir string) *Player {
	return &Player{
		dir:     dir,
		buffers: make(map[Cue]*beep.Buffer),
	}
}

// Init 初始化扬声器并加载声音文件
func (p *Player) Init() error {
	// 较小的缓冲区降低延迟
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	p.enabled = true
	return p.loadDir()
}

// loadDir 加载目录中的所有声音文件，目录不存在时不加载
func (p *Player) loadDir() error {
	files, err := os.ReadDir(p.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read sound directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}

		buffer, err := loadFile(filepath.Join(p.dir, name), ext)
		if err != nil {
			slog.Warn("加载提示音失败", "file", name, "error", err)
			continue
		}
		p.buffers[Cue(strings.TrimSuffix(name, filepath.Ext(name)))] = buffer
	}
	return nil
}

// loadFile 解码一个声音文件并统一为双声道 44.1kHz
func loadFile(path, ext string) (*beep.Buffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported sound format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	var resampled beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		resampled = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{
		SampleRate:  sampleRate,
		NumChannels: 2,
		Precision:   4,
	})
	buffer.Append(resampled)
	return buffer, nil
}

// Has 是否加载了 cue
func (p *Player) Has(cue Cue) bool {
	_, ok := p.buffers[cue]
	return ok
}

// Play 播放 cue，未初始化或没有对应文件时静默忽略
func (p *Player) Play(cue Cue) {
	if !p.enabled {
		return
	}
	buffer, ok := p.buffers[cue]
	if !ok {
		return
	}
	speaker.Play(buffer.Streamer(0, buffer.Len()))
}

// Close 停止播放
func (p *Player) Close() {
	if p.enabled {
		speaker.Clear()
	}
	p.enabled = false
}
