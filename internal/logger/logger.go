// Package logger sets up the process-wide slog logger: a debug file under
// the user's home directory, optionally teed into the UI console.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

const (
	appDir      = ".room-viewer"
	logFileName = "debug.log"
	maxLogSize  = 10 * 1024 * 1024

	consoleBuffer = 256
)

var (
	debugLog *os.File
	logPath  string
)

// Options Init 的参数
type Options struct {
	// Path 日志文件路径，为空时使用 ~/.room-viewer/debug.log
	Path string
	// Verbosity 0 记录 info 及以上，1 增加 debug，2 及以上附带源码位置
	Verbosity int
}

// Level 把 -v 的次数转换为 slog 级别
func Level(verbosity int) slog.Level {
	if verbosity > 0 {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// DefaultPath 返回 ~/.room-viewer/debug.log
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDir, logFileName), nil
}

// Init 打开日志文件（超过 10MB 时轮转），并设为 slog 默认输出
func Init(opts Options) error {
	path := opts.Path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backupPath := fmt.Sprintf("%s.%d", path, time.Now().Unix())
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	debugLog = f
	logPath = path
	slog.SetDefault(slog.New(NewHandler(f, opts.Verbosity)))

	slog.Info("📝 日志已初始化", "path", logPath)
	return nil
}

// NewHandler returns the text handler used for the log file.
func NewHandler(w io.Writer, verbosity int) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     Level(verbosity),
		AddSource: verbosity > 1,
	})
}

// Close 关闭日志文件
func Close() {
	if debugLog != nil {
		_ = debugLog.Close()
	}
}

// LogPanic 记录 panic 及调用栈
func LogPanic(r any) {
	slog.Error("❌ 捕获到 panic", "panic", r, "stack", string(debug.Stack()))
}

// GetLogPath 返回当前日志文件路径
func GetLogPath() string {
	return logPath
}

// Tee makes every record handled by the default logger also reach sink as
// one formatted line. Lines are delivered in order from a single goroutine;
// when sink falls behind, lines are dropped rather than blocking the caller.
// The returned function stops the forwarder.
func Tee(sink func(line string)) (stop func()) {
	lines := make(chan string, consoleBuffer)
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case line := <-lines:
				sink(line)
			case <-done:
				return
			}
		}
	}()

	base := slog.Default().Handler()
	slog.SetDefault(slog.New(&teeHandler{next: base, lines: lines}))

	var once sync.Once
	return func() {
		once.Do(func() {
			slog.SetDefault(slog.New(base))
			close(done)
			wg.Wait()
		})
	}
}

// teeHandler forwards to next and copies enabled records to lines.
type teeHandler struct {
	next  slog.Handler
	lines chan<- string
	attrs []slog.Attr
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	select {
	case h.lines <- FormatLine(r, h.attrs):
	default:
	}
	return h.next.Handle(ctx, r)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{
		next:  h.next.WithAttrs(attrs),
		lines: h.lines,
		attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{next: h.next.WithGroup(name), lines: h.lines, attrs: h.attrs}
}

// FormatLine renders a record as "[15:04:05][INFO] message key=value".
func FormatLine(r slog.Record, attrs []slog.Attr) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s][%s] %s", r.Time.Format("15:04:05"), r.Level, r.Message)
	write := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range attrs {
		write(a)
	}
	r.Attrs(write)
	return b.String()
}
