package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redis/go-redis/v9"

	"github.com/palemoky/room-viewer/internal/config"
	"github.com/palemoky/room-viewer/internal/logger"
	"github.com/palemoky/room-viewer/internal/network/api"
	"github.com/palemoky/room-viewer/internal/network/session"
	"github.com/palemoky/room-viewer/internal/network/transport"
	"github.com/palemoky/room-viewer/internal/sound"
	"github.com/palemoky/room-viewer/internal/storage"
	"github.com/palemoky/room-viewer/internal/ui"
	"github.com/palemoky/room-viewer/internal/ui/model"
	"github.com/palemoky/room-viewer/internal/ui/update"
)

const (
	exitOK      = 0
	exitFatal   = 1
	exitUsage   = 2
	programName = "srv"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, fs, err := config.ParseFlags(programName, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	if flags.Help {
		fmt.Fprintf(os.Stderr, "用法: %s [选项]\n\n", programName)
		fs.PrintDefaults()
		return exitOK
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return exitUsage
	}

	if err := logger.Init(logger.Options{Path: cfg.Log.Path, Verbosity: cfg.Log.Verbosity}); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		return exitFatal
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiClient, err := api.NewClient(cfg.Server, cfg.Token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "服务器地址无效: %v\n", err)
		return exitUsage
	}

	// Validate 已经检查过房间名和叠放顺序
	name, _ := cfg.RoomName()
	order, _ := cfg.RankOrder()
	sessCfg := session.Config{Shard: cfg.Shard, Room: name, RankOrder: order}
	deps := session.Deps{
		API:     apiClient,
		Terrain: newTerrainSource(ctx, cfg, apiClient),
		Dialer:  transport.NewWebsocketDialer(),
	}

	slog.Info("🚀 启动", "server", cfg.Server, "shard", cfg.Shard, "room", cfg.Room, "dry_run", cfg.DryRun)

	if cfg.DryRun {
		return runDry(ctx, sessCfg, deps)
	}
	return runUI(ctx, cfg, sessCfg, deps)
}

// loadConfig 读取配置文件并用命令行参数覆盖；显式指定的文件必须存在
func loadConfig(flags *config.Flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if flags.ConfigPath != "" {
		cfg, err = config.Load(flags.ConfigPath)
	} else {
		path, pathErr := config.DefaultPath()
		if pathErr != nil {
			cfg = config.Default()
		} else {
			cfg, err = config.LoadOrDefault(path)
		}
	}
	if err != nil {
		return nil, err
	}

	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newTerrainSource 按配置选择地形缓存，Redis 不可用时退回内存缓存
func newTerrainSource(ctx context.Context, cfg *config.Config, client *api.Client) session.TerrainSource {
	var store storage.TerrainStore
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return client
	case config.CacheRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		rs := storage.NewRedisStore(rdb, cfg.Cache.TTLDuration())
		if err := rs.Ping(ctx); err != nil {
			slog.Warn("⚠️ Redis 不可用，使用内存缓存", "addr", cfg.Cache.RedisAddr, "error", err)
			_ = rdb.Close()
			store = storage.NewMemoryStore()
		} else {
			slog.Info("✅ 已连接 Redis 地形缓存", "addr", cfg.Cache.RedisAddr)
			store = rs
		}
	default:
		store = storage.NewMemoryStore()
	}
	return storage.NewCachedTerrain(client, store, client.URL().String())
}

// runDry 不启动界面，更新只写日志
func runDry(ctx context.Context, cfg session.Config, deps session.Deps) int {
	dispatcher := ui.NewLogDispatcher(nil)
	deps.UI = dispatcher

	if err := runSession(ctx, session.New(cfg, deps)); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return exitFatal
	}
	return exitOK
}

func runUI(ctx context.Context, cfg *config.Config, sessCfg session.Config, deps session.Deps) int {
	var player model.SoundPlayer
	if cfg.Sound.Enabled {
		if p := newSoundPlayer(cfg.Sound.Dir); p != nil {
			defer p.Close()
			player = p
		}
	}

	m := model.New(player)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	deps.UI = ui.NewDispatcher(program)

	stopTee := logger.Tee(func(line string) {
		program.Send(update.ConsoleMsg{Line: line})
	})
	defer stopTee()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := session.New(sessCfg, deps)
	sessErr := make(chan error, 1)
	go func() {
		sessErr <- runSession(ctx, s)
	}()

	go func() {
		// 收到信号时同时关闭界面
		<-ctx.Done()
		program.Quit()
	}()

	_, runErr := program.Run()
	cancel()
	err := <-sessErr

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "界面运行出错: %v\n", runErr)
		return exitFatal
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return exitFatal
	}
	return exitOK
}

// runSession 运行会话并把 panic 记录到日志
func runSession(ctx context.Context, s *session.Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			err = fmt.Errorf("session panic: %v", r)
		}
	}()
	return s.Run(ctx)
}

func newSoundPlayer(dir string) *sound.Player {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			slog.Warn("⚠️ 无法确定声音目录", "error", err)
			return nil
		}
		dir = filepath.Join(home, ".room-viewer", "sounds")
	}
	p := sound.NewPlayer(dir)
	if err := p.Init(); err != nil {
		slog.Warn("⚠️ 初始化声音失败", "error", err)
		return nil
	}
	return p
}
