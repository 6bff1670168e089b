package config

import (
	"github.com/spf13/pflag"
)

// Flags 命令行参数，非零值覆盖配置文件
type Flags struct {
	ConfigPath string
	Token      string
	Server     string
	Shard      string
	Room       string
	Verbosity  int
	DryRun     bool
	Help       bool
}

// NewFlagSet 注册所有命令行参数
func NewFlagSet(name string, f *Flags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "配置文件路径 (默认 ~/.room-viewer/config.yaml)")
	fs.StringVarP(&f.Token, "token", "t", "", "认证令牌")
	fs.StringVarP(&f.Server, "server", "u", "", "服务器 API 地址 (默认 "+DefaultServer+")")
	fs.StringVarP(&f.Shard, "shard", "s", "", "分片名，官方服务器必须指定")
	fs.StringVarP(&f.Room, "room", "r", "", "要观察的房间，例如 W1N1")
	fs.CountVarP(&f.Verbosity, "verbose", "v", "提高日志级别，可重复")
	fs.BoolVarP(&f.DryRun, "dry-run", "d", false, "不启动界面，只记录日志")
	fs.BoolVarP(&f.Help, "help", "h", false, "显示帮助")
	return fs
}

// ParseFlags 解析 args（不含程序名）
func ParseFlags(name string, args []string) (*Flags, *pflag.FlagSet, error) {
	var f Flags
	fs := NewFlagSet(name, &f)
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return &f, fs, nil
}

// Apply 用命令行参数覆盖配置
func (f *Flags) Apply(cfg *Config) {
	if f.Token != "" {
		cfg.Token = f.Token
	}
	if f.Server != "" {
		cfg.Server = f.Server
	}
	if f.Shard != "" {
		cfg.Shard = f.Shard
	}
	if f.Room != "" {
		cfg.Room = f.Room
	}
	if f.Verbosity > cfg.Log.Verbosity {
		cfg.Log.Verbosity = f.Verbosity
	}
	if f.DryRun {
		cfg.DryRun = true
	}
}
