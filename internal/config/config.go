package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/hbjs97/rv/internal/profile"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 파일 오류")

// EnvPrefix는 설정을 덮어쓰는 환경변수 접두사다.
const EnvPrefix = "RV_"

// Config는 rv 사용자 설정의 최상위 구조체다.
type Config struct {
	DataDir  string `koanf:"data_dir" toml:"data_dir,omitempty"`
	FileName string `koanf:"file_name" toml:"file_name,omitempty"`
	KeyCase  string `koanf:"key_case" toml:"key_case,omitempty"`

	Activated      Format `koanf:"activated" toml:"activated"`
	ActivatedDir   Format `koanf:"activated_dir" toml:"activated_dir"`
	Deactivated    Format `koanf:"deactivated" toml:"deactivated"`
	DeactivatedDir Format `koanf:"deactivated_dir" toml:"deactivated_dir"`
	Added          Format `koanf:"added" toml:"added"`
	Removed        Format `koanf:"removed" toml:"removed"`
	Changed        Format `koanf:"changed" toml:"changed"`
}

// Format은 출력 한 조각의 기호와 스타일이다.
type Format struct {
	Symbol string `koanf:"symbol" toml:"symbol"`
	Style  string `koanf:"style" toml:"style"`
}

// Default는 기본 설정을 반환한다.
func Default() *Config {
	return &Config{
		FileName:       profile.DefaultFileName,
		Activated:      Format{Symbol: "rv ↑ ", Style: "green bold"},
		ActivatedDir:   Format{Symbol: "", Style: "white"},
		Deactivated:    Format{Symbol: "rv ↓ ", Style: "red bold"},
		DeactivatedDir: Format{Symbol: "", Style: "white"},
		Added:          Format{Symbol: " +", Style: "green bold"},
		Removed:        Format{Symbol: " -", Style: "red bold"},
		Changed:        Format{Symbol: " ~", Style: "208 bold"},
	}
}

// DefaultPath는 기본 설정 파일 경로(~/.config/rv/config.toml)를 반환한다.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rv", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "rv", "config.toml")
	}
	return filepath.Join(home, ".config", "rv", "config.toml")
}

// Load는 config.toml을 기본값 위에 읽고 RV_ 환경변수로 덮어쓴다.
// 파일이 없으면 기본값을 사용한다.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	if err == nil {
		if err := k.Load(rawbytes.Provider(data), Parser()); err != nil {
			return nil, fmt.Errorf("config.Load: %w: %s: %v", ErrConfig, path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey는 RV_DATA_DIR 같은 환경변수를 설정 키로 바꾼다. 알 수 없는 변수는 무시한다.
func envKey(s string) string {
	switch key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix)); key {
	case "data_dir", "file_name", "key_case":
		return key
	default:
		return ""
	}
}

// Save는 설정을 TOML 파일로 저장한다 (0600 권한).
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// ParsedKeyCase는 key_case 설정을 해석한다.
func (c *Config) ParsedKeyCase() (profile.KeyCase, error) {
	kc, err := profile.ParseKeyCase(c.KeyCase)
	if err != nil {
		return profile.KeyCase{}, fmt.Errorf("config: %w: %v", ErrConfig, err)
	}
	return kc, nil
}

func (c *Config) applyDefaults() {
	if c.FileName == "" {
		c.FileName = profile.DefaultFileName
	}
}

func (c *Config) validate() error {
	if strings.ContainsRune(c.FileName, filepath.Separator) {
		return fmt.Errorf("config.Load: %w: file_name에 경로 구분자를 쓸 수 없습니다: %s", ErrConfig, c.FileName)
	}
	if _, err := c.ParsedKeyCase(); err != nil {
		return err
	}
	return nil
}
