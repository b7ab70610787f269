// Package prefs 提供本地偏好存储：主题与可选的覆盖密钥
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "marketai-api/pkg/errors"
)

// 已知键
const (
	KeyTheme  = "theme"
	KeyAPIKey = "api_key"
)

// DefaultTheme 未设置主题时使用
const DefaultTheme = "dark"

// PlaceholderAPIKey 示例密钥，视同未设置
const PlaceholderAPIKey = "your-openai-api-key-here"

var themes = map[string]bool{"light": true, "dark": true}

// Store 基于 viper 的 YAML 偏好文件，每次修改立即落盘
type Store struct {
	v    *viper.Viper
	path string
}

// DefaultPath 默认偏好文件位置
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "marketai", "prefs.yaml"), nil
}

// Open 打开偏好文件，文件不存在时视为空
func Open(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read prefs %s: %w", path, err)
		}
	}
	return &Store{v: v, path: path}, nil
}

// Path 偏好文件路径
func (s *Store) Path() string {
	return s.path
}

// Keys 全部已知键
func Keys() []string {
	return []string{KeyTheme, KeyAPIKey}
}

// Get 读取键值，未设置返回空串
func (s *Store) Get(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	return s.v.GetString(key), nil
}

// Set 写入键值并落盘
func (s *Store) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if key == KeyTheme && !themes[value] {
		return apperrors.New(apperrors.CodeInvalidParam, "theme must be light or dark")
	}
	s.v.Set(key, value)
	return s.save()
}

// Unset 清除键值并落盘
// viper 不支持删除键，空串即未设置
func (s *Store) Unset(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.v.Set(key, "")
	return s.save()
}

// OverrideKey 返回本地覆盖密钥，示例占位值视同未设置
func (s *Store) OverrideKey() string {
	key := strings.TrimSpace(s.v.GetString(KeyAPIKey))
	if key == PlaceholderAPIKey {
		return ""
	}
	return key
}

// Theme 返回主题，默认 dark
func (s *Store) Theme() string {
	if t := s.v.GetString(KeyTheme); themes[t] {
		return t
	}
	return DefaultTheme
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write prefs %s: %w", s.path, err)
	}
	return os.Chmod(s.path, 0o600)
}

func checkKey(key string) error {
	for _, k := range Keys() {
		if k == key {
			return nil
		}
	}
	return apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("unknown preference %q", key))
}
