package theme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore 把偏好写进 YAML 文件，文件里可以有多个 key
type FileStore struct {
	path string
	key  string
}

// NewFileStore 创建文件存储
func NewFileStore(path, key string) *FileStore {
	return &FileStore{path: path, key: key}
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("解析主题文件失败: %w", err)
	}
	return values, nil
}

// Load 读取主题
func (s *FileStore) Load(context.Context) (Mode, error) {
	values, err := s.read()
	if err != nil {
		return "", err
	}
	m := Mode(values[s.key])
	if !m.Valid() {
		return "", nil
	}
	return m, nil
}

// Save 保存主题，保留文件里的其它 key
func (s *FileStore) Save(_ context.Context, m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("无效的主题: %q", m)
	}
	values, err := s.read()
	if err != nil {
		values = map[string]string{}
	}
	values[s.key] = string(m)

	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("创建主题目录失败: %w", err)
	}
	return os.WriteFile(s.path, data, 0o644)
}
