package fs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"Vitrin/internal/cli/repo"
)

// appDirName каталог приложения внутри пользовательского конфиг-каталога.
const appDirName = "Vitrin"

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Store — файловое key-value хранилище клиента: один файл на ключ.
// Пустой Dir означает <UserConfigDir>/Vitrin.
type Store struct {
	Dir string
}

var _ repo.KeyValueStore = Store{}

// New создаёт хранилище в каталоге dir (пустая строка — каталог по умолчанию).
func New(dir string) Store {
	return Store{Dir: dir}
}

func (s Store) configDir() (string, error) {
	p := s.Dir
	if p == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, appDirName)
	}
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s Store) keyPath(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	dir, err := s.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, key), nil
}

// GetItem читает значение ключа из файла.
func (s Store) GetItem(key string) (string, error) {
	p, err := s.keyPath(key)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", repo.ErrNotFound
		}
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	b = bytes.TrimRight(b, repo.TrailingSpace)
	if len(b) == 0 {
		return "", repo.ErrNotFound
	}
	return string(b), nil
}

// SetItem сохраняет значение ключа в файл с правами 0600.
func (s Store) SetItem(key, value string) error {
	p, err := s.keyPath(key)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0o600)
}

// RemoveItem удаляет файл ключа.
func (s Store) RemoveItem(key string) error {
	p, err := s.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
