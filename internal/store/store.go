package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileName은 활성화 상태 문서의 파일 이름이다.
const FileName = "metadata.json"

// ErrStoreCorrupt는 저장된 문서를 파싱할 수 없을 때의 sentinel error다.
var ErrStoreCorrupt = errors.New("활성화 상태 파일 손상")

// CorruptError는 손상된 상태 파일의 경로와 원인을 담는다.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStoreCorrupt, e.Path, e.Err)
}

// Unwrap은 파싱 에러를 반환한다.
func (e *CorruptError) Unwrap() error { return e.Err }

// Is는 errors.Is(err, ErrStoreCorrupt)를 지원한다.
func (e *CorruptError) Is(target error) bool { return target == ErrStoreCorrupt }

// Record는 디렉토리 하나의 활성화 상태다.
// Variables가 nil이면 아직 해석되지 않은 상태, 빈 슬라이스면 내보낸 변수가 없는 상태다.
type Record struct {
	Profile   string   `json:"name"`
	Variables []string `json:"variables"`
}

// Resolved는 변수 목록이 한 번이라도 해석되었는지 반환한다.
func (r Record) Resolved() bool { return r.Variables != nil }

// Store는 디렉토리 경로를 키로 하는 활성화 상태 저장소다.
type Store struct {
	path    string
	records map[string]Record
}

// New는 path에 저장될 빈 저장소를 생성한다.
func New(path string) *Store {
	return &Store{path: path, records: make(map[string]Record)}
}

// Load는 상태 파일을 파싱한다. 파일이 없으면 빈 저장소, 파싱 실패 시 CorruptError를 반환한다.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store.Load: %w", err)
	}
	s := New(path)
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("store.Load: %w", &CorruptError{Path: path, Err: err})
	}
	if s.records == nil {
		s.records = make(map[string]Record)
	}
	return s, nil
}

// Path는 상태 파일 경로다.
func (s *Store) Path() string { return s.path }

// Get은 dir의 활성화 상태를 조회한다.
func (s *Store) Get(dir string) (Record, bool) {
	r, ok := s.records[dir]
	if !ok {
		return Record{}, false
	}
	r.Variables = cloneKeys(r.Variables)
	return r, true
}

// Set은 dir의 상태를 추가하거나 통째로 교체한다.
func (s *Store) Set(dir string, r Record) {
	r.Variables = cloneKeys(r.Variables)
	s.records[dir] = r
}

// Remove는 dir의 상태를 제거한다. 없으면 아무것도 하지 않는다.
func (s *Store) Remove(dir string) {
	delete(s.records, dir)
}

// Keys는 저장된 디렉토리 목록을 정렬해 반환한다.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save는 저장소 전체를 원자적으로 파일에 쓴다 (0600 권한).
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("store.Save: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0600); err != nil {
		return fmt.Errorf("store.Save: %w", err)
	}
	return nil
}

// Key는 디렉토리 경로를 저장소 키(절대 경로, 정규화)로 변환한다.
func Key(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("store.Key: %w", err)
	}
	return filepath.Clean(abs), nil
}

// DefaultDataDir은 기본 데이터 디렉토리다. $XDG_DATA_HOME/rv 또는 ~/.local/share/rv.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "rv")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".rv")
	}
	return filepath.Join(home, ".local", "share", "rv")
}

// DefaultPath는 dataDir 안의 상태 파일 경로다. dataDir이 비어 있으면 DefaultDataDir을 쓴다.
func DefaultPath(dataDir string) string {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	return filepath.Join(dataDir, FileName)
}

func cloneKeys(keys []string) []string {
	if keys == nil {
		return nil
	}
	return append(make([]string, 0, len(keys)), keys...)
}
