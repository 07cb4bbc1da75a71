package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic은 같은 디렉토리의 임시 파일에 쓰고 fsync 후 rename한다.
// 중간에 실패해도 기존 파일은 그대로 남는다.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("디렉토리 생성 실패: %w", err)
	}

	f, err := os.CreateTemp(dir, ".metadata-*.tmp")
	if err != nil {
		return fmt.Errorf("임시 파일 생성 실패: %w", err)
	}
	tmp := f.Name()

	done := false
	defer func() {
		if !done {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("임시 파일 쓰기 실패: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("fsync 실패: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("임시 파일 닫기 실패: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("권한 설정 실패: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename 실패: %w", err)
	}

	done = true
	return nil
}
