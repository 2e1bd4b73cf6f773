package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskUploader stores images under Dir and serves them from PublicPrefix.
type DiskUploader struct {
	Dir          string
	PublicPrefix string
}

func NewDiskUploader(dir, publicPrefix string) *DiskUploader {
	return &DiskUploader{Dir: dir, PublicPrefix: strings.TrimRight(publicPrefix, "/") + "/"}
}

func (u *DiskUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(u.Dir, 0755); err != nil {
		return "", err
	}

	name := "menu_" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	path := filepath.Join(u.Dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	_, err = io.Copy(dst, r)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", err
	}
	return u.PublicPrefix + name, nil
}
