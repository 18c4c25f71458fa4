package checkers

import (
	"context"
	"os"
)

// UploadDirChecker verifies the image directory accepts new files.
type UploadDirChecker struct {
	dir string
}

func NewUploadDirChecker(dir string) *UploadDirChecker {
	return &UploadDirChecker{dir: dir}
}

func (c *UploadDirChecker) Name() string { return "uploads" }

func (c *UploadDirChecker) Check(ctx context.Context) error {
	f, err := os.CreateTemp(c.dir, ".ready-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
