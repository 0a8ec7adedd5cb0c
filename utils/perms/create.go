// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

package perms

import (
	"io/fs"
	"os"
)

// Create opens [filename] for writing, truncating any prior contents. If the
// file already existed its permissions are corrected to [perm].
func Create(filename string, perm fs.FileMode) (*os.File, error) {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return nil, err
	}

	// The file's permissions are only set at creation, so enforce them on the
	// reused inode as well.
	if err := file.Chmod(perm); err != nil {
		_ = file.Close()
		return nil, err
	}
	return file, nil
}
