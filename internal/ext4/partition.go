// Copyright 2021 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ext4 loads boot images from an ext4 partition on a block device.
package ext4

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dsoprea/go-ext4"
)

// ErrNotFound is returned by ReadAll when the path doesn't exist.
var ErrNotFound = errors.New("file not found")

// Partition is an ext4 filesystem starting Offset bytes into Dev.
type Partition struct {
	Dev    io.ReaderAt
	Offset int64
	// Size bounds the partition. Zero means "to the end of the device",
	// capped at 1<<62 bytes.
	Size int64
}

func (p *Partition) reader() *io.SectionReader {
	size := p.Size
	if size <= 0 {
		size = 1 << 62
	}
	return io.NewSectionReader(p.Dev, p.Offset, size)
}

func getBlockGroupDescriptor(r io.ReadSeeker, inode int) (*ext4.BlockGroupDescriptor, error) {
	if _, err := r.Seek(ext4.Superblock0Offset, io.SeekStart); err != nil {
		return nil, err
	}
	sb, err := ext4.NewSuperblockWithReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read superblock: %w", err)
	}
	bgdl, err := ext4.NewBlockGroupDescriptorListWithReadSeeker(r, sb)
	if err != nil {
		return nil, fmt.Errorf("failed to read block group descriptors: %w", err)
	}
	return bgdl.GetWithAbsoluteInode(inode)
}

// ReadAll returns the contents of the file at fullPath.
func (p *Partition) ReadAll(fullPath string) ([]byte, error) {
	r := p.reader()
	path := strings.Split(strings.Trim(fullPath, "/"), "/")

	bgd, err := getBlockGroupDescriptor(r, ext4.InodeRootDirectory)
	if err != nil {
		return nil, err
	}
	dw, err := ext4.NewDirectoryWalk(r, bgd, ext4.InodeRootDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to walk /: %w", err)
	}

	var i, inodeNumber int
	for inodeNumber == 0 {
		name, de, err := dw.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to walk directory: %w", err)
		}
		if name != path[i] {
			continue
		}

		deInode := int(de.Data().Inode)
		bgd, err = getBlockGroupDescriptor(r, deInode)
		if err != nil {
			return nil, err
		}
		if i == len(path)-1 {
			inodeNumber = deInode
			break
		}
		dw, err = ext4.NewDirectoryWalk(r, bgd, deInode)
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", name, err)
		}
		i++
	}
	if inodeNumber == 0 {
		return nil, fmt.Errorf("%s: %w", fullPath, ErrNotFound)
	}

	inode, err := ext4.NewInodeWithReadSeeker(bgd, r, inodeNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read inode %d: %w", inodeNumber, err)
	}
	en := ext4.NewExtentNavigatorWithReadSeeker(r, inode)
	return io.ReadAll(ext4.NewInodeReader(en))
}
