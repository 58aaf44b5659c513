package util

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
)

const fingerprintTail = 2048

// CalculateFileFingerprint returns a CRC32 of the last 2KB of a file. Feed
// files grow by appending, so the tail changes whenever new items land.
func CalculateFileFingerprint(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return "", err
	}

	size := stat.Size()
	readSize := int64(fingerprintTail)
	if size < readSize {
		readSize = size
	}

	data := make([]byte, readSize)
	if _, err := file.ReadAt(data, size-readSize); err != nil && err != io.EOF {
		return "", err
	}

	return fmt.Sprintf("%08x", crc32.ChecksumIEEE(data)), nil
}
