package util

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// GenerateChecksum generates the checksum of one piece data
func GenerateChecksum(pieceData []byte) []byte {
	hash := sha256.New()
	hash.Write(pieceData)
	return hash.Sum(nil)
}

// ChecksumReader hashes everything read through it.
type ChecksumReader struct {
	r    io.Reader
	h    hash.Hash
	size int64
}

func NewChecksumReader(r io.Reader) *ChecksumReader {
	h := sha256.New()
	return &ChecksumReader{r: io.TeeReader(r, h), h: h}
}

func (c *ChecksumReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.size += int64(n)
	return n, err
}

// Sum is the hex sha256 of the bytes read so far.
func (c *ChecksumReader) Sum() string {
	return hex.EncodeToString(c.h.Sum(nil))
}

func (c *ChecksumReader) Size() int64 {
	return c.size
}
