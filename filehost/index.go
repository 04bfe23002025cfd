// SPDX-License-Identifier: EPL-2.0

package filehost

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ik5/wavescope/utils"
)

// Sidecar peak index layout, little-endian:
//
//	magic      [4]byte "WSPK"
//	version    uint16
//	sampleRate uint32
//	channels   uint16
//	binFrames  uint32
//	binCount   uint32
//
// followed by binCount*channels (max int16, min int16) pairs,
// bin-major, channel-minor.
const (
	indexMagic   = "WSPK"
	indexVersion = 1
	headerSize   = 4 + 2 + 4 + 2 + 4 + 4

	// DefaultBinFrames is the base index resolution: source frames
	// aggregated into one min/max bin.
	DefaultBinFrames = 256
)

type indexHeader struct {
	sampleRate int
	channels   int
	binFrames  int
	binCount   int
}

func writeIndexHeader(w io.Writer, hdr indexHeader) error {
	buf := make([]byte, headerSize)
	copy(buf[0:4], indexMagic)
	binary.LittleEndian.PutUint16(buf[4:6], indexVersion)
	binary.LittleEndian.PutUint32(buf[6:10], uint32(hdr.sampleRate))
	binary.LittleEndian.PutUint16(buf[10:12], uint16(hdr.channels))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(hdr.binFrames))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(hdr.binCount))

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func readIndexHeader(r io.Reader) (indexHeader, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return indexHeader{}, fmt.Errorf("%w", err)
	}

	if string(buf[0:4]) != indexMagic {
		return indexHeader{}, ErrBadIndex
	}
	if binary.LittleEndian.Uint16(buf[4:6]) != indexVersion {
		return indexHeader{}, ErrBadIndexVersion
	}

	hdr := indexHeader{
		sampleRate: int(binary.LittleEndian.Uint32(buf[6:10])),
		channels:   int(binary.LittleEndian.Uint16(buf[10:12])),
		binFrames:  int(binary.LittleEndian.Uint32(buf[12:16])),
		binCount:   int(binary.LittleEndian.Uint32(buf[16:20])),
	}
	if hdr.sampleRate <= 0 || hdr.channels <= 0 || hdr.binFrames <= 0 {
		return indexHeader{}, ErrBadIndex
	}
	return hdr, nil
}

// loadIndex reads and validates a sidecar index file. A data section
// shorter than the header promises is reported as ErrBadIndex.
func loadIndex(path string) (indexHeader, []int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return indexHeader{}, nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	hdr, err := readIndexHeader(f)
	if err != nil {
		return indexHeader{}, nil, err
	}

	want := hdr.binCount * hdr.channels * 2
	raw := make([]byte, want*2)
	if _, err := io.ReadFull(f, raw); err != nil {
		return indexHeader{}, nil, ErrBadIndex
	}

	data := make([]int16, want)
	for i := range data {
		data[i] = int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
	}
	return hdr, data, nil
}

// saveIndex writes the sidecar atomically: to a temp file in the same
// directory, then renamed into place.
func saveIndex(path string, hdr indexHeader, data []int16) error {
	tmp, err := os.CreateTemp(pathDir(path), ".wspk-*")
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	tmpName := tmp.Name()

	if err := writeIndexHeader(tmp, hdr); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	raw := make([]byte, len(data)*2)
	for i, v := range data {
		binary.LittleEndian.PutUint16(raw[i*2:i*2+2], uint16(v))
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w", err)
	}
	return nil
}

// binAt returns the stored max/min pair for one bin and channel.
func binAt(hdr indexHeader, data []int16, bin, ch int) (maxVal, minVal float32) {
	base := (bin*hdr.channels + ch) * 2
	return utils.Int16ToFloat32(data[base]), utils.Int16ToFloat32(data[base+1])
}
