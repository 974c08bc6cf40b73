// Package export writes generated galaxies to disk and reads them back.
package export

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/pierrec/lz4/v4"

	"github.com/pthm-cable/galaxy/galaxy"
)

// Magic identifies a binary snapshot.
var Magic = [4]byte{'G', 'L', 'X', 'Y'}

// Version is the current snapshot format.
const Version uint32 = 1

// MaxPoints is the largest point count a snapshot may declare.
const MaxPoints = 1_000_000

// ErrFormat is returned when a snapshot cannot be decoded.
var ErrFormat = errors.New("export: bad snapshot")

// PointRow is one CSV row.
type PointRow struct {
	X float32 `csv:"x"`
	Y float32 `csv:"y"`
	Z float32 `csv:"z"`
	R float32 `csv:"r"`
	G float32 `csv:"g"`
	B float32 `csv:"b"`
}

// WriteCSV writes one row per point with a header.
func WriteCSV(w io.Writer, cloud *galaxy.PointCloud) error {
	pos, col := cloud.Positions(), cloud.Colors()
	rows := make([]PointRow, cloud.Len())
	for i := range rows {
		i3 := i * 3
		rows[i] = PointRow{
			X: pos[i3], Y: pos[i3+1], Z: pos[i3+2],
			R: col[i3], G: col[i3+1], B: col[i3+2],
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing points: %w", err)
	}
	return nil
}

// ReadCSV reads rows written by WriteCSV. Everything but the buffers comes
// from p.
func ReadCSV(r io.Reader, generation uint64, p galaxy.Params) (*galaxy.PointCloud, error) {
	var rows []PointRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("reading points: %w", err)
	}
	pos := make([]float32, 0, len(rows)*3)
	col := make([]float32, 0, len(rows)*3)
	for _, row := range rows {
		pos = append(pos, row.X, row.Y, row.Z)
		col = append(col, row.R, row.G, row.B)
	}
	return galaxy.FromBuffers(generation, p, pos, col), nil
}

// header is the fixed-size part of a snapshot, little-endian.
type header struct {
	Magic           [4]byte
	Version         uint32
	Generation      uint64
	Count           uint32
	Branches        uint32
	Size            float32
	Radius          float64
	Spin            float64
	Randomness      float64
	RandomnessPower float64
	Inside          [3]float32
	Outside         [3]float32
}

// WriteBinary writes an lz4-compressed snapshot of cloud.
func WriteBinary(w io.Writer, cloud *galaxy.PointCloud) error {
	p := cloud.Params()
	h := header{
		Magic:           Magic,
		Version:         Version,
		Generation:      cloud.Generation(),
		Count:           uint32(cloud.Len()),
		Branches:        uint32(p.Branches),
		Size:            p.Size,
		Radius:          p.Radius,
		Spin:            p.Spin,
		Randomness:      p.Randomness,
		RandomnessPower: p.RandomnessPower,
		Inside:          rgb32(p.InsideColor),
		Outside:         rgb32(p.OutsideColor),
	}

	zw := lz4.NewWriter(w)
	if err := binary.Write(zw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := binary.Write(zw, binary.LittleEndian, cloud.Positions()); err != nil {
		return fmt.Errorf("writing positions: %w", err)
	}
	if err := binary.Write(zw, binary.LittleEndian, cloud.Colors()); err != nil {
		return fmt.Errorf("writing colors: %w", err)
	}
	return zw.Close()
}

// ReadBinary decodes a snapshot written by WriteBinary.
func ReadBinary(r io.Reader) (*galaxy.PointCloud, error) {
	zr := lz4.NewReader(r)

	var h header
	if err := binary.Read(zr, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrFormat, h.Magic[:])
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, h.Version)
	}

	if h.Count > MaxPoints {
		return nil, fmt.Errorf("%w: count %d exceeds %d", ErrFormat, h.Count, MaxPoints)
	}

	n := int(h.Count) * 3
	pos := make([]float32, n)
	col := make([]float32, n)
	if err := binary.Read(zr, binary.LittleEndian, pos); err != nil {
		return nil, fmt.Errorf("%w: positions: %v", ErrFormat, err)
	}
	if err := binary.Read(zr, binary.LittleEndian, col); err != nil {
		return nil, fmt.Errorf("%w: colors: %v", ErrFormat, err)
	}

	p := galaxy.Params{
		Size:            h.Size,
		Radius:          h.Radius,
		Branches:        int(h.Branches),
		Spin:            h.Spin,
		Randomness:      h.Randomness,
		RandomnessPower: h.RandomnessPower,
		InsideColor:     color64(h.Inside),
		OutsideColor:    color64(h.Outside),
	}
	return galaxy.FromBuffers(h.Generation, p, pos, col), nil
}

// SaveFile writes cloud to path, choosing the format by extension:
// ".csv" for CSV, anything else for a binary snapshot.
func SaveFile(path string, cloud *galaxy.PointCloud) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if isCSV(path) {
		err = WriteCSV(f, cloud)
	} else {
		err = WriteBinary(f, cloud)
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a binary snapshot from path.
func LoadFile(path string) (*galaxy.PointCloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadBinary(f)
}

func isCSV(path string) bool {
	return len(path) >= 4 && path[len(path)-4:] == ".csv"
}

func rgb32(c galaxy.Color) [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func color64(c [3]float32) galaxy.Color {
	return galaxy.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}
