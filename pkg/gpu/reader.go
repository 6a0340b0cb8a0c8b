package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrIndexOutOfRange is returned when a record index points past the buffer
	ErrIndexOutOfRange = errors.New("gpu: record index out of range")
	// ErrCorruptBuffer is returned when serialized bytes do not describe a buffer
	ErrCorruptBuffer = errors.New("gpu: corrupt buffer")
)

// Buffer holds packed records ready for upload
type Buffer struct {
	Nodes  []uint32 // len is a multiple of BlockWords
	Pixels []uint32 // image pixel pool, ARGB
	Roots  []uint32 // record index of every PackTexture/PackMaterial call, in call order
}

// Len returns the number of records
func (b *Buffer) Len() int {
	return len(b.Nodes) / BlockWords
}

// Record is a decoded view of one block
type Record struct {
	Kind     KindID
	Children []uint32
	Params   [ParamWords]uint32
}

// Float returns parameter i as a float32
func (r Record) Float(i int) float32 {
	return math.Float32frombits(r.Params[i])
}

// Uint returns parameter i as a uint32
func (r Record) Uint(i int) uint32 {
	return r.Params[i]
}

// Child returns the record index held in child slot i
func (r Record) Child(i int) uint32 {
	if i < 0 || i >= len(r.Children) {
		return NoChild
	}
	return r.Children[i]
}

// Record decodes the block at index
func (b *Buffer) Record(index uint32) (Record, error) {
	if int(index) >= b.Len() {
		return Record{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, b.Len())
	}
	block := b.Nodes[int(index)*BlockWords : int(index+1)*BlockWords]

	count := block[OffsetChildCount]
	if count > MaxChildren {
		return Record{}, fmt.Errorf("%w: record %d has %d children", ErrCorruptBuffer, index, count)
	}
	r := Record{
		Kind:     KindID(block[OffsetKind]),
		Children: make([]uint32, count),
	}
	copy(r.Children, block[OffsetChild0:OffsetChild0+int(count)])
	copy(r.Params[:], block[OffsetParams:])
	return r, nil
}

// Bytes serializes the buffer as little-endian words: a three word header
// (record count, pixel count, root count) followed by roots, nodes and pixels.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, 4*(3+len(b.Roots)+len(b.Nodes)+len(b.Pixels)))
	out = binary.LittleEndian.AppendUint32(out, uint32(b.Len()))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(b.Pixels)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(b.Roots)))
	for _, words := range [][]uint32{b.Roots, b.Nodes, b.Pixels} {
		for _, w := range words {
			out = binary.LittleEndian.AppendUint32(out, w)
		}
	}
	return out
}

// ReadBuffer parses the output of Bytes
func ReadBuffer(data []byte) (*Buffer, error) {
	if len(data)%4 != 0 || len(data) < 12 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptBuffer, len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[4*i:])
	}

	records, pixels, roots := int(words[0]), int(words[1]), int(words[2])
	want := 3 + roots + records*BlockWords + pixels
	if want != len(words) {
		return nil, fmt.Errorf("%w: header describes %d words, got %d", ErrCorruptBuffer, want, len(words))
	}

	rest := words[3:]
	b := &Buffer{
		Roots:  rest[:roots:roots],
		Nodes:  rest[roots : roots+records*BlockWords : roots+records*BlockWords],
		Pixels: rest[roots+records*BlockWords:],
	}
	return b, nil
}
