// Package codec reads and writes the binary file format that persists a
// graph.Graph to disk: a fixed 78-byte header followed by variable-length
// node records, all big-endian, terminated by a zero-length payload
// marker.
//
// This is adapted from the page-layout discipline of a persistent HNSW
// index's metadata page: manual big-endian field packing into one buffer
// per record rather than per-field Write calls, and a magic-prefixed
// header guarding against loading an incompatible file.
package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/vitelabs/vitehnsw/graph"
)

const (
	magicString = "vite format 0\x00"
	headerSize  = 78

	// readChunkSize mirrors the original reader's 1024-byte buffering; it
	// has no bearing on the format itself.
	readChunkSize = 1024

	// Guard rails against a corrupt or hostile file driving an enormous
	// allocation before the rest of the record has even been validated.
	maxPlausibleDimension = 1 << 20
	maxPlausibleAdjLen    = 1 << 24
	maxPlausibleNodeCount = 1 << 32
)

var (
	// ErrFormatError is the sentinel wrapped by every FormatError value;
	// callers that only care about the category can match on this with
	// errors.Is instead of type-asserting FormatError.
	ErrFormatError = errors.New("vitehnsw/codec: format error")

	// ErrIO wraps underlying storage read/write failures.
	ErrIO = errors.New("vitehnsw/codec: io error")
)

// FormatError reports a malformed file at a specific byte offset.
type FormatError struct {
	Offset int64
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("vitehnsw/codec: format error at offset %d: %s", e.Offset, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrFormatError }

func formatErrorf(offset int64, format string, args ...any) error {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// Save writes g to path in the format described by the package doc,
// overwriting any existing file.
func Save(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, readChunkSize)
	if err := writeHeader(w, g); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	for i := range g.Nodes {
		if err := writeNode(w, &g.Nodes[i]); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}
	// End-of-file marker: a payload_len of zero.
	if err := binary.Write(w, binary.BigEndian, uint32(0)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func writeHeader(w io.Writer, g *graph.Graph) error {
	var buf [headerSize]byte
	copy(buf[0:14], magicString)
	binary.BigEndian.PutUint64(buf[14:22], uint64(g.Dimension))
	binary.BigEndian.PutUint64(buf[22:30], uint64(len(g.Nodes)))
	binary.BigEndian.PutUint64(buf[30:38], g.Entrance)
	binary.BigEndian.PutUint64(buf[38:46], uint64(g.LayerCount))
	binary.BigEndian.PutUint64(buf[46:54], math.Float64bits(g.ML))
	binary.BigEndian.PutUint64(buf[54:62], uint64(g.MMax))
	binary.BigEndian.PutUint64(buf[62:70], uint64(g.MMax0))
	binary.BigEndian.PutUint64(buf[70:78], uint64(g.EfConstruction))
	_, err := w.Write(buf[:])
	return err
}

func writeNode(w io.Writer, n *graph.Node) error {
	payloadLen := 16 + 8*len(n.Vector)
	for _, friends := range n.Friends {
		payloadLen += 8 + 8*len(friends)
	}

	buf := make([]byte, 4+payloadLen)
	binary.BigEndian.PutUint32(buf[0:4], uint32(payloadLen))
	off := 4
	binary.BigEndian.PutUint64(buf[off:off+8], n.Index)
	off += 8
	binary.BigEndian.PutUint64(buf[off:off+8], uint64(n.MaxLevel))
	off += 8
	for _, v := range n.Vector {
		binary.BigEndian.PutUint64(buf[off:off+8], math.Float64bits(v))
		off += 8
	}
	for _, friends := range n.Friends {
		binary.BigEndian.PutUint64(buf[off:off+8], uint64(len(friends)))
		off += 8
		for _, f := range friends {
			binary.BigEndian.PutUint64(buf[off:off+8], f)
			off += 8
		}
	}

	_, err := w.Write(buf)
	return err
}

// Load reads path and returns a resolved graph.Graph, ready for Insert
// and KNNSearch. Load runs Resolve itself and reports a failure as a
// FormatError carrying Resolve's message, since a graph that fails its
// own invariant check after a clean read is itself evidence of a
// malformed file.
func Load(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, readChunkSize)

	dimension, entrance, layerCount, mL, mMax, mMax0, efConstruction, nodeCount, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	if nodeCount > maxPlausibleNodeCount {
		return nil, formatErrorf(22, "node_count %d exceeds plausible bound", nodeCount)
	}

	nodes := make([]graph.Node, 0, nodeCount)
	offset := int64(headerSize)
	for {
		var lenBuf [4]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, ioOrFormatErr(offset, "reading payload length", err)
		}
		payloadLen := binary.BigEndian.Uint32(lenBuf[:])
		offset += 4
		if payloadLen == 0 {
			break
		}

		payload := make([]byte, payloadLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, ioOrFormatErr(offset, "reading node record", err)
		}
		node, err := decodeNode(payload, dimension, offset)
		if err != nil {
			return nil, err
		}
		offset += int64(payloadLen)
		nodes = append(nodes, node)
	}

	if uint64(len(nodes)) != nodeCount {
		return nil, formatErrorf(22, "node_count header says %d but %d records were read", nodeCount, len(nodes))
	}

	g := graph.NewUnresolved(dimension, mL, mMax, mMax0, efConstruction, layerCount, entrance, nodes)
	if err := g.Resolve(); err != nil {
		return nil, formatErrorf(-1, "loaded graph failed invariant check: %v", err)
	}
	return g, nil
}

func readHeader(r io.Reader) (dimension int, entrance uint64, layerCount int, mL float64, mMax, mMax0, efConstruction int, nodeCount uint64, err error) {
	var buf [headerSize]byte
	if _, e := io.ReadFull(r, buf[:]); e != nil {
		return 0, 0, 0, 0, 0, 0, 0, 0, e
	}
	if string(buf[0:14]) != magicString {
		return 0, 0, 0, 0, 0, 0, 0, 0, formatErrorf(0, "bad magic: file is not a recognized graph (or uses an unsupported format version)")
	}
	dim := binary.BigEndian.Uint64(buf[14:22])
	if dim == 0 || dim > maxPlausibleDimension {
		return 0, 0, 0, 0, 0, 0, 0, 0, formatErrorf(14, "implausible dimension %d", dim)
	}
	nodeCount = binary.BigEndian.Uint64(buf[22:30])
	entrance = binary.BigEndian.Uint64(buf[30:38])
	layerCount = int(binary.BigEndian.Uint64(buf[38:46]))
	mL = math.Float64frombits(binary.BigEndian.Uint64(buf[46:54]))
	mMax = int(binary.BigEndian.Uint64(buf[54:62]))
	mMax0 = int(binary.BigEndian.Uint64(buf[62:70]))
	efConstruction = int(binary.BigEndian.Uint64(buf[70:78]))
	dimension = int(dim)
	return dimension, entrance, layerCount, mL, mMax, mMax0, efConstruction, nodeCount, nil
}

func decodeNode(payload []byte, dimension int, recordOffset int64) (graph.Node, error) {
	const fixedFields = 16 // index + max_level
	if len(payload) < fixedFields {
		return graph.Node{}, formatErrorf(recordOffset, "record too short for index and max_level")
	}
	index := binary.BigEndian.Uint64(payload[0:8])
	maxLevel := int(binary.BigEndian.Uint64(payload[8:16]))
	off := 16

	vectorBytes := 8 * dimension
	if len(payload) < off+vectorBytes {
		return graph.Node{}, formatErrorf(recordOffset, "record truncated in vector payload")
	}
	vector := make([]float64, dimension)
	for i := range vector {
		vector[i] = math.Float64frombits(binary.BigEndian.Uint64(payload[off : off+8]))
		off += 8
	}

	friends := make([][]uint64, maxLevel+1)
	for lc := 0; lc <= maxLevel; lc++ {
		if len(payload) < off+8 {
			return graph.Node{}, formatErrorf(recordOffset, "record truncated before adjacency length at layer %d", lc)
		}
		adjLen := binary.BigEndian.Uint64(payload[off : off+8])
		off += 8
		if adjLen > maxPlausibleAdjLen {
			return graph.Node{}, formatErrorf(recordOffset, "adj_len %d at layer %d exceeds plausible bound", adjLen, lc)
		}
		if len(payload) < off+int(adjLen)*8 {
			return graph.Node{}, formatErrorf(recordOffset, "record truncated in adjacency list at layer %d", lc)
		}
		ids := make([]uint64, adjLen)
		for i := range ids {
			ids[i] = binary.BigEndian.Uint64(payload[off : off+8])
			off += 8
		}
		friends[lc] = ids
	}

	return graph.Node{
		Index:    index,
		Vector:   vector,
		MaxLevel: maxLevel,
		Friends:  friends,
	}, nil
}

func ioOrFormatErr(offset int64, context string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return formatErrorf(offset, "%s: unexpected end of file", context)
	}
	return fmt.Errorf("%w: %s: %v", ErrIO, context, err)
}
