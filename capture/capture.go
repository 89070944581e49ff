package capture

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/gta100/susa/errs"
	"github.com/gta100/susa/internal/options"
)

var magic = [4]byte{'S', 'C', 'A', 'P'}

const formatVersion = 0x1

// headerSize is magic + version + compression + code fingerprint.
const headerSize = 4 + 1 + 1 + 8

// Frame is one simulated transmission: the source bits, the received
// channel samples and the decoder's soft outputs. Any field may be empty;
// lengths are preserved through a write/read round trip.
type Frame struct {
	Bits    []uint8
	Samples []float64
	Soft    []float64
}

// Writer streams frames to an io.Writer, one compressed, checksummed block
// per frame. A Writer is not safe for concurrent use.
type Writer struct {
	w           io.Writer
	codec       Codec
	compression Compression
	frames      int
	scratch     []byte
}

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*Writer]

// WithCompression selects the payload codec. The default is S2.
func WithCompression(compression Compression) WriterOption {
	return options.New(func(w *Writer) error {
		codec, err := GetCodec(compression)
		if err != nil {
			return err
		}
		w.codec = codec
		w.compression = compression

		return nil
	})
}

// NewWriter writes the stream header and returns a Writer. fingerprint
// identifies the code configuration that produced the frames (see
// ccode.Code.Fingerprint); readers can use it to reject captures recorded
// with a different code.
func NewWriter(w io.Writer, fingerprint uint64, opts ...WriterOption) (*Writer, error) {
	cw := &Writer{
		w:           w,
		codec:       S2Codec{},
		compression: CompressionS2,
	}
	if err := options.Apply(cw, opts...); err != nil {
		return nil, err
	}

	var header [headerSize]byte
	copy(header[:4], magic[:])
	header[4] = formatVersion
	header[5] = byte(cw.compression)
	binary.LittleEndian.PutUint64(header[6:], fingerprint)

	if _, err := w.Write(header[:]); err != nil {
		return nil, fmt.Errorf("writing capture header: %w", err)
	}

	return cw, nil
}

// WriteFrame appends one frame to the stream.
func (w *Writer) WriteFrame(f Frame) error {
	payload := w.scratch[:0]
	payload = binary.AppendUvarint(payload, uint64(len(f.Bits)))
	payload = append(payload, f.Bits...)
	payload = binary.AppendUvarint(payload, uint64(len(f.Samples)))
	for _, v := range f.Samples {
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(v))
	}
	payload = binary.AppendUvarint(payload, uint64(len(f.Soft)))
	for _, v := range f.Soft {
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(v))
	}
	w.scratch = payload

	sum := xxhash.Sum64(payload)

	compressed, err := w.codec.Compress(payload)
	if err != nil {
		return fmt.Errorf("compressing frame %d: %w", w.frames, err)
	}

	var prefix [binary.MaxVarintLen64 + 8]byte
	n := binary.PutUvarint(prefix[:], uint64(len(compressed)))
	binary.LittleEndian.PutUint64(prefix[n:], sum)

	if _, err := w.w.Write(prefix[:n+8]); err != nil {
		return fmt.Errorf("writing frame %d: %w", w.frames, err)
	}
	if _, err := w.w.Write(compressed); err != nil {
		return fmt.Errorf("writing frame %d: %w", w.frames, err)
	}
	w.frames++

	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Reader reads a capture stream produced by Writer. A Reader is not safe
// for concurrent use.
type Reader struct {
	r           *bufio.Reader
	codec       Codec
	compression Compression
	fingerprint uint64
}

// NewReader parses the stream header and returns a Reader positioned at
// the first frame.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	var header [headerSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short header: %w", errs.ErrInvalidCapture, err)
	}
	if [4]byte(header[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic", errs.ErrInvalidCapture)
	}
	if header[4] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidCapture, header[4])
	}

	compression := Compression(header[5])
	codec, err := GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCapture, err)
	}

	return &Reader{
		r:           br,
		codec:       codec,
		compression: compression,
		fingerprint: binary.LittleEndian.Uint64(header[6:]),
	}, nil
}

// Compression returns the codec recorded in the stream header.
func (r *Reader) Compression() Compression { return r.compression }

// Fingerprint returns the code fingerprint recorded in the stream header.
func (r *Reader) Fingerprint() uint64 { return r.fingerprint }

// ReadFrame returns the next frame, io.EOF at the clean end of the stream,
// or ErrChecksumMismatch if the payload digest does not match.
func (r *Reader) ReadFrame() (Frame, error) {
	compLen, err := binary.ReadUvarint(r.r)
	if err != nil {
		if err == io.EOF {
			return Frame{}, io.EOF
		}

		return Frame{}, fmt.Errorf("%w: frame length: %w", errs.ErrInvalidCapture, err)
	}

	var sumBuf [8]byte
	if _, err := io.ReadFull(r.r, sumBuf[:]); err != nil {
		return Frame{}, fmt.Errorf("%w: frame checksum: %w", errs.ErrInvalidCapture, err)
	}
	want := binary.LittleEndian.Uint64(sumBuf[:])

	compressed := make([]byte, compLen)
	if _, err := io.ReadFull(r.r, compressed); err != nil {
		return Frame{}, fmt.Errorf("%w: frame body: %w", errs.ErrInvalidCapture, err)
	}

	payload, err := r.codec.Decompress(compressed)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %w", errs.ErrInvalidCapture, err)
	}
	if xxhash.Sum64(payload) != want {
		return Frame{}, fmt.Errorf("%w: frame digest %016x", errs.ErrChecksumMismatch, want)
	}

	return decodeFrame(payload)
}

func decodeFrame(payload []byte) (Frame, error) {
	var f Frame

	bits, rest, err := takeBytes(payload)
	if err != nil {
		return Frame{}, err
	}
	f.Bits = bits

	f.Samples, rest, err = takeFloats(rest)
	if err != nil {
		return Frame{}, err
	}
	f.Soft, rest, err = takeFloats(rest)
	if err != nil {
		return Frame{}, err
	}
	if len(rest) != 0 {
		return Frame{}, fmt.Errorf("%w: %d trailing payload bytes", errs.ErrInvalidCapture, len(rest))
	}

	return f, nil
}

func takeBytes(payload []byte) ([]uint8, []byte, error) {
	n, used := binary.Uvarint(payload)
	if used <= 0 || uint64(len(payload)-used) < n {
		return nil, nil, fmt.Errorf("%w: truncated bit section", errs.ErrInvalidCapture)
	}
	payload = payload[used:]

	out := make([]uint8, n)
	copy(out, payload[:n])

	return out, payload[n:], nil
}

func takeFloats(payload []byte) ([]float64, []byte, error) {
	n, used := binary.Uvarint(payload)
	if used <= 0 || n > uint64(len(payload)-used)/8 {
		return nil, nil, fmt.Errorf("%w: truncated float section", errs.ErrInvalidCapture)
	}
	payload = payload[used:]

	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:]))
	}

	return out, payload[n*8:], nil
}
