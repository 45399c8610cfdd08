package rediscache

import (
	"bytes"
	"io"

	"emperror.dev/errors"
	"github.com/klauspost/compress/zlib"
)

// Compression mode header bytes. Like the key prefixes, these are part of
// the wire contract.
const (
	// modeUncompressed means the body is the original payload as-is.
	modeUncompressed byte = 0
	// modeZlib means the body is zlib-compressed.
	modeZlib byte = 1
)

const compressionLevel = 6

// compress wraps payload as [mode byte][body]. The payload is compressed
// first; if that didn't make it smaller, the original is stored instead.
func compress(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(modeZlib)

	w, err := zlib.NewWriterLevel(&buf, compressionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "creating zlib writer")
	}
	if _, err := w.Write(payload); err != nil {
		return nil, errors.Wrap(err, "compressing payload")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "compressing payload")
	}

	if buf.Len()-1 < len(payload) {
		return buf.Bytes(), nil
	}

	out := make([]byte, 0, len(payload)+1)
	out = append(out, modeUncompressed)
	return append(out, payload...), nil
}

// decompress undoes compress. An empty payload is returned unchanged, and
// so is a payload with an unrecognized mode byte: a newer writer's format
// degrades to passthrough for older readers instead of erroring.
func decompress(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return payload, nil
	}

	body := payload[1:]
	switch payload[0] {
	case modeUncompressed:
		return body, nil
	case modeZlib:
		r, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, errors.Wrap(err, "creating zlib reader")
		}
		defer r.Close()

		out, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "decompressing payload")
		}
		return out, nil
	default:
		return payload, nil
	}
}
