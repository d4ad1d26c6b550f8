package bench

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zlib"
	"github.com/minio/sha256-simd"
)

const (
	payloadSize = 5 * 1024 * 1024
	tempPattern = "sysbench-*.tmp"
)

var (
	byteSink   []byte
	digestSink string
)

func randomPayload() ([]byte, error) {
	buf := make([]byte, payloadSize)
	if _, err := crand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating random payload: %w", err)
	}
	return buf, nil
}

// writeTemp writes data to a new file under dir and reports how long the
// write and close took. On error the file is already removed; otherwise the
// caller owns it.
func writeTemp(dir string, data []byte) (string, float64, error) {
	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}

	start := time.Now()
	_, werr := f.Write(data)
	cerr := f.Close()
	elapsed := since(start)

	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(f.Name())
		return "", 0, fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	return f.Name(), elapsed, nil
}

func tempDir(env *Env) string {
	if env == nil {
		return ""
	}
	return env.TempDir
}

// timedWrite backs disk_write and file_write: the payload is generated
// before the timer starts.
func timedWrite(_ context.Context, env *Env) (float64, error) {
	data, err := randomPayload()
	if err != nil {
		return 0, err
	}

	path, elapsed, err := writeTemp(tempDir(env), data)
	if err != nil {
		return 0, err
	}
	defer os.Remove(path)

	return elapsed, nil
}

func diskWrite(ctx context.Context, env *Env) (float64, error) {
	return timedWrite(ctx, env)
}

func fileWrite(ctx context.Context, env *Env) (float64, error) {
	return timedWrite(ctx, env)
}

func fileRead(_ context.Context, env *Env) (float64, error) {
	data, err := randomPayload()
	if err != nil {
		return 0, err
	}

	path, _, err := writeTemp(tempDir(env), data)
	if err != nil {
		return 0, err
	}
	defer os.Remove(path)

	start := time.Now()
	read, err := os.ReadFile(path)
	elapsed := since(start)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(read) != len(data) {
		return 0, fmt.Errorf("reading %s: got %d bytes, wrote %d", path, len(read), len(data))
	}

	byteSink = read
	byteSink = nil
	return elapsed, nil
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("zlib read: %w", err)
	}
	return out, nil
}

func compression(_ context.Context, _ *Env) (float64, error) {
	data, err := randomPayload()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	packed, err := compress(data)
	elapsed := since(start)
	if err != nil {
		return 0, err
	}

	byteSink = packed
	byteSink = nil
	return elapsed, nil
}

func decompression(_ context.Context, _ *Env) (float64, error) {
	data, err := randomPayload()
	if err != nil {
		return 0, err
	}
	packed, err := compress(data)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	unpacked, err := decompress(packed)
	elapsed := since(start)
	if err != nil {
		return 0, err
	}
	if !bytes.Equal(unpacked, data) {
		return 0, errors.New("zlib round trip mismatch")
	}

	return elapsed, nil
}

func hashing(_ context.Context, _ *Env) (float64, error) {
	data, err := randomPayload()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	elapsed := since(start)

	digestSink = digest
	return elapsed, nil
}
