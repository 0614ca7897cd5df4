package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const (
	maxLineBytes = 1024 * 1024
	pollInterval = 250 * time.Millisecond
)

// TailOptions selects what Tail reads. A negative Offset means "the last
// Limit lines"; otherwise reading resumes at Offset.
type TailOptions struct {
	Offset int64
	Limit  int
	Follow bool
	Wait   time.Duration
}

// TailResult carries the lines read and the offset to resume from.
type TailResult struct {
	Lines  []string
	Offset int64
}

// Tail reads path according to opts. A missing file yields no lines and a
// zero offset so a later call picks the file up once it is created.
func Tail(ctx context.Context, path string, opts TailOptions) (TailResult, error) {
	if opts.Wait < 0 {
		opts.Wait = 0
	}

	var (
		result TailResult
		err    error
	)
	if opts.Offset < 0 {
		result, err = lastLines(path, opts.Limit)
	} else {
		result, err = linesFrom(path, opts.Offset)
	}
	if err != nil || len(result.Lines) > 0 || !opts.Follow || opts.Wait == 0 {
		return result, err
	}
	return wait(ctx, path, result.Offset, opts.Wait)
}

func lastLines(path string, limit int) (TailResult, error) {
	file, size, err := open(path)
	if err != nil || file == nil {
		return TailResult{}, err
	}
	defer file.Close()

	if limit <= 0 {
		return TailResult{Offset: size}, nil
	}

	ring := make([]string, 0, limit)
	start := 0
	err = scan(file, func(line string) {
		if len(ring) < limit {
			ring = append(ring, line)
			return
		}
		ring[start] = line
		start = (start + 1) % limit
	})
	if err != nil {
		return TailResult{}, err
	}

	lines := make([]string, 0, len(ring))
	lines = append(lines, ring[start:]...)
	lines = append(lines, ring[:start]...)
	offset, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return TailResult{}, fmt.Errorf("log offset: %w", err)
	}
	return TailResult{Lines: lines, Offset: offset}, nil
}

func linesFrom(path string, offset int64) (TailResult, error) {
	file, size, err := open(path)
	if err != nil || file == nil {
		return TailResult{}, err
	}
	defer file.Close()

	if offset > size {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return TailResult{}, fmt.Errorf("seek log file: %w", err)
	}

	var lines []string
	if err := scan(file, func(line string) { lines = append(lines, line) }); err != nil {
		return TailResult{}, err
	}
	next, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return TailResult{}, fmt.Errorf("log offset: %w", err)
	}
	return TailResult{Lines: lines, Offset: next}, nil
}

func wait(ctx context.Context, path string, offset int64, timeout time.Duration) (TailResult, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		result, err := linesFrom(path, offset)
		if err != nil || len(result.Lines) > 0 || time.Now().After(deadline) {
			return result, err
		}
		offset = result.Offset

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-ticker.C:
		}
	}
}

// open returns a nil file without error when path does not exist.
func open(path string) (*os.File, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("log path %q is a directory", path)
	}
	return file, info.Size(), nil
}

// scan reads whole lines only. A trailing partial line is left for the next
// read, and the file position is moved back to its start.
func scan(file *os.File, fn func(string)) error {
	start, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("log offset: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	consumed := start
	for {
		line, err := reader.ReadSlice('\n')
		if err == nil {
			consumed += int64(len(line))
			fn(string(line[:len(line)-1]))
			continue
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			return readLongLine(file, reader, consumed, line, fn)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		return fmt.Errorf("read log file: %w", err)
	}
	if _, err := file.Seek(consumed, io.SeekStart); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}
	return nil
}

// readLongLine finishes a line longer than the reader buffer, then resumes
// scanning after it. Lines beyond maxLineBytes are an error.
func readLongLine(file *os.File, reader *bufio.Reader, consumed int64, head []byte, fn func(string)) error {
	buf := append([]byte(nil), head...)
	for {
		more, err := reader.ReadSlice('\n')
		buf = append(buf, more...)
		if len(buf) > maxLineBytes {
			return fmt.Errorf("read log file: line exceeds %d bytes", maxLineBytes)
		}
		switch {
		case err == nil:
			fn(string(buf[:len(buf)-1]))
			if _, err := file.Seek(consumed+int64(len(buf)), io.SeekStart); err != nil {
				return fmt.Errorf("seek log file: %w", err)
			}
			return scan(file, fn)
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if _, err := file.Seek(consumed, io.SeekStart); err != nil {
				return fmt.Errorf("seek log file: %w", err)
			}
			return nil
		default:
			return fmt.Errorf("read log file: %w", err)
		}
	}
}
