package matrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single text row. A row of "0.000 " values this long
// holds well over a hundred million columns.
const maxLineBytes = 1 << 30

// ReadText parses a matrix in the text format described in the package
// documentation. Rows may carry trailing whitespace. Missing rows or values,
// extra values on a row and unparsable numbers are errors; lines after the
// last row are ignored.
func ReadText(r io.Reader) (*Matrix[float32], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("matrix: reading header: %w", err)
		}
		return nil, fmt.Errorf("matrix: missing header line: %w", io.ErrUnexpectedEOF)
	}
	height, width, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	m, err := New[float32](height, width)
	if err != nil {
		return nil, err
	}

	for row := range height {
		line := row + 2
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("matrix: line %d: %w", line, err)
			}
			return nil, fmt.Errorf("matrix: expected %d rows, got %d: %w", height, row, io.ErrUnexpectedEOF)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != width {
			return nil, fmt.Errorf("matrix: line %d: expected %d values, got %d", line, width, len(fields))
		}
		dst := m.Row(row)
		for col, f := range fields {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("matrix: line %d, column %d: %w", line, col+1, err)
			}
			dst[col] = float32(v)
		}
	}
	return m, nil
}

// ReadHeader reads only the dimensions line of a text matrix.
func ReadHeader(r io.Reader) (height, width int, err error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, 0, fmt.Errorf("matrix: reading header: %w", err)
	}
	return parseHeader(line)
}

func parseHeader(line string) (height, width int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: header %q must be \"<height> <width>\"", ErrShape, line)
	}
	if height, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("matrix: header height: %w", err)
	}
	if width, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("matrix: header width: %w", err)
	}
	if height <= 0 || width <= 0 {
		return 0, 0, fmt.Errorf("%w: header declares %dx%d", ErrShape, height, width)
	}
	return height, width, nil
}

// WriteText writes m in the text format, each value with three decimals,
// values separated by single spaces and every row terminated by a newline.
func WriteText(w io.Writer, m *Matrix[float32]) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", m.Height(), m.Width()); err != nil {
		return err
	}

	buf := make([]byte, 0, 8*m.Width())
	for _, row := range m.Rows() {
		buf = buf[:0]
		for i, v := range row {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendFloat(buf, float64(v), 'f', 3, 32)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadFile reads a text matrix from path.
func LoadFile(path string) (*Matrix[float32], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ReadText(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// SaveFile writes m to path in the text format, truncating any existing file.
func SaveFile(path string, m *Matrix[float32]) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteText(f, m)
}
