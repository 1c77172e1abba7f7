/*package catalog reads and writes the whitespace-separated column tables used
for modis's input and output.
*/
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CommentString returns the header line describing the columns written by
// FormatCols. sizes gives the number of output columns taken up by each named
// column, so a block of n columns is labeled name(i-j).
func CommentString(
	intNames, floatNames []string, order, sizes []int,
) string {
	names := append(append([]string{}, intNames...), floatNames...)

	tokens := []string{"# Column contents:"}
	n := 0
	for _, idx := range order {
		if idx >= len(names) {
			panic("Column ordering out of range.")
		}

		if sizes[idx] == 1 {
			tokens = append(tokens, fmt.Sprintf("%s(%d)", names[idx], n))
		} else {
			tokens = append(tokens, fmt.Sprintf("%s(%d-%d)", names[idx],
				n, n+sizes[idx]-1))
		}
		n += sizes[idx]
	}

	return strings.Join(tokens, " ")
}

// FormatCols writes int and float columns as right-aligned text lines. order
// indexes into the int columns followed by the float columns.
func FormatCols(intCols [][]int, floatCols [][]float64, order []int) []string {
	if (len(intCols) == 0 && len(floatCols) == 0) ||
		(len(intCols) > 0 && len(intCols[0]) == 0) ||
		(len(floatCols) > 0 && len(floatCols[0]) == 0) {
		return []string{}
	}

	formatted := make([][]string, 0, len(intCols)+len(floatCols))
	for i := range intCols {
		formatted = append(formatted, formatCol(len(intCols[i]),
			func(j int) string { return strconv.Itoa(intCols[i][j]) }))
	}
	for i := range floatCols {
		formatted = append(formatted, formatCol(len(floatCols[i]),
			func(j int) string { return fmt.Sprintf("%.6g", floatCols[i][j]) }))
	}

	height := len(formatted[0])
	for i := range formatted {
		if len(formatted[i]) != height {
			panic("Columns of unequal height.")
		}
	}

	ordered := make([][]string, len(order))
	for i, idx := range order {
		if idx >= len(formatted) {
			panic("Column ordering out of range.")
		}
		ordered[i] = formatted[idx]
	}

	lines := make([]string, height)
	tokens := make([]string, len(ordered))
	for i := range lines {
		for j := range ordered { tokens[j] = ordered[j][i] }
		lines[i] = strings.Join(tokens, " ")
	}

	return lines
}

// formatCol right-aligns the n strings returned by str.
func formatCol(n int, str func(int) string) []string {
	out := make([]string, n)
	width := 0
	for i := range out {
		out[i] = str(i)
		if len(out[i]) > width { width = len(out[i]) }
	}
	for i := range out {
		out[i] = fmt.Sprintf("%*s", width, out[i])
	}
	return out
}

// Parse parses the specified columns in a byte block. Columns may be
// separated by any mix of spaces and tabs and everything after a '#' is
// ignored.
func Parse(data []byte, icolIdxs, fcolIdxs []int) (
[][]int, [][]float64, error,
) {
	lines := bytes.Split(data, []byte{'\n'})
	lines = uncomment(lines, '#')
	lines = trim(lines)
	return parse(lines, icolIdxs, fcolIdxs)
}

// ReadFile parses the specified columns of a text file.
func ReadFile(fname string, icolIdxs, fcolIdxs []int) (
[][]int, [][]float64, error,
) {
	data, err := os.ReadFile(fname)
	if err != nil { return nil, nil, err }
	icols, fcols, err := Parse(data, icolIdxs, fcolIdxs)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %s", fname, err.Error())
	}
	return icols, fcols, nil
}

// uncomment removes file comments in the form of "data # comment".
func uncomment(lines [][]byte, comm byte) [][]byte {
	for i, line := range lines {
		if start := bytes.IndexByte(line, comm); start != -1 {
			lines[i] = line[:start]
		}
	}
	return lines
}

// trim removes empty lines.
func trim(lines [][]byte) [][]byte {
	j := 0
	for i := range lines {
		if len(bytes.TrimSpace(lines[i])) > 0 {
			lines[j] = lines[i]
			j++
		}
	}
	return lines[:j]
}

func parse(lines [][]byte, icolIdxs, fcolIdxs []int) (
[][]int, [][]float64, error,
) {
	icols := make([][]int, len(icolIdxs))
	fcols := make([][]float64, len(fcolIdxs))

	for i := range icols { icols[i] = make([]int, len(lines)) }
	for i := range fcols { fcols[i] = make([]float64, len(lines)) }

	if len(lines) == 0 { return icols, fcols, nil }
	width := len(bytes.Fields(lines[0]))

	for _, idx := range append(append([]int{}, icolIdxs...), fcolIdxs...) {
		if idx >= width {
			return nil, nil, fmt.Errorf("Column %d was requested, but the " +
				"data only has %d columns.", idx, width)
		}
	}

	var err error
	for i, line := range lines {
		words := bytes.Fields(line)
		if len(words) != width {
			return nil, nil, fmt.Errorf(
				"Data (not file) line %d has %d columns, not %d.",
				i+1, len(words), width,
			)
		}

		for j := range icolIdxs {
			icols[j][i], err = strconv.Atoi(string(words[icolIdxs[j]]))
			if err != nil { return nil, nil, err }
		}
		for j := range fcolIdxs {
			fcols[j][i], err = strconv.ParseFloat(
				string(words[fcolIdxs[j]]), 64,
			)
			if err != nil { return nil, nil, err }
		}
	}

	return icols, fcols, nil
}
