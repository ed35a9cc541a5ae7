package scene

import (
	"bufio"
	"io"
	"strconv"

	"gpu-raytracer/math"
)

// Format writes s in the scene text format, kinds in packing order.
// Parse(Format(s)) yields the same records.
func Format(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	for _, k := range Kinds {
		vecs := s.Vectors(k)
		width := k.Width()
		for r := 0; r < s.Records(k); r++ {
			bw.WriteByte(k.Marker())
			bw.WriteByte('\n')
			for _, v := range vecs[r*width : (r+1)*width] {
				writeVector(bw, v)
			}
		}
	}
	return bw.Flush()
}

func writeVector(bw *bufio.Writer, v math.Vec3) {
	for i, c := range v.Array() {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.FormatFloat(float64(c), 'g', -1, 32))
	}
	bw.WriteByte('\n')
}
