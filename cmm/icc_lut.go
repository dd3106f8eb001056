package cmm

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// LUT is a decoded lut8Type ('mft1') or lut16Type ('mft2') tag.
// All table values are normalized to [0, 1].
type LUT struct {
	InputChannels  uint8
	OutputChannels uint8
	GridPoints     uint8
	Matrix         [9]float64
	InputTables    [][]float64
	CLUT           []float64
	OutputTables   [][]float64

	precision int // bytes per table entry, 1 for mft1 and 2 for mft2
}

func (p *ICCProfile) ReadLUTTag(sig string) (*LUT, error) {
	data, ok := p.GetTag(sig)
	if !ok {
		return nil, fmt.Errorf("tag %q not found", sig)
	}
	if len(data) < 8 {
		return nil, errors.New("tag too short")
	}
	switch string(data[0:4]) {
	case "mft1":
		return parseLUT(data, 1)
	case "mft2":
		return parseLUT(data, 2)
	}
	return nil, fmt.Errorf("unsupported LUT type %q", data[0:4])
}

// parseLUT decodes an mft1 (width 1) or mft2 (width 2) tag.
func parseLUT(data []byte, width int) (*LUT, error) {
	if len(data) < 48 {
		return nil, errors.New("LUT tag too short")
	}
	lut := &LUT{
		InputChannels:  data[8],
		OutputChannels: data[9],
		GridPoints:     data[10],
		precision:      width,
	}
	if lut.InputChannels == 0 || lut.OutputChannels == 0 || lut.GridPoints < 2 {
		return nil, errors.New("LUT tag has empty dimensions")
	}
	for i := range lut.Matrix {
		lut.Matrix[i] = s15Fixed16ToFloat(binary.BigEndian.Uint32(data[12+4*i : 16+4*i]))
	}

	inEntries, outEntries, offset := 256, 256, 48
	if width == 2 {
		if len(data) < 52 {
			return nil, errors.New("mft2 tag too short")
		}
		inEntries = int(binary.BigEndian.Uint16(data[48:50]))
		outEntries = int(binary.BigEndian.Uint16(data[50:52]))
		offset = 52
	}

	r := &tableReader{data: data, offset: offset, width: width}

	lut.InputTables = make([][]float64, lut.InputChannels)
	for c := range lut.InputTables {
		if lut.InputTables[c] = r.read(inEntries); lut.InputTables[c] == nil {
			return nil, errors.New("LUT input tables truncated")
		}
	}

	grid := 1
	for i := 0; i < int(lut.InputChannels); i++ {
		grid *= int(lut.GridPoints)
	}
	if lut.CLUT = r.read(grid * int(lut.OutputChannels)); lut.CLUT == nil {
		return nil, errors.New("LUT CLUT truncated")
	}

	lut.OutputTables = make([][]float64, lut.OutputChannels)
	for c := range lut.OutputTables {
		if lut.OutputTables[c] = r.read(outEntries); lut.OutputTables[c] == nil {
			return nil, errors.New("LUT output tables truncated")
		}
	}
	return lut, nil
}

type tableReader struct {
	data   []byte
	offset int
	width  int
}

// read returns n normalized entries, or nil if the data runs out.
func (r *tableReader) read(n int) []float64 {
	if n <= 0 || r.offset+n*r.width > len(r.data) {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		if r.width == 1 {
			out[i] = float64(r.data[r.offset]) / 255.0
		} else {
			out[i] = float64(binary.BigEndian.Uint16(r.data[r.offset:])) / 65535.0
		}
		r.offset += r.width
	}
	return out
}

// Convert runs matrix (3-channel input only), input curves, CLUT and output
// curves in that order.
func (lut *LUT) Convert(in []float64) ([]float64, error) {
	if len(in) != int(lut.InputChannels) {
		return nil, errors.New("input channels mismatch")
	}

	temp := make([]float64, len(in))
	copy(temp, in)
	if lut.InputChannels == 3 {
		copy(temp, mulMatrix(lut.Matrix, temp[0], temp[1], temp[2]))
	}
	for c := range temp {
		temp[c] = interp1D(temp[c], lut.InputTables[c])
	}

	clutOut := interpCLUT(temp, lut.CLUT, int(lut.OutputChannels), int(lut.GridPoints))

	out := make([]float64, lut.OutputChannels)
	for c := range out {
		out[c] = interp1D(clutOut[c], lut.OutputTables[c])
	}
	return out, nil
}

func interp1D(val float64, table []float64) float64 {
	if val <= 0 {
		return table[0]
	}
	if val >= 1 {
		return table[len(table)-1]
	}
	f := val * float64(len(table)-1)
	idx := int(f)
	frac := f - float64(idx)
	return table[idx]*(1-frac) + table[idx+1]*frac
}

// interpCLUT does multilinear interpolation over a grid with any number of
// input dimensions. The first dimension varies least rapidly.
func interpCLUT(in []float64, clut []float64, outCh, gridPoints int) []float64 {
	n := len(in)
	base := make([]int, n)
	frac := make([]float64, n)
	strides := make([]int, n)

	stride := outCh
	for i := n - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= gridPoints

		v := min(1, max(0, in[i])) * float64(gridPoints-1)
		b := min(int(v), gridPoints-2)
		base[i] = b
		frac[i] = v - float64(b)
	}

	out := make([]float64, outCh)
	for corner := 0; corner < 1<<n; corner++ {
		weight := 1.0
		offset := 0
		for i := 0; i < n; i++ {
			idx := base[i]
			if corner&(1<<(n-1-i)) != 0 {
				idx++
				weight *= frac[i]
			} else {
				weight *= 1 - frac[i]
			}
			offset += idx * strides[i]
		}
		if weight == 0 {
			continue
		}
		for c := 0; c < outCh; c++ {
			out[c] += weight * clut[offset+c]
		}
	}
	return out
}
