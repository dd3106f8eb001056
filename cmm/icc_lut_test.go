package cmm

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestInterpCLUT3D(t *testing.T) {
	// 2x2x2 grid, output = x*10 + y*20 + z*40
	table := make([]float64, 8)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				table[x*4+y*2+z] = float64(x*10 + y*20 + z*40)
			}
		}
	}

	tests := []struct {
		in  []float64
		out float64
	}{
		{[]float64{0, 0, 0}, 0},
		{[]float64{1, 0, 0}, 10},
		{[]float64{0, 1, 0}, 20},
		{[]float64{0, 0, 1}, 40},
		{[]float64{1, 1, 1}, 70},
		{[]float64{0.5, 0, 0}, 5},
		{[]float64{0, 0.5, 0}, 10},
		{[]float64{0, 0, 0.5}, 20},
		{[]float64{0.5, 0.5, 0}, 15},
		{[]float64{0.5, 0.5, 0.5}, 35},
	}

	for _, tc := range tests {
		res := interpCLUT(tc.in, table, 1, 2)
		if len(res) != 1 {
			t.Errorf("Expected 1 output, got %d", len(res))
			continue
		}
		if math.Abs(res[0]-tc.out) > 0.001 {
			t.Errorf("Input %v: expected %v, got %v", tc.in, tc.out, res[0])
		}
	}
}

func TestInterpCLUT4D(t *testing.T) {
	// 2x2x2x2 grid with two outputs: sum and k channel
	table := make([]float64, 16*2)
	for i := 0; i < 16; i++ {
		c, m, y, k := (i>>3)&1, (i>>2)&1, (i>>1)&1, i&1
		table[2*i] = float64(c + m + y + k)
		table[2*i+1] = float64(k)
	}

	res := interpCLUT([]float64{0.5, 0.5, 0.5, 0.25}, table, 2, 2)
	if math.Abs(res[0]-1.75) > 1e-9 {
		t.Errorf("sum channel: expected 1.75, got %v", res[0])
	}
	if math.Abs(res[1]-0.25) > 1e-9 {
		t.Errorf("k channel: expected 0.25, got %v", res[1])
	}
}

func TestReadLUTTagMFT2(t *testing.T) {
	// 1 input, 1 output, 2 grid points, identity curves, inverted CLUT.
	tag := make([]byte, 52)
	copy(tag[0:4], "mft2")
	tag[8], tag[9], tag[10] = 1, 1, 2
	binary.BigEndian.PutUint16(tag[48:50], 2)
	binary.BigEndian.PutUint16(tag[50:52], 2)
	for _, v := range []uint16{0, 65535, 65535, 0, 0, 65535} {
		tag = binary.BigEndian.AppendUint16(tag, v)
	}

	p, err := NewICCProfile(buildProfile("GRAY", sigXYZ, []testTag{{"A2B0", tag}}))
	if err != nil {
		t.Fatalf("NewICCProfile failed: %v", err)
	}
	lut, err := p.ReadLUTTag("A2B0")
	if err != nil {
		t.Fatalf("ReadLUTTag failed: %v", err)
	}
	out, err := lut.Convert([]float64{0.25})
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if math.Abs(out[0]-0.75) > 0.001 {
		t.Errorf("expected 0.75, got %f", out[0])
	}

	if _, err := p.ReadLUTTag("B2A0"); err == nil {
		t.Error("expected error for missing tag")
	}
}
