package compute

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPadSPIRV(t *testing.T) {
	for n := 1; n <= 9; n++ {
		blob := bytes.Repeat([]byte{0xAB}, n)
		padded := padSPIRV(append([]byte(nil), blob...))

		if len(padded)%4 != 0 {
			t.Fatalf("padSPIRV(len %d) length = %d, not a multiple of 4", n, len(padded))
		}
		if len(padded)-n >= 4 {
			t.Fatalf("padSPIRV(len %d) added %d bytes, want < 4", n, len(padded)-n)
		}
		if !bytes.Equal(padded[:n], blob) {
			t.Fatalf("padSPIRV(len %d) altered the blob content", n)
		}
		for _, b := range padded[n:] {
			if b != 0 {
				t.Fatalf("padSPIRV(len %d) padding byte = %#x, want 0", n, b)
			}
		}
	}
}

func TestPadSPIRVAlreadyAligned(t *testing.T) {
	blob := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if got := padSPIRV(blob); len(got) != 8 {
		t.Errorf("padSPIRV(aligned) length = %d, want 8", len(got))
	}
}

func TestSpirvWords(t *testing.T) {
	// SPIR-V magic number in little-endian byte order.
	blob := []byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00}
	words := spirvWords(blob)
	if len(words) != 2 {
		t.Fatalf("spirvWords() length = %d, want 2", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("spirvWords()[0] = %#x, want 0x07230203", words[0])
	}
}

func TestLoadKernel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.spv")
	if err := os.WriteFile(path, []byte{1, 2, 3, 4, 5}, 0o644); err != nil {
		t.Fatal(err)
	}

	blob, err := LoadKernel(path)
	if err != nil {
		t.Fatalf("LoadKernel() error = %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 0, 0, 0}
	if !bytes.Equal(blob, want) {
		t.Errorf("LoadKernel() = %v, want %v", blob, want)
	}
}

func TestLoadKernelMissing(t *testing.T) {
	if _, err := LoadKernel(filepath.Join(t.TempDir(), "nope.spv")); err == nil {
		t.Error("LoadKernel() succeeded for a missing file")
	}
}

func TestLoadKernelEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.spv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKernel(path); !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("LoadKernel(empty) error = %v, want ErrEmptyKernel", err)
	}
}
