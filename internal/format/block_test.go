package format

import (
	"errors"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	buf := make([]byte, 3*HeaderSize)
	want := Header{Size: 48, Free: true, Next: 96, Prev: NoBlock}
	WriteHeader(buf, HeaderSize, want)

	got := ReadHeader(buf, HeaderSize)
	if got != want {
		t.Fatalf("ReadHeader = %+v, want %+v", got, want)
	}
	if got.End(HeaderSize) != 2*HeaderSize+48 {
		t.Fatalf("End = %d", got.End(HeaderSize))
	}

	want.Free = false
	WriteHeader(buf, HeaderSize, want)
	if ReadU64(buf, HeaderSize+FlagsOffset) != 0 {
		t.Fatalf("flags not cleared")
	}
}

func TestCheckHeaderTruncated(t *testing.T) {
	buf := make([]byte, HeaderSize+16)
	WriteHeader(buf, 0, Header{Size: 32, Next: NoBlock, Prev: NoBlock})
	if _, err := CheckHeader(buf, 0); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for oversized block, got %v", err)
	}
	if _, err := CheckHeader(buf, HeaderSize); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated for short header, got %v", err)
	}
	if _, err := CheckHeader(buf, uint64(len(buf))+1); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated past end, got %v", err)
	}
}

func TestCheckHeaderMisaligned(t *testing.T) {
	buf := make([]byte, HeaderSize+32)
	WriteHeader(buf, 0, Header{Size: 8, Next: NoBlock, Prev: NoBlock})
	if _, err := CheckHeader(buf, 0); !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned, got %v", err)
	}
	WriteHeader(buf, 0, Header{Size: 32, Next: NoBlock, Prev: NoBlock})
	if _, err := CheckHeader(buf, 0); err != nil {
		t.Fatalf("CheckHeader: %v", err)
	}
}
