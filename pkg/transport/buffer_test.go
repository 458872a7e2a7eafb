package transport

import (
	"testing"
)

func TestBufferProduceConsume(t *testing.T) {
	b := NewBuffer(8)

	n := copy(b.Free(), "abcdef")
	b.Produce(n)
	if b.Len() != 6 || string(b.Bytes()) != "abcdef" {
		t.Fatalf("after produce: len %d bytes %q", b.Len(), b.Bytes())
	}

	b.Consume(4)
	if string(b.Bytes()) != "ef" {
		t.Errorf("after consume: %q", b.Bytes())
	}
	if len(b.Free()) != 2 {
		t.Errorf("free = %d, want 2 before compaction", len(b.Free()))
	}

	b.Compact()
	if string(b.Bytes()) != "ef" || len(b.Free()) != 6 {
		t.Errorf("after compact: %q free %d", b.Bytes(), len(b.Free()))
	}

	b.Consume(2)
	if b.Len() != 0 || len(b.Free()) != 8 {
		t.Errorf("draining must rewind: len %d free %d", b.Len(), len(b.Free()))
	}
	if b.Cap() != 8 {
		t.Errorf("Cap() = %d, want 8", b.Cap())
	}
}

func TestBufferReadFill(t *testing.T) {
	b := NewBuffer(4)

	if n := b.Fill([]byte("abcdef")); n != 4 {
		t.Fatalf("Fill() = %d, want 4", n)
	}

	p := make([]byte, 3)
	if n := b.Read(p); n != 3 || string(p) != "abc" {
		t.Fatalf("Read() = %d %q", n, p)
	}

	// Fill compacts to make room for the remaining byte plus new data.
	if n := b.Fill([]byte("xyz")); n != 3 {
		t.Fatalf("Fill() after partial read = %d, want 3", n)
	}
	if string(b.Bytes()) != "dxyz" {
		t.Errorf("Bytes() = %q, want %q", b.Bytes(), "dxyz")
	}
}

func TestBufferPanicsOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *Buffer)
	}{
		{"produce past capacity", func(b *Buffer) { b.Produce(5) }},
		{"consume past written", func(b *Buffer) { b.Consume(1) }},
		{"negative produce", func(b *Buffer) { b.Produce(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn(NewBuffer(4))
		})
	}
}

func TestNewBufferPair(t *testing.T) {
	p := NewBufferPair(16, 32)
	if p.AppRead.Cap() != 16 || p.AppWrite.Cap() != 16 {
		t.Errorf("application buffers: %d/%d", p.AppRead.Cap(), p.AppWrite.Cap())
	}
	if p.NetRead.Cap() != 32 || p.NetWrite.Cap() != 32 {
		t.Errorf("network buffers: %d/%d", p.NetRead.Cap(), p.NetWrite.Cap())
	}
}

func TestConnectionStateString(t *testing.T) {
	tests := []struct {
		state ConnectionState
		want  string
	}{
		{StateIdle, "IDLE"},
		{StateConnecting, "CONNECTING"},
		{StateOpen, "OPEN"},
		{StateClosed, "CLOSED"},
		{ConnectionState(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("ConnectionState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
