package transport

// Buffer is a fixed-capacity byte buffer with explicit read and write
// positions. Unread bytes live in buf[r:w]; free space is buf[w:].
// The capacity never changes after construction.
type Buffer struct {
	buf []byte
	r   int
	w   int
}

// NewBuffer allocates a buffer of the given capacity.
func NewBuffer(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return len(b.buf) }

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return b.w - b.r }

// Bytes returns the unread bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.buf[b.r:b.w] }

// Free returns the writable tail. The slice aliases the buffer.
func (b *Buffer) Free() []byte { return b.buf[b.w:] }

// Produce marks n bytes of the free tail as written.
func (b *Buffer) Produce(n int) {
	if n < 0 || b.w+n > len(b.buf) {
		panic("transport: buffer produce out of range")
	}
	b.w += n
}

// Consume marks n unread bytes as read. The positions rewind once the
// buffer is drained.
func (b *Buffer) Consume(n int) {
	if n < 0 || b.r+n > b.w {
		panic("transport: buffer consume out of range")
	}
	b.r += n
	if b.r == b.w {
		b.r, b.w = 0, 0
	}
}

// Compact moves the unread bytes to the front, reclaiming the space in front
// of them.
func (b *Buffer) Compact() {
	if b.r == 0 {
		return
	}
	n := copy(b.buf, b.buf[b.r:b.w])
	b.r, b.w = 0, n
}

// Reset discards everything.
func (b *Buffer) Reset() {
	b.r, b.w = 0, 0
}

// Read copies unread bytes into p and consumes them.
func (b *Buffer) Read(p []byte) int {
	n := copy(p, b.Bytes())
	b.Consume(n)
	return n
}

// Fill copies as much of p as fits into the free tail, compacting first.
func (b *Buffer) Fill(p []byte) int {
	if len(p) > len(b.Free()) {
		b.Compact()
	}
	n := copy(b.Free(), p)
	b.Produce(n)
	return n
}

// BufferPair holds the four buffers of a TLS connection.
type BufferPair struct {
	// AppRead holds decrypted bytes not yet delivered to the caller.
	AppRead *Buffer
	// AppWrite holds caller bytes not yet wrapped.
	AppWrite *Buffer
	// NetRead holds ciphertext read from the socket, not yet unwrapped.
	NetRead *Buffer
	// NetWrite holds ciphertext not yet flushed to the socket.
	NetWrite *Buffer
}

// NewBufferPair sizes the application buffers for one record of plaintext
// and the network buffers for one record on the wire.
func NewBufferPair(appSize, packetSize int) BufferPair {
	return BufferPair{
		AppRead:  NewBuffer(appSize),
		AppWrite: NewBuffer(appSize),
		NetRead:  NewBuffer(packetSize),
		NetWrite: NewBuffer(packetSize),
	}
}
