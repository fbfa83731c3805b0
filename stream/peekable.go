package stream

import (
	"errors"
	"io"
)

// MaxRewind is the largest payload any token in this library's binary
// format can have (opcode 4B + symbolRef 8B, the SymbolicToken case), and
// therefore the smallest history buffer Peekable needs to support
// returnTo/rewindBy for every token variant.
const MaxRewind = 12

// Peekable wraps a forward-only io.Reader (e.g. stdin, a network
// connection) and buffers the last MaxRewind bytes read, so that RewindBy
// can reconstruct bytes the underlying reader cannot itself seek back
// over. Writes are not supported: Peekable is a read side adapter.
type Peekable struct {
	name    string
	r       io.Reader
	history []byte // up to MaxRewind most-recently-consumed bytes, oldest first
	pending []byte // bytes rewound and not yet replayed
	ended   bool
}

// NewPeekable wraps r, naming the resulting stream name for diagnostics.
func NewPeekable(name string, r io.Reader) *Peekable {
	return &Peekable{name: name, r: r}
}

func (p *Peekable) Name() string { return p.name }

func (p *Peekable) Read(buf []byte) (int, error) {
	total := 0
	if len(p.pending) > 0 {
		n := copy(buf, p.pending)
		p.pending = p.pending[n:]
		p.remember(buf[:n])
		total += n
	}
	for total < len(buf) && !p.ended {
		n, err := p.r.Read(buf[total:])
		if n > 0 {
			p.remember(buf[total : total+n])
			total += n
		}
		if err == io.EOF {
			p.ended = true
		} else if err != nil {
			return total, err
		} else if n == 0 {
			break
		}
	}
	return total, nil
}

func (p *Peekable) remember(b []byte) {
	p.history = append(p.history, b...)
	if len(p.history) > MaxRewind {
		p.history = p.history[len(p.history)-MaxRewind:]
	}
}

// Write is unsupported: Peekable only adapts a read side.
func (p *Peekable) Write(buf []byte) (int, error) {
	return 0, errUnsupportedWrite
}

var errUnsupportedWrite = errors.New("stream: peekable is read-only")

func (p *Peekable) RewindBy(n int) error {
	if n == 0 {
		return nil
	}
	if n < 0 || n > len(p.history) {
		return ErrRewindTooFar
	}

	cut := len(p.history) - n
	rewound := p.history[cut:]
	p.history = p.history[:cut]
	p.pending = append(append([]byte{}, rewound...), p.pending...)
	p.ended = false
	return nil
}

func (p *Peekable) HasEnded() bool {
	return p.ended && len(p.pending) == 0
}
