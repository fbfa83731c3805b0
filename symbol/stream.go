package symbol

import (
	"encoding/binary"

	"github.com/circusmachina/libs-parsing/stream"
)

// Record layout, written without framing between records: a length-prefixed
// name, then scope (int32), category (uint32), then the parent reference
// (scope int32, index int32) — NoRef if the symbol has no parent.

func writeUint32(s stream.Stream, v uint32) error {
	var buf [4]byte
	binary.NativeEndian.PutUint32(buf[:], v)
	_, err := s.Write(buf[:])
	return err
}

func readUint32(s stream.Stream) (uint32, error) {
	var buf [4]byte
	if _, err := readFull(s, buf[:]); err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(buf[:]), nil
}

func writeInt32(s stream.Stream, v int32) error {
	return writeUint32(s, uint32(v))
}

func readInt32(s stream.Stream) (int32, error) {
	v, err := readUint32(s)
	return int32(v), err
}

func readFull(s stream.Stream, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := s.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

func writeName(s stream.Stream, name string) error {
	if err := writeUint32(s, uint32(len(name))); err != nil {
		return err
	}
	_, err := s.Write([]byte(name))
	return err
}

func readName(s stream.Stream) (string, error) {
	n, err := readUint32(s)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := readFull(s, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteTo serializes sym's record (name, scope, category, parent ref) to
// s. Symbol-table side data is otherwise unframed: records are written
// back to back.
func (s *FromSource) WriteTo(out stream.Stream) error {
	if err := writeName(out, s.Name); err != nil {
		return err
	}
	if err := writeInt32(out, s.Scope); err != nil {
		return err
	}
	if err := writeUint32(out, uint32(s.Category)); err != nil {
		return err
	}
	ref := s.ParentRef()
	if err := writeInt32(out, ref.Scope); err != nil {
		return err
	}
	return writeInt32(out, ref.Index)
}

// ReadRecalled reads one symbol record from s, reconstituting a Recalled
// symbol whose parent is a Ref rather than a direct pointer.
func ReadRecalled(s stream.Stream) (*Recalled, error) {
	name, err := readName(s)
	if err != nil {
		return nil, err
	}
	scope, err := readInt32(s)
	if err != nil {
		return nil, err
	}
	cat, err := readUint32(s)
	if err != nil {
		return nil, err
	}
	parentScope, err := readInt32(s)
	if err != nil {
		return nil, err
	}
	parentIndex, err := readInt32(s)
	if err != nil {
		return nil, err
	}

	return &Recalled{
		base:      base{Name: name, Scope: scope, Category: Category(cat), Index: -1},
		ParentRef: Ref{Scope: parentScope, Index: parentIndex},
	}, nil
}
