// Package identity produces the opaque identifiers used as record keys.
//
// An Identifier is 29 bytes drawn independently and uniformly at random. Its
// textual form is a checksummed, lowercase base32 string grouped in blocks of
// five characters (for example "2vxsx-fae..."), and is what travels over the
// HTTP and WhatsApp boundaries.
package identity

import (
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

// Size is the number of raw bytes in an Identifier.
const Size = 29

const (
	checksumSize = 4
	groupSize    = 5
)

// ErrInvalidIdentifier is returned when a textual identifier cannot be decoded.
var ErrInvalidIdentifier = errors.New("invalid identifier")

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Identifier is an opaque record key.
type Identifier [Size]byte

// Zero is the identifier with every byte unset. Generators never produce it
// except with negligible probability.
var Zero Identifier

// IsZero reports whether the identifier is unset.
func (id Identifier) IsZero() bool {
	return id == Zero
}

// String renders the checksummed textual form.
func (id Identifier) String() string {
	buf := make([]byte, checksumSize+Size)
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(id[:]))
	copy(buf[checksumSize:], id[:])

	raw := strings.ToLower(encoding.EncodeToString(buf))

	var sb strings.Builder
	sb.Grow(len(raw) + len(raw)/groupSize)
	for i := 0; i < len(raw); i += groupSize {
		if i > 0 {
			sb.WriteByte('-')
		}
		end := min(i+groupSize, len(raw))
		sb.WriteString(raw[i:end])
	}
	return sb.String()
}

// ParseIdentifier decodes the textual form produced by Identifier.String.
func ParseIdentifier(text string) (Identifier, error) {
	var id Identifier

	cleaned := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(text), "-", ""))
	if cleaned == "" {
		return id, fmt.Errorf("%w: empty value", ErrInvalidIdentifier)
	}

	buf, err := encoding.DecodeString(cleaned)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrInvalidIdentifier, err)
	}
	if len(buf) != checksumSize+Size {
		return id, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidIdentifier, checksumSize+Size, len(buf))
	}

	copy(id[:], buf[checksumSize:])
	if binary.BigEndian.Uint32(buf[:checksumSize]) != crc32.ChecksumIEEE(id[:]) {
		return Identifier{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidIdentifier)
	}

	return id, nil
}

// MarshalText implements encoding.TextMarshaler so identifiers serialize as strings.
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identifier) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentifier(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
