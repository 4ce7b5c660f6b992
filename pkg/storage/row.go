package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255

	idOffset       = 0
	usernameOffset = idOffset + IDSize
	emailOffset    = usernameOffset + UsernameSize

	// RowSize is the serialized size of every row, whatever its text lengths
	RowSize = IDSize + UsernameSize + EmailSize
)

var (
	ErrFieldTooLong = errors.New("row field exceeds column size")
	ErrInvalidText  = errors.New("row text is not valid utf-8")
	ErrRowDecode    = errors.New("malformed row bytes")
)

// Row stand for one record of the users table
// Format: [ID: 4 bytes big-endian][Username: 32 bytes][Email: 255 bytes]
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// NewRow creates a row and checks the column sizes
func NewRow(id uint32, username, email string) (Row, error) {
	row := Row{ID: id, Username: username, Email: email}
	if err := row.Validate(); err != nil {
		return Row{}, err
	}
	return row, nil
}

// Validate checks the text fields are valid UTF-8 and fit their columns
func (r Row) Validate() error {
	if !utf8.ValidString(r.Username) {
		return fmt.Errorf("username: %w", ErrInvalidText)
	}
	if !utf8.ValidString(r.Email) {
		return fmt.Errorf("email: %w", ErrInvalidText)
	}
	if len(r.Username) > UsernameSize {
		return fmt.Errorf("username is %d bytes, max %d: %w", len(r.Username), UsernameSize, ErrFieldTooLong)
	}
	if len(r.Email) > EmailSize {
		return fmt.Errorf("email is %d bytes, max %d: %w", len(r.Email), EmailSize, ErrFieldTooLong)
	}
	return nil
}

// SerializeInto writes the row into dst, which must be exactly RowSize bytes.
// Unused text bytes are zeroed, so dst may be a reused page slot.
func (r Row) SerializeInto(dst []byte) error {
	if len(dst) != RowSize {
		return fmt.Errorf("invalid row buffer size: %d, expected %d", len(dst), RowSize)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	binary.BigEndian.PutUint32(dst[idOffset:usernameOffset], r.ID)
	putText(dst[usernameOffset:emailOffset], r.Username)
	putText(dst[emailOffset:RowSize], r.Email)

	return nil
}

// EncodeRow serializes a row into a fresh RowSize buffer
func EncodeRow(r Row) ([]byte, error) {
	buf := make([]byte, RowSize)
	if err := r.SerializeInto(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeRow is the inverse of EncodeRow
func DecodeRow(data []byte) (Row, error) {
	if len(data) != RowSize {
		return Row{}, fmt.Errorf("row is %d bytes, expected %d: %w", len(data), RowSize, ErrRowDecode)
	}

	username, err := getText(data[usernameOffset:emailOffset])
	if err != nil {
		return Row{}, fmt.Errorf("username: %w", err)
	}

	email, err := getText(data[emailOffset:RowSize])
	if err != nil {
		return Row{}, fmt.Errorf("email: %w", err)
	}

	return Row{
		ID:       binary.BigEndian.Uint32(data[idOffset:usernameOffset]),
		Username: username,
		Email:    email,
	}, nil
}

// String renders the row the way select prints it
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

func putText(dst []byte, s string) {
	n := copy(dst, s)
	clear(dst[n:])
}

// getText reads up to the first zero byte
func getText(field []byte) (string, error) {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	if !utf8.Valid(field) {
		return "", fmt.Errorf("invalid utf-8 text: %w", ErrRowDecode)
	}
	return string(field), nil
}
