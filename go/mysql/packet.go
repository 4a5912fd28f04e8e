/*
Copyright 2023 The Mysqlwire Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package mysql

import (
	"strconv"
	"time"

	"github.com/packetwire/mysqlwire/go/mysql/charset"
	"github.com/packetwire/mysqlwire/go/mysql/datetime"
	"github.com/packetwire/mysqlwire/go/mysql/sqlerror"
)

// Packet is a stateful cursor over one frame window of a shared
// buffer. The window is [start, end); its first four bytes hold the
// frame header (length:u24le, sequenceId:u8) and the cursor starts
// right after it.
//
// The underlying buffer may be aliased by sibling packets and must
// not be mutated once published; all read paths return subslices or
// copies accordingly. Reads and writes advance the same offset, which
// stays within [start, end] for every successful operation.
type Packet struct {
	buf   []byte
	start int
	end   int
	pos   int

	// SequenceID is the frame's sequence number, modulo 256.
	SequenceID uint8

	// NumPackets counts the frames merged into this window when the
	// framer coalesced a multi-frame payload. At least 1.
	NumPackets int
}

// NewPacket wraps a frame window surfaced by the framer.
func NewPacket(sequenceID uint8, buf []byte, start, end int) *Packet {
	return &Packet{
		buf:        buf,
		start:      start,
		end:        end,
		pos:        start + packetHeaderSize,
		SequenceID: sequenceID,
		NumPackets: 1,
	}
}

// NewPacketBuffer allocates an outbound packet with room for
// payloadSize bytes after the frame header.
func NewPacketBuffer(sequenceID uint8, payloadSize int) *Packet {
	return NewPacket(sequenceID, make([]byte, packetHeaderSize+payloadSize), 0, packetHeaderSize+payloadSize)
}

// Reset rewinds the cursor to the first payload byte.
func (p *Packet) Reset() {
	p.pos = p.start + packetHeaderSize
}

// Length is the full window length, header included.
func (p *Packet) Length() int {
	return p.end - p.start
}

// Slice returns the window bytes, header included.
func (p *Packet) Slice() []byte {
	return p.buf[p.start:p.end]
}

// Offset returns the cursor position relative to the window start.
func (p *Packet) Offset() int {
	return p.pos - p.start
}

// HaveMoreData reports whether any payload bytes remain.
func (p *Packet) HaveMoreData() bool {
	return p.pos < p.end
}

// window returns the window bytes and the cursor position within
// them; the pure decoding functions operate on that pair.
func (p *Packet) window() ([]byte, int) {
	return p.buf[p.start:p.end], p.pos - p.start
}

func (p *Packet) seek(rel int) {
	p.pos = p.start + rel
}

func errMalformed() *sqlerror.SQLError {
	return sqlerror.NewMalformedPacketError("malformed packet")
}

//
// Readers. Each advances the cursor by the bytes consumed.
//

// ReadUint8 reads one unsigned byte.
func (p *Packet) ReadUint8() (uint8, error) {
	data, pos := p.window()
	v, pos, ok := readByte(data, pos)
	if !ok {
		return 0, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadInt8 reads one signed byte.
func (p *Packet) ReadInt8() (int8, error) {
	v, err := p.ReadUint8()
	return int8(v), err
}

// ReadUint16 reads a little-endian u16.
func (p *Packet) ReadUint16() (uint16, error) {
	data, pos := p.window()
	v, pos, ok := readUint16(data, pos)
	if !ok {
		return 0, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadInt16 reads a little-endian i16.
func (p *Packet) ReadInt16() (int16, error) {
	v, err := p.ReadUint16()
	return int16(v), err
}

// ReadUint24 reads a little-endian u24.
func (p *Packet) ReadUint24() (uint32, error) {
	data, pos := p.window()
	v, pos, ok := readUint24(data, pos)
	if !ok {
		return 0, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadUint32 reads a little-endian u32.
func (p *Packet) ReadUint32() (uint32, error) {
	data, pos := p.window()
	v, pos, ok := readUint32(data, pos)
	if !ok {
		return 0, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadInt32 reads a little-endian i32.
func (p *Packet) ReadInt32() (int32, error) {
	v, err := p.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a little-endian u64.
func (p *Packet) ReadUint64() (uint64, error) {
	data, pos := p.window()
	v, pos, ok := readUint64(data, pos)
	if !ok {
		return 0, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadInt64 reads a little-endian i64.
func (p *Packet) ReadInt64() (int64, error) {
	v, err := p.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a little-endian IEEE single.
func (p *Packet) ReadFloat32() (float32, error) {
	data, pos := p.window()
	v, pos, ok := readFloat32(data, pos)
	if !ok {
		return 0, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadFloat64 reads a little-endian IEEE double.
func (p *Packet) ReadFloat64() (float64, error) {
	data, pos := p.window()
	v, pos, ok := readFloat64(data, pos)
	if !ok {
		return 0, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadBytes reads size raw bytes as a subslice of the window.
func (p *Packet) ReadBytes(size int) ([]byte, error) {
	data, pos := p.window()
	v, pos, ok := readBytes(data, pos, size)
	if !ok {
		return nil, errMalformed()
	}
	p.seek(pos)
	return v, nil
}

// ReadLenEncInt reads a length-coded integer. null is set for the
// NULL marker. The signed interpretation of the 8-byte form is the
// caller's: lengths are always unsigned, so the codec hands back the
// raw uint64 and ReadLenEncIntSigned exists for the explicit
// signed-read paths.
func (p *Packet) ReadLenEncInt() (value uint64, null bool, err error) {
	data, pos := p.window()
	v, null, pos, ok := readLenEncInt(data, pos)
	if !ok {
		return 0, false, errMalformed()
	}
	p.seek(pos)
	return v, null, nil
}

// ReadLenEncIntSigned is ReadLenEncInt reinterpreting the 8-byte form
// as two's complement. The short forms are never negative.
func (p *Packet) ReadLenEncIntSigned() (value int64, null bool, err error) {
	v, null, err := p.ReadLenEncInt()
	return int64(v), null, err
}

// ReadLenEncBytes reads a length-coded length followed by that many
// raw bytes, aliased into the window. nil with null set is the NULL
// cell.
func (p *Packet) ReadLenEncBytes() (value []byte, null bool, err error) {
	data, pos := p.window()
	v, null, pos, ok := readLenEncBytes(data, pos)
	if !ok {
		return nil, false, errMalformed()
	}
	p.seek(pos)
	return v, null, nil
}

// ReadLenEncString reads a length-coded string decoded under the
// named character set.
func (p *Packet) ReadLenEncString(encodingName string) (value string, null bool, err error) {
	b, null, err := p.ReadLenEncBytes()
	if err != nil || null {
		return "", null, err
	}
	s, err := charset.Decode(encodingName, b)
	if err != nil {
		return "", false, errMalformed()
	}
	return s, false, nil
}

// ReadNullTerminatedString scans to the next 0x00, decodes the bytes
// before it under the named character set, and skips the terminator.
func (p *Packet) ReadNullTerminatedString(encodingName string) (string, error) {
	data, pos := p.window()
	raw, pos, ok := readNullString(data, pos)
	if !ok {
		return "", errMalformed()
	}
	p.seek(pos)
	s, err := charset.Decode(encodingName, []byte(raw))
	if err != nil {
		return "", errMalformed()
	}
	return s, nil
}

// ReadBinaryDateTime reads a one-byte length prefix and the binary
// DATETIME payload behind it.
func (p *Packet) ReadBinaryDateTime() (datetime.DateTime, error) {
	n, err := p.ReadUint8()
	if err != nil {
		return datetime.DateTime{}, err
	}
	payload, err := p.ReadBytes(int(n))
	if err != nil {
		return datetime.DateTime{}, err
	}
	dt, ok := datetime.DecodeBinary(payload)
	if !ok {
		return datetime.DateTime{}, errMalformed()
	}
	return dt, nil
}

// ReadBinaryDateTimeString reads a binary DATETIME payload and
// renders it as a string with the column's fractional digit count.
func (p *Packet) ReadBinaryDateTimeString(decimals uint8) (string, error) {
	n, err := p.ReadUint8()
	if err != nil {
		return "", err
	}
	payload, err := p.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	s, ok := datetime.FormatBinary(payload, decimals)
	if !ok {
		return "", errMalformed()
	}
	return s, nil
}

// ReadBinaryTime reads a one-byte length prefix and the binary TIME
// payload behind it.
func (p *Packet) ReadBinaryTime() (datetime.Time, error) {
	n, err := p.ReadUint8()
	if err != nil {
		return datetime.Time{}, err
	}
	payload, err := p.ReadBytes(int(n))
	if err != nil {
		return datetime.Time{}, err
	}
	t, ok := datetime.DecodeBinaryTime(payload)
	if !ok {
		return datetime.Time{}, errMalformed()
	}
	return t, nil
}

//
// Frame classification. The marker probes look at the payload byte
// under the cursor without consuming it.
//

// IsEOF reports whether this is an EOF frame: the 0xfe marker is only
// an EOF when the whole frame is shorter than 13 bytes, otherwise it
// is an 8-byte integer tag or an AuthSwitch request.
func (p *Packet) IsEOF() bool {
	return p.pos < p.end && p.buf[p.pos] == EOFPacket && p.Length() < 13
}

// IsError reports whether this is an error frame.
func (p *Packet) IsError() bool {
	return p.pos < p.end && p.buf[p.pos] == ErrPacket
}

// IsAlt reports whether the payload starts with the 0xfe marker
// regardless of frame length, which is how AuthSwitch requests
// present.
func (p *Packet) IsAlt() bool {
	return p.pos < p.end && p.buf[p.pos] == AuthSwitchRequestPacket
}

// Type names the frame kind for dispatching: "EOF", "Error",
// "maybeOK" for a leading zero byte, and "" otherwise.
func (p *Packet) Type() string {
	switch {
	case p.IsEOF():
		return "EOF"
	case p.IsError():
		return "Error"
	case p.pos < p.end && p.buf[p.pos] == OKPacket:
		return "maybeOK"
	default:
		return ""
	}
}

// ReadEOF consumes an EOF frame: marker, warning count, status flags.
func (p *Packet) ReadEOF() (warnings uint16, statusFlags uint16, err error) {
	if _, err = p.ReadUint8(); err != nil {
		return 0, 0, err
	}
	if warnings, err = p.ReadUint16(); err != nil {
		return 0, 0, err
	}
	if statusFlags, err = p.ReadUint16(); err != nil {
		return 0, 0, err
	}
	return warnings, statusFlags, nil
}

// AsError decodes an error frame: field count, 2-byte errno, the
// optional '#'-prefixed 5-byte SQLSTATE, then the message under the
// connection character set. Pre-4.1 servers omit the SQLSTATE block,
// in which case the whole remainder is the message.
func (p *Packet) AsError(encodingName string) *sqlerror.SQLError {
	if _, err := p.ReadUint8(); err != nil {
		return errMalformed()
	}
	errno, err := p.ReadUint16()
	if err != nil {
		return errMalformed()
	}
	state := ""
	if p.pos < p.end && p.buf[p.pos] == sqlStateMarker {
		p.pos++
		raw, err := p.ReadBytes(5)
		if err != nil {
			return errMalformed()
		}
		state = string(raw)
	}
	msg, err := charset.Decode(encodingName, p.buf[p.pos:p.end])
	if err != nil {
		return errMalformed()
	}
	p.pos = p.end
	// Pre-4.1 frames carry no SQLSTATE; keep it empty rather than
	// defaulting so callers can tell the difference.
	return &sqlerror.SQLError{Num: int(errno), State: state, Message: msg}
}

//
// Writers. Outbound packets are exclusively owned until handed to the
// framer, so writers advance the same cursor the readers use.
//

// WriteByte writes one byte.
func (p *Packet) WriteByte(v byte) {
	p.seek(writeByte(p.buf[p.start:p.end], p.pos-p.start, v))
}

// WriteUint16 writes a little-endian u16.
func (p *Packet) WriteUint16(v uint16) {
	p.seek(writeUint16(p.buf[p.start:p.end], p.pos-p.start, v))
}

// WriteUint24 writes a little-endian u24.
func (p *Packet) WriteUint24(v uint32) {
	p.seek(writeUint24(p.buf[p.start:p.end], p.pos-p.start, v))
}

// WriteUint32 writes a little-endian u32.
func (p *Packet) WriteUint32(v uint32) {
	p.seek(writeUint32(p.buf[p.start:p.end], p.pos-p.start, v))
}

// WriteUint64 writes a little-endian u64.
func (p *Packet) WriteUint64(v uint64) {
	p.seek(writeUint64(p.buf[p.start:p.end], p.pos-p.start, v))
}

// WriteFloat64 writes a little-endian IEEE double.
func (p *Packet) WriteFloat64(v float64) {
	p.seek(writeFloat64(p.buf[p.start:p.end], p.pos-p.start, v))
}

// WriteBytes writes raw bytes.
func (p *Packet) WriteBytes(b []byte) {
	p.pos += copy(p.buf[p.pos:p.end], b)
}

// WriteString writes raw string bytes, no length prefix.
func (p *Packet) WriteString(s string) {
	p.pos += copy(p.buf[p.pos:p.end], s)
}

// WriteNull writes the length-coded NULL marker.
func (p *Packet) WriteNull() {
	p.seek(writeLenEncNull(p.buf[p.start:p.end], p.pos-p.start))
}

// WriteLenEncInt writes n in the narrowest length-coded form; values
// above the 3-byte range use the 8-byte form.
func (p *Packet) WriteLenEncInt(n uint64) {
	p.seek(writeLenEncInt(p.buf[p.start:p.end], p.pos-p.start, n))
}

// WriteLenEncString writes a length-coded string.
func (p *Packet) WriteLenEncString(s string) {
	p.seek(writeLenEncString(p.buf[p.start:p.end], p.pos-p.start, s))
}

// WriteLenEncBytes writes a length-coded byte string.
func (p *Packet) WriteLenEncBytes(b []byte) {
	p.seek(writeLenEncBytes(p.buf[p.start:p.end], p.pos-p.start, b))
}

// WriteLenEncDecimal writes a decimal-string integer in the narrowest
// length-coded form, the path callers take for values they kept as
// exact strings. A string that does not denote an unsigned 64-bit
// integer is not representable in any length-coded form.
func (p *Packet) WriteLenEncDecimal(s string) error {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return sqlerror.NewMalformedPacketError("length-coded integer out of range: %q", s)
	}
	p.WriteLenEncInt(n)
	return nil
}

// WriteDate writes t as a length-prefixed 11-byte binary DATETIME,
// truncated to microseconds.
func (p *Packet) WriteDate(t time.Time) {
	p.WriteByte(11)
	p.WriteUint16(uint16(t.Year()))
	p.WriteByte(byte(t.Month()))
	p.WriteByte(byte(t.Day()))
	p.WriteByte(byte(t.Hour()))
	p.WriteByte(byte(t.Minute()))
	p.WriteByte(byte(t.Second()))
	p.WriteUint32(uint32(t.Nanosecond() / 1000))
}

// WriteHeader stamps the frame header at the window start without
// moving the cursor: payload length as u24le, then the sequence id.
func (p *Packet) WriteHeader(sequenceID uint8) {
	writeUint24(p.buf[p.start:p.end], 0, uint32(p.Length()-packetHeaderSize))
	p.buf[p.start+3] = sequenceID
	p.SequenceID = sequenceID
}

//
// Static size helpers, consistent with the writers above.
//

// LenEncIntSize returns the bytes WriteLenEncInt would consume for n.
func LenEncIntSize(n uint64) int {
	return lenEncIntSize(n)
}

// LenEncStringSize returns the bytes WriteLenEncString would consume
// for s.
func LenEncStringSize(s string) int {
	return lenEncStringSize(s)
}
