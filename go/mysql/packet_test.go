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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packetwire/mysqlwire/go/mysql/charset"
	"github.com/packetwire/mysqlwire/go/mysql/sqlerror"
)

// framed wraps a payload in a frame header so tests can hand literal
// payloads to NewPacket.
func framed(seq uint8, payload []byte) *Packet {
	p := NewPacketBuffer(seq, len(payload))
	p.WriteBytes(payload)
	p.WriteHeader(seq)
	p.Reset()
	return p
}

func TestPacketWindow(t *testing.T) {
	p := framed(3, []byte{0x01, 0x02, 0x03})
	assert.Equal(t, 7, p.Length())
	assert.Equal(t, 4, p.Offset())
	assert.True(t, p.HaveMoreData())
	assert.Equal(t, uint8(3), p.SequenceID)
	assert.Equal(t, 1, p.NumPackets)

	_, err := p.ReadBytes(3)
	require.NoError(t, err)
	assert.False(t, p.HaveMoreData())
	assert.Equal(t, 7, p.Offset())

	p.Reset()
	assert.Equal(t, 4, p.Offset())
	assert.True(t, p.HaveMoreData())
}

func TestPacketReadPastEnd(t *testing.T) {
	p := framed(0, []byte{0x01})
	_, err := p.ReadUint32()
	require.Error(t, err)
	sqlErr, ok := err.(*sqlerror.SQLError)
	require.True(t, ok)
	assert.Equal(t, sqlerror.CRMalformedPacket, sqlErr.Number())
}

func TestPacketReadWriteRoundTrip(t *testing.T) {
	p := NewPacketBuffer(0, 64)
	p.WriteByte(0x7f)
	p.WriteUint16(0x1234)
	p.WriteUint24(0x056789)
	p.WriteUint32(0xdeadbeef)
	p.WriteUint64(0x0123456789abcdef)
	p.WriteFloat64(2.5)
	p.WriteLenEncString("hi")
	p.WriteNull()
	p.WriteHeader(1)

	p.Reset()
	b, err := p.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x7f), b)

	v16, err := p.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v16)

	v24, err := p.ReadUint24()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x056789), v24)

	v32, err := p.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v32)

	v64, err := p.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0123456789abcdef), v64)

	f, err := p.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	s, null, err := p.ReadLenEncString(charset.NameUtf8)
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, "hi", s)

	_, null, err = p.ReadLenEncInt()
	require.NoError(t, err)
	assert.True(t, null)
}

func TestPacketSignedReaders(t *testing.T) {
	p := framed(0, []byte{0xfe, 0xfe, 0xff, 0xff, 0xff, 0xff, 0xff})
	v8, err := p.ReadInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-2), v8)

	v16, err := p.ReadInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(-2), v16)

	v32, err := p.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v32)
}

func TestReadLenEncIntSigned(t *testing.T) {
	// -2 in the 8-byte form
	p := framed(0, []byte{0xfe, 0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	v, null, err := p.ReadLenEncIntSigned()
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, int64(-2), v)
}

func TestWriteLenEncIntForms(t *testing.T) {
	// The writer picks the narrowest form; values above the 3-byte
	// range jump to the 8-byte form.
	testcases := []struct {
		value uint64
		want  []byte
	}{
		{value: 5, want: []byte{0x05}},
		{value: 251, want: []byte{0xfc, 0xfb, 0x00}},
		{value: 10000, want: []byte{0xfc, 0x10, 0x27}},
		{value: 1 << 16, want: []byte{0xfd, 0x00, 0x00, 0x01}},
		{value: 1 << 24, want: []byte{0xfe, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}},
	}
	for _, tc := range testcases {
		p := NewPacketBuffer(0, 9)
		p.WriteLenEncInt(tc.value)
		assert.Equal(t, tc.want, p.Slice()[4:4+len(tc.want)], "value %d", tc.value)
		assert.Equal(t, len(tc.want), LenEncIntSize(tc.value))
	}
}

func TestWriteLenEncDecimal(t *testing.T) {
	p := NewPacketBuffer(0, 9)
	require.NoError(t, p.WriteLenEncDecimal("18446744073709551615"))
	p.Reset()
	v, null, err := p.ReadLenEncInt()
	require.NoError(t, err)
	require.False(t, null)
	assert.Equal(t, uint64(18446744073709551615), v)

	p = NewPacketBuffer(0, 9)
	err = p.WriteLenEncDecimal("18446744073709551616")
	require.Error(t, err)
	assert.Equal(t, sqlerror.CRMalformedPacket, err.(*sqlerror.SQLError).Number())
	require.Error(t, p.WriteLenEncDecimal("twelve"))
	require.Error(t, p.WriteLenEncDecimal("-1"))
}

func TestLenEncStringSizeHelper(t *testing.T) {
	assert.Equal(t, 6, LenEncStringSize("hello"))
	assert.Equal(t, 1, LenEncStringSize(""))
}

func TestWriteHeader(t *testing.T) {
	p := NewPacketBuffer(0, 300)
	p.WriteHeader(5)
	hdr := p.Slice()[:4]
	assert.Equal(t, []byte{0x2c, 0x01, 0x00, 0x05}, hdr)
	assert.Equal(t, uint8(5), p.SequenceID)
}

func TestReadNullTerminatedString(t *testing.T) {
	p := framed(0, []byte{'a', 'b', 'c', 0x00, 'x'})
	s, err := p.ReadNullTerminatedString(charset.NameUtf8)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
	next, err := p.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8('x'), next)
}

func TestWriteDateRoundTrip(t *testing.T) {
	in := time.Date(2023, 6, 7, 8, 9, 10, 123456000, time.UTC)
	p := NewPacketBuffer(0, 12)
	p.WriteDate(in)
	p.Reset()
	dt, err := p.ReadBinaryDateTime()
	require.NoError(t, err)
	assert.Equal(t, in, dt.ToStdTime(time.UTC))
}

func TestBinaryDateTimeLiteral(t *testing.T) {
	// length prefix 0x0b, year 2020, month 1, day 2, 03:04:05 and a
	// full microsecond field that rolls into the next second.
	p := framed(0, []byte{
		0x0b,
		0xe4, 0x07, 0x01, 0x02, 0x03, 0x04, 0x05,
		0x40, 0x42, 0x0f, 0x00,
	})
	dt, err := p.ReadBinaryDateTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 2, 3, 4, 6, 0, time.UTC), dt.ToStdTime(time.UTC))
	assert.False(t, p.HaveMoreData())
}

func TestReadBinaryDateTimeStringDecimals(t *testing.T) {
	p := framed(0, []byte{
		0x0b,
		0xe4, 0x07, 0x01, 0x02, 0x03, 0x04, 0x05,
		0x40, 0xe2, 0x01, 0x00,
	})
	s, err := p.ReadBinaryDateTimeString(2)
	require.NoError(t, err)
	assert.Equal(t, "2020-01-02 03:04:05.12", s)
}

func TestReadBinaryTime(t *testing.T) {
	p := framed(0, []byte{
		0x0c,
		0x01,
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x03, 0x04,
		0x20, 0xa1, 0x07, 0x00,
	})
	tm, err := p.ReadBinaryTime()
	require.NoError(t, err)
	assert.Equal(t, "-26:03:04.500000", tm.String())
}

func TestMarkers(t *testing.T) {
	eof := framed(0, []byte{0xfe, 0x01, 0x00, 0x02, 0x00})
	assert.True(t, eof.IsEOF())
	assert.True(t, eof.IsAlt())
	assert.False(t, eof.IsError())
	assert.Equal(t, "EOF", eof.Type())

	warnings, status, err := eof.ReadEOF()
	require.NoError(t, err)
	assert.Equal(t, uint16(1), warnings)
	assert.Equal(t, uint16(2), status)

	// 0xfe with a frame of 13+ bytes is not an EOF
	alt := framed(0, append([]byte{0xfe}, make([]byte, 12)...))
	assert.False(t, alt.IsEOF())
	assert.True(t, alt.IsAlt())
	assert.Equal(t, "", alt.Type())

	errFrame := framed(0, []byte{0xff, 0x00, 0x00})
	assert.True(t, errFrame.IsError())
	assert.Equal(t, "Error", errFrame.Type())

	ok := framed(0, []byte{0x00, 0x00, 0x00, 0x02, 0x00})
	assert.Equal(t, "maybeOK", ok.Type())
}

func TestAsError(t *testing.T) {
	p := framed(0, []byte{
		0xff, 0x48, 0x04,
		0x23, '2', '8', '0', '0', '0',
		'B', 'a', 'd',
	})
	sqlErr := p.AsError(charset.NameUtf8)
	assert.Equal(t, 1096, sqlErr.Number())
	assert.Equal(t, "28000", sqlErr.SQLState())
	assert.Equal(t, "ER_NO_TABLES_USED", sqlErr.Code())
	assert.Contains(t, sqlErr.Error(), "Bad")
}

func TestAsErrorWithoutSQLState(t *testing.T) {
	// pre-4.1 servers skip the '#'-prefixed state block
	p := framed(0, []byte{0xff, 0x48, 0x04, 'B', 'a', 'd'})
	sqlErr := p.AsError(charset.NameUtf8)
	assert.Equal(t, 1096, sqlErr.Number())
	assert.Equal(t, "", sqlErr.SQLState())
	assert.Contains(t, sqlErr.Error(), "Bad")
}

func TestComStmtPrepare(t *testing.T) {
	p, err := ComStmtPreparePacket("SELECT 1", charset.NameUtf8)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x09, 0x00, 0x00, 0x00,
		0x16,
		0x53, 0x45, 0x4c, 0x45, 0x43, 0x54, 0x20, 0x31,
	}, p.Slice())
	assert.Equal(t, uint8(0), p.SequenceID)
}

func TestCommandPackets(t *testing.T) {
	p, err := ComQueryPacket("SELECT 1", charset.NameUtf8)
	require.NoError(t, err)
	assert.Equal(t, byte(ComQuery), p.Slice()[4])

	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, ComPing}, ComPingPacket().Slice())
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, ComQuit}, ComQuitPacket().Slice())

	p = ComInitDBPacket("test")
	assert.Equal(t, []byte{0x05, 0x00, 0x00, 0x00, ComInitDB, 't', 'e', 's', 't'}, p.Slice())
}

func TestParseColumnDefinition(t *testing.T) {
	p := NewPacketBuffer(0, 64)
	p.WriteLenEncString("def")
	p.WriteLenEncString("testdb")
	p.WriteLenEncString("t")
	p.WriteLenEncString("t_org")
	p.WriteLenEncString("a")
	p.WriteLenEncString("a_org")
	p.WriteLenEncInt(0x0c)
	p.WriteUint16(charset.Utf8mb4)
	p.WriteUint32(255)
	p.WriteByte(TypeVarString)
	p.WriteUint16(FlagNotNull)
	p.WriteByte(2)
	p.WriteUint16(0) // filler
	p.WriteHeader(0)
	p.Reset()

	f, err := p.ParseColumnDefinition()
	require.NoError(t, err)
	assert.Equal(t, "testdb", f.Schema)
	assert.Equal(t, "t", f.Table)
	assert.Equal(t, "t_org", f.OrgTable)
	assert.Equal(t, "a", f.Name)
	assert.Equal(t, "a_org", f.OrgName)
	assert.Equal(t, uint16(charset.Utf8mb4), f.CharacterSet)
	assert.Equal(t, uint32(255), f.ColumnLength)
	assert.Equal(t, uint8(TypeVarString), f.ColumnType)
	assert.Equal(t, "VAR_STRING", f.TypeName())
	assert.Equal(t, uint32(255), f.Length())
	assert.Equal(t, uint16(FlagNotNull), f.Flags)
	assert.Equal(t, uint8(2), f.Decimals)
	assert.Equal(t, "utf8mb4", f.Encoding())
	assert.False(t, f.IsUnsigned())
}
