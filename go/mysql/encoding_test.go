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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenEncIntOneByteForms(t *testing.T) {
	// Every tag byte up to 0xfa encodes itself in one byte.
	for b := 0; b <= 0xfa; b++ {
		data := make([]byte, 9)
		pos := writeLenEncInt(data, 0, uint64(b))
		require.Equal(t, 1, pos, "value %#x", b)

		v, null, pos, ok := readLenEncInt(data, 0)
		require.True(t, ok)
		require.False(t, null)
		require.Equal(t, 1, pos)
		require.Equal(t, uint64(b), v, "value %#x", b)
	}
}

func TestLenEncIntRoundTrip(t *testing.T) {
	testcases := []struct {
		value uint64
		size  int
	}{
		{value: 0, size: 1},
		{value: 250, size: 1},
		{value: 251, size: 3},
		{value: 10000, size: 3},
		{value: 1<<16 - 1, size: 3},
		{value: 1 << 16, size: 4},
		{value: 1<<24 - 1, size: 4},
		{value: 1 << 24, size: 9},
		{value: 1 << 53, size: 9},
		{value: 1<<64 - 1, size: 9},
	}
	for _, tc := range testcases {
		data := make([]byte, 9)
		end := writeLenEncInt(data, 0, tc.value)
		assert.Equal(t, lenEncIntSize(tc.value), end, "size vs write, value %d", tc.value)

		v, null, pos, ok := readLenEncInt(data, 0)
		require.True(t, ok, "value %d", tc.value)
		require.False(t, null)
		assert.Equal(t, end, pos)
		assert.Equal(t, tc.value, v)
	}
}

func TestLenEncIntLiteralForms(t *testing.T) {
	// one-byte form
	v, null, pos, ok := readLenEncInt([]byte{0x05}, 0)
	require.True(t, ok)
	require.False(t, null)
	assert.Equal(t, uint64(5), v)
	assert.Equal(t, 1, pos)

	// NULL marker
	_, null, pos, ok = readLenEncInt([]byte{0xfb}, 0)
	require.True(t, ok)
	assert.True(t, null)
	assert.Equal(t, 1, pos)

	// three-byte form
	v, null, pos, ok = readLenEncInt([]byte{0xfd, 0x10, 0x27, 0x00}, 0)
	require.True(t, ok)
	require.False(t, null)
	assert.Equal(t, uint64(10000), v)
	assert.Equal(t, 4, pos)
}

func TestLenEncIntMalformed(t *testing.T) {
	// 0xff is never a valid length-coded tag.
	_, _, _, ok := readLenEncInt([]byte{0xff, 0x00}, 0)
	assert.False(t, ok)

	// truncated wide forms
	for _, data := range [][]byte{
		{0xfc, 0x01},
		{0xfd, 0x01, 0x02},
		{0xfe, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
		{},
	} {
		_, _, _, ok := readLenEncInt(data, 0)
		assert.False(t, ok, "data %v", data)
	}
}

func TestLenEncBytes(t *testing.T) {
	data := make([]byte, 16)
	end := writeLenEncBytes(data, 0, []byte("abc"))
	require.Equal(t, 4, end)

	b, null, pos, ok := readLenEncBytes(data, 0)
	require.True(t, ok)
	require.False(t, null)
	assert.Equal(t, []byte("abc"), b)
	assert.Equal(t, 4, pos)

	// NULL cell
	end = writeLenEncNull(data, 0)
	require.Equal(t, 1, end)
	b, null, _, ok = readLenEncBytes(data, 0)
	require.True(t, ok)
	assert.True(t, null)
	assert.Nil(t, b)

	// empty string
	end = writeLenEncBytes(data, 0, nil)
	require.Equal(t, 1, end)
	b, null, pos, ok = readLenEncBytes(data, 0)
	require.True(t, ok)
	require.False(t, null)
	assert.Empty(t, b)
	assert.Equal(t, 1, pos)

	// declared length past the end of the buffer
	_, _, _, ok = readLenEncBytes([]byte{0x05, 'a'}, 0)
	assert.False(t, ok)
}

func TestLenEncStringSize(t *testing.T) {
	assert.Equal(t, 6, lenEncStringSize("hello"))
	assert.Equal(t, 1, lenEncStringSize(""))
}

func TestSkipLenEncBytes(t *testing.T) {
	data := make([]byte, 16)
	end := writeLenEncBytes(data, 0, []byte("abcd"))
	pos, ok := skipLenEncBytes(data[:end], 0)
	require.True(t, ok)
	assert.Equal(t, end, pos)

	pos, ok = skipLenEncBytes([]byte{0xfb}, 0)
	require.True(t, ok)
	assert.Equal(t, 1, pos)
}

func TestFixedWidthReaders(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	v16, pos, ok := readUint16(data, 0)
	require.True(t, ok)
	assert.Equal(t, uint16(0x0201), v16)
	assert.Equal(t, 2, pos)

	v24, pos, ok := readUint24(data, 0)
	require.True(t, ok)
	assert.Equal(t, uint32(0x030201), v24)
	assert.Equal(t, 3, pos)

	v32, pos, ok := readUint32(data, 0)
	require.True(t, ok)
	assert.Equal(t, uint32(0x04030201), v32)
	assert.Equal(t, 4, pos)

	v64, pos, ok := readUint64(data, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(0x0807060504030201), v64)
	assert.Equal(t, 8, pos)

	_, _, ok = readUint64(data, 1)
	assert.False(t, ok)
}

func TestFloatRoundTrip(t *testing.T) {
	data := make([]byte, 8)
	writeFloat64(data, 0, -1234.5)
	v, pos, ok := readFloat64(data, 0)
	require.True(t, ok)
	assert.Equal(t, -1234.5, v)
	assert.Equal(t, 8, pos)
}

func TestReadNullString(t *testing.T) {
	s, pos, ok := readNullString([]byte{'a', 'b', 0x00, 'c'}, 0)
	require.True(t, ok)
	assert.Equal(t, "ab", s)
	assert.Equal(t, 3, pos)

	_, _, ok = readNullString([]byte{'a', 'b'}, 0)
	assert.False(t, ok)
}
