/*
Copyright 2024 The Mysqlwire Authors.

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

	"github.com/packetwire/mysqlwire/go/mysql/fastparse"
	"github.com/packetwire/mysqlwire/go/mysql/geometry"
	"github.com/packetwire/mysqlwire/go/sqltypes"
)

// maxExactUint is 2^53: the largest magnitude a float64 carries
// exactly, and therefore the cutoff for the big-number policies.
const maxExactUint = uint64(1) << 53

// binaryDecoder consumes one non-NULL binary-protocol cell from the
// packet and also returns the raw cell bytes for the cast hook.
type binaryDecoder func(p *Packet) (sqltypes.Value, []byte, error)

// compileBinaryDecoder picks the decoder for one column. Fixed-width
// cells read their exact width; everything else is a length-coded
// buffer.
func compileBinaryDecoder(f *Field, opts *RowOptions) binaryDecoder {
	unsigned := f.IsUnsigned()
	encodingName := f.Encoding()
	decimals := f.Decimals

	switch f.ColumnType {
	case TypeTiny:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, err := p.ReadBytes(1)
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			if unsigned {
				return sqltypes.NewUint64(uint64(raw[0])), raw, nil
			}
			return sqltypes.NewInt64(int64(int8(raw[0]))), raw, nil
		}
	case TypeShort, TypeYear:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, err := p.ReadBytes(2)
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			v := uint16(raw[0]) | uint16(raw[1])<<8
			if unsigned {
				return sqltypes.NewUint64(uint64(v)), raw, nil
			}
			return sqltypes.NewInt64(int64(int16(v))), raw, nil
		}
	case TypeLong, TypeInt24:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, err := p.ReadBytes(4)
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			v := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
			if unsigned {
				return sqltypes.NewUint64(uint64(v)), raw, nil
			}
			return sqltypes.NewInt64(int64(int32(v))), raw, nil
		}
	case TypeFloat:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			start := p.pos
			v, err := p.ReadFloat32()
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			return sqltypes.NewFloat64(float64(v)), p.buf[start:p.pos], nil
		}
	case TypeDouble:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			start := p.pos
			v, err := p.ReadFloat64()
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			return sqltypes.NewFloat64(v), p.buf[start:p.pos], nil
		}
	case TypeLongLong:
		return compileBinaryLongLong(unsigned, opts)
	case TypeDate, TypeNewDate, TypeDateTime, TypeTimestamp:
		if opts.DateStrings {
			return func(p *Packet) (sqltypes.Value, []byte, error) {
				start := p.pos
				s, err := p.ReadBinaryDateTimeString(decimals)
				if err != nil {
					return sqltypes.NULL, nil, err
				}
				return sqltypes.NewText(s), p.buf[start:p.pos], nil
			}
		}
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			start := p.pos
			dt, err := p.ReadBinaryDateTime()
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			return sqltypes.NewDate(dt), p.buf[start:p.pos], nil
		}
	case TypeTime:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			start := p.pos
			t, err := p.ReadBinaryTime()
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			return sqltypes.NewTime(t), p.buf[start:p.pos], nil
		}
	case TypeDecimal, TypeNewDecimal:
		if opts.DecimalNumbers {
			return func(p *Packet) (sqltypes.Value, []byte, error) {
				raw, null, err := p.ReadLenEncBytes()
				if err != nil || null {
					return sqltypes.NULL, nil, err
				}
				return sqltypes.NewFloat64(fastparse.ParseFloat(raw)), raw, nil
			}
		}
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, null, err := p.ReadLenEncBytes()
			if err != nil || null {
				return sqltypes.NULL, nil, err
			}
			return sqltypes.NewDecimal(string(raw)), raw, nil
		}
	case TypeGeometry:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, null, err := p.ReadLenEncBytes()
			if err != nil || null {
				return sqltypes.NULL, nil, err
			}
			return sqltypes.NewGeometry(geometry.Parse(raw)), raw, nil
		}
	case TypeJSON:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, null, err := p.ReadLenEncBytes()
			if err != nil || null {
				return sqltypes.NULL, nil, err
			}
			return textJSON(raw), raw, nil
		}
	case TypeNull:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			return sqltypes.NULL, nil, nil
		}
	default:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, null, err := p.ReadLenEncBytes()
			if err != nil || null {
				return sqltypes.NULL, nil, err
			}
			return decodeDefault(raw, encodingName), raw, nil
		}
	}
}

// compileBinaryLongLong resolves the 64-bit policy once per column:
// exact string, exact-if-possible, or the lossy double the legacy
// surface defaults to.
func compileBinaryLongLong(unsigned bool, opts *RowOptions) binaryDecoder {
	switch {
	case opts.SupportBigNumbers && opts.BigNumberStrings:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, err := p.ReadBytes(8)
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			v := leUint64(raw)
			if unsigned {
				return sqltypes.NewDecimal(strconv.FormatUint(v, 10)), raw, nil
			}
			return sqltypes.NewDecimal(strconv.FormatInt(int64(v), 10)), raw, nil
		}
	case opts.SupportBigNumbers:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, err := p.ReadBytes(8)
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			v := leUint64(raw)
			if unsigned {
				if v <= maxExactUint {
					return sqltypes.NewUint64(v), raw, nil
				}
				return sqltypes.NewDecimal(strconv.FormatUint(v, 10)), raw, nil
			}
			s := int64(v)
			if s >= -int64(maxExactUint) && s <= int64(maxExactUint) {
				return sqltypes.NewInt64(s), raw, nil
			}
			return sqltypes.NewDecimal(strconv.FormatInt(s, 10)), raw, nil
		}
	default:
		return func(p *Packet) (sqltypes.Value, []byte, error) {
			raw, err := p.ReadBytes(8)
			if err != nil {
				return sqltypes.NULL, nil, err
			}
			v := leUint64(raw)
			if unsigned {
				return sqltypes.NewFloat64(float64(v)), raw, nil
			}
			return sqltypes.NewFloat64(float64(int64(v))), raw, nil
		}
	}
}

func leUint64(b []byte) uint64 {
	_ = b[7] // early bounds check
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
