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

// Package datetime holds the wire representations of the MySQL
// temporal types and the decoders for both result protocols.
//
// The binary protocol ships DATETIME/TIMESTAMP/DATE as a
// length-discriminated struct (0, 4, 7 or 11 bytes) and TIME as a
// signed day/time struct (0, 8 or 12 bytes). The text protocol ships
// both as fixed-position ASCII.
package datetime

import (
	"encoding/binary"
	"time"
)

// Date is the calendar part of a MySQL temporal value.
type Date struct {
	year  uint16
	month uint8
	day   uint8
}

// Time is the clock part. hour already includes the day component of
// a MySQL TIME value (days*24 + hour), which can exceed 23.
type Time struct {
	neg    bool
	hour   uint32
	minute uint8
	second uint8
	micros uint32
}

// DateTime combines both parts. The zero DateTime stands for the
// all-zero wire value, which MySQL uses for invalid dates.
type DateTime struct {
	Date Date
	Time Time
}

func (d Date) Year() int  { return int(d.year) }
func (d Date) Month() int { return int(d.month) }
func (d Date) Day() int   { return int(d.day) }

func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

func (t Time) Neg() bool        { return t.neg }
func (t Time) Hour() int        { return int(t.hour) }
func (t Time) Minute() int      { return int(t.minute) }
func (t Time) Second() int      { return int(t.second) }
func (t Time) Microsecond() int { return int(t.micros) }

func (t Time) IsZero() bool {
	return !t.neg && t.hour == 0 && t.minute == 0 && t.second == 0 && t.micros == 0
}

// Millis is the numeric form of a TIME value: total signed
// milliseconds, with microseconds floored to the millisecond.
func (t Time) Millis() int64 {
	ms := int64(t.hour)*3600000 +
		int64(t.minute)*60000 +
		int64(t.second)*1000 +
		int64(t.micros)/1000
	if t.neg {
		return -ms
	}
	return ms
}

func (dt DateTime) IsZero() bool {
	return dt.Date.IsZero() && dt.Time.IsZero()
}

// ToStdTime converts to a wall-clock instant in loc. The zero
// DateTime converts to the zero time.Time, the in-band marker for an
// invalid date.
func (dt DateTime) ToStdTime(loc *time.Location) time.Time {
	if dt.IsZero() {
		return time.Time{}
	}
	return time.Date(dt.Date.Year(), time.Month(dt.Date.Month()), dt.Date.Day(),
		dt.Time.Hour(), dt.Time.Minute(), dt.Time.Second(),
		dt.Time.Microsecond()*1000, loc)
}

// FromStdTime is the inverse of ToStdTime, truncated to microseconds.
func FromStdTime(t time.Time) DateTime {
	return DateTime{
		Date: Date{year: uint16(t.Year()), month: uint8(t.Month()), day: uint8(t.Day())},
		Time: Time{
			hour:   uint32(t.Hour()),
			minute: uint8(t.Minute()),
			second: uint8(t.Second()),
			micros: uint32(t.Nanosecond() / 1000),
		},
	}
}

// DecodeBinary decodes the binary-protocol DATETIME/TIMESTAMP/DATE
// payload (without its length prefix). Valid lengths are 0, 4, 7 and
// 11; anything else fails. Length 0 and the all-zero payload both
// yield the zero DateTime.
func DecodeBinary(data []byte) (DateTime, bool) {
	var dt DateTime
	switch len(data) {
	case 0:
		return dt, true
	case 11:
		dt.Time.micros = binary.LittleEndian.Uint32(data[7:])
		fallthrough
	case 7:
		dt.Time.hour = uint32(data[4])
		dt.Time.minute = data[5]
		dt.Time.second = data[6]
		fallthrough
	case 4:
		dt.Date.year = binary.LittleEndian.Uint16(data)
		dt.Date.month = data[2]
		dt.Date.day = data[3]
		return dt, true
	default:
		return DateTime{}, false
	}
}

// DecodeBinaryTime decodes the binary-protocol TIME payload (without
// its length prefix): sign byte, u32 days, hour, minute, second and,
// in the 12-byte form, u32 microseconds. Length 0 means 00:00:00.
func DecodeBinaryTime(data []byte) (Time, bool) {
	var t Time
	switch len(data) {
	case 0:
		return t, true
	case 12:
		t.micros = binary.LittleEndian.Uint32(data[8:])
		fallthrough
	case 8:
		t.neg = data[0] == 1
		days := binary.LittleEndian.Uint32(data[1:])
		t.hour = days*24 + uint32(data[5])
		t.minute = data[6]
		t.second = data[7]
		return t, true
	default:
		return Time{}, false
	}
}

// FormatBinary decodes a binary DATETIME/DATE payload and renders it
// as a string, keeping the clock part only when the payload carries
// one. This is the dateStrings path, which never goes through a
// wall-clock instant.
func FormatBinary(data []byte, decimals uint8) (string, bool) {
	dt, ok := DecodeBinary(data)
	if !ok {
		return "", false
	}
	return string(dt.AppendFormat(nil, len(data) > 4, decimals)), true
}

// ParseText decodes a text-protocol DATE/DATETIME/TIMESTAMP cell:
// "YYYY-MM-DD" optionally followed by " HH:MM:SS" and ".ffffff". The
// parts sit at fixed offsets; the fraction may carry 1 to 6 digits.
func ParseText(b []byte) (DateTime, bool) {
	var dt DateTime
	if len(b) < 10 {
		return dt, false
	}
	y, ok := atoun(b[0:4])
	if !ok {
		return dt, false
	}
	mo, ok := atoun(b[5:7])
	if !ok {
		return dt, false
	}
	d, ok := atoun(b[8:10])
	if !ok {
		return dt, false
	}
	dt.Date.year = uint16(y)
	dt.Date.month = uint8(mo)
	dt.Date.day = uint8(d)
	if len(b) < 19 {
		return dt, true
	}
	h, ok := atoun(b[11:13])
	if !ok {
		return dt, false
	}
	mi, ok := atoun(b[14:16])
	if !ok {
		return dt, false
	}
	s, ok := atoun(b[17:19])
	if !ok {
		return dt, false
	}
	dt.Time.hour = h
	dt.Time.minute = uint8(mi)
	dt.Time.second = uint8(s)
	if len(b) > 20 {
		frac := b[20:]
		if len(frac) > 6 {
			frac = frac[:6]
		}
		us, ok := atoun(frac)
		if !ok {
			return dt, false
		}
		for i := len(frac); i < 6; i++ {
			us *= 10
		}
		dt.Time.micros = us
	}
	return dt, true
}

// AppendFormat appends "YYYY-MM-DD", with the clock part when
// withTime is set and the fraction truncated to decimals digits when
// decimals is nonzero. Microseconds are zero-padded to six digits
// before truncation.
func (dt DateTime) AppendFormat(b []byte, withTime bool, decimals uint8) []byte {
	b = appendInt(b, dt.Date.Year(), 4)
	b = append(b, '-')
	b = appendInt(b, dt.Date.Month(), 2)
	b = append(b, '-')
	b = appendInt(b, dt.Date.Day(), 2)
	if !withTime {
		return b
	}
	b = append(b, ' ')
	b = appendInt(b, dt.Time.Hour(), 2)
	b = append(b, ':')
	b = appendInt(b, dt.Time.Minute(), 2)
	b = append(b, ':')
	b = appendInt(b, dt.Time.Second(), 2)
	return appendFraction(b, dt.Time.Microsecond(), decimals)
}

// AppendFormat appends "-HH:MM:SS" with the fraction when the value
// carries microseconds. HH includes the day component and may exceed
// two digits.
func (t Time) AppendFormat(b []byte) []byte {
	if t.neg {
		b = append(b, '-')
	}
	b = appendInt(b, t.Hour(), 2)
	b = append(b, ':')
	b = appendInt(b, t.Minute(), 2)
	b = append(b, ':')
	b = appendInt(b, t.Second(), 2)
	if t.micros != 0 {
		b = appendFraction(b, t.Microsecond(), 6)
	}
	return b
}

func (dt DateTime) String() string {
	return string(dt.AppendFormat(nil, true, 6))
}

func (t Time) String() string {
	return string(t.AppendFormat(nil))
}

func appendFraction(b []byte, micros int, decimals uint8) []byte {
	if decimals == 0 {
		return b
	}
	if decimals > 6 {
		decimals = 6
	}
	var frac [6]byte
	for i := 5; i >= 0; i-- {
		frac[i] = byte('0' + micros%10)
		micros /= 10
	}
	b = append(b, '.')
	return append(b, frac[:decimals]...)
}

func appendInt(b []byte, v int, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	var tmp [10]byte
	i := len(tmp)
	for v > 0 || len(tmp)-i < width {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	return append(b, tmp[i:]...)
}

func atoun(b []byte) (uint32, bool) {
	var v uint32
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint32(c-'0')
	}
	return v, true
}
