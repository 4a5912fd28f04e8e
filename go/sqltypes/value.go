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

// Package sqltypes holds Value, the tagged variant a decoded result
// cell becomes, and the row shapes assembled from it.
package sqltypes

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/twpayne/go-geom"

	"github.com/packetwire/mysqlwire/go/mysql/datetime"
)

// Kind discriminates the payload of a Value.
type Kind int8

const (
	// Null is the zero Kind; the zero Value is NULL.
	Null Kind = iota

	// Int64 is an exact signed integer.
	Int64

	// Uint64 is an exact unsigned integer.
	Uint64

	// Float64 holds FLOAT/DOUBLE cells and the lossy renditions of
	// integers too wide to stay exact.
	Float64

	// Decimal is an exact decimal string: DECIMAL cells, and 64-bit
	// integers outside the exact-float64 range under the big-number
	// options.
	Decimal

	// Text is a character cell decoded under its column charset.
	Text

	// Bytes is a raw binary cell.
	Bytes

	// Date is a DATETIME/TIMESTAMP/DATE cell as a wall-clock value.
	Date

	// Time is a TIME cell.
	Time

	// Geometry is a GEOMETRY cell.
	Geometry

	// JSON is a decoded JSON document.
	JSON
)

// Value is a single decoded cell. Exactly one payload field is
// meaningful, selected by kind. Values are immutable.
type Value struct {
	kind Kind
	num  uint64
	str  string
	raw  []byte
	dt   datetime.DateTime
	tm   datetime.Time
	obj  any
}

// NULL is the null Value.
var NULL = Value{}

// NewInt64 builds an Int64 Value.
func NewInt64(v int64) Value {
	return Value{kind: Int64, num: uint64(v)}
}

// NewUint64 builds a Uint64 Value.
func NewUint64(v uint64) Value {
	return Value{kind: Uint64, num: v}
}

// NewFloat64 builds a Float64 Value.
func NewFloat64(v float64) Value {
	return Value{kind: Float64, num: math.Float64bits(v)}
}

// NewDecimal builds a Decimal Value from an exact decimal string.
func NewDecimal(s string) Value {
	return Value{kind: Decimal, str: s}
}

// NewText builds a Text Value.
func NewText(s string) Value {
	return Value{kind: Text, str: s}
}

// NewBytes builds a Bytes Value. The slice is aliased, not copied;
// it must not be mutated after publication.
func NewBytes(b []byte) Value {
	return Value{kind: Bytes, raw: b}
}

// NewDate builds a Date Value. The zero DateTime is the in-band
// invalid-date marker and still carries the Date kind.
func NewDate(dt datetime.DateTime) Value {
	return Value{kind: Date, dt: dt}
}

// NewTime builds a Time Value.
func NewTime(t datetime.Time) Value {
	return Value{kind: Time, tm: t}
}

// NewGeometry builds a Geometry Value. A nil tree is NULL.
func NewGeometry(g geom.T) Value {
	if g == nil {
		return NULL
	}
	return Value{kind: Geometry, obj: g}
}

// NewJSON builds a JSON Value from a decoded document tree.
func NewJSON(doc any) Value {
	return Value{kind: JSON, obj: doc}
}

// Kind returns the discriminant.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the cell was SQL NULL.
func (v Value) IsNull() bool {
	return v.kind == Null
}

// ToInt64 returns the signed integer payload.
func (v Value) ToInt64() (int64, bool) {
	return int64(v.num), v.kind == Int64
}

// ToUint64 returns the unsigned integer payload.
func (v Value) ToUint64() (uint64, bool) {
	return v.num, v.kind == Uint64
}

// ToFloat64 returns the floating-point payload.
func (v Value) ToFloat64() (float64, bool) {
	return math.Float64frombits(v.num), v.kind == Float64
}

// ToString returns the string payload of a Text or Decimal value.
func (v Value) ToString() (string, bool) {
	return v.str, v.kind == Text || v.kind == Decimal
}

// ToBytes returns the raw payload of a Bytes value.
func (v Value) ToBytes() ([]byte, bool) {
	return v.raw, v.kind == Bytes
}

// ToDate returns the DateTime payload of a Date value.
func (v Value) ToDate() (datetime.DateTime, bool) {
	return v.dt, v.kind == Date
}

// ToTime returns the Time payload of a Time value.
func (v Value) ToTime() (datetime.Time, bool) {
	return v.tm, v.kind == Time
}

// ToGeometry returns the geometry tree of a Geometry value.
func (v Value) ToGeometry() (geom.T, bool) {
	g, ok := v.obj.(geom.T)
	return g, ok && v.kind == Geometry
}

// ToJSON returns the document tree of a JSON value.
func (v Value) ToJSON() (any, bool) {
	return v.obj, v.kind == JSON
}

// ToStdTime converts a Date value to a wall-clock instant in loc.
func (v Value) ToStdTime(loc *time.Location) (time.Time, bool) {
	if v.kind != Date {
		return time.Time{}, false
	}
	return v.dt.ToStdTime(loc), true
}

// String renders the value for logs and test failures. It is not a
// wire format.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "NULL"
	case Int64:
		return strconv.FormatInt(int64(v.num), 10)
	case Uint64:
		return strconv.FormatUint(v.num, 10)
	case Float64:
		return strconv.FormatFloat(math.Float64frombits(v.num), 'g', -1, 64)
	case Decimal:
		return v.str
	case Text:
		return v.str
	case Bytes:
		return fmt.Sprintf("%#x", v.raw)
	case Date:
		return v.dt.String()
	case Time:
		return v.tm.String()
	case Geometry, JSON:
		return fmt.Sprintf("%v", v.obj)
	default:
		return "<invalid>"
	}
}
