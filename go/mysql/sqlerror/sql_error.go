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

// Package sqlerror holds the structured error type decoded from MySQL
// error frames, plus the errno and SQLSTATE tables the codec needs.
package sqlerror

import (
	"bytes"
	"fmt"
	"strconv"
)

// SQLError is the error structure decoded from a server error frame,
// and the one the codec itself raises for malformed frames.
type SQLError struct {
	Num     int
	State   string
	Message string
}

// NewSQLError creates a new SQLError.
// If sqlState is left empty, it will default to "HY000" (general error).
func NewSQLError(number int, sqlState string, format string, args ...any) *SQLError {
	if sqlState == "" {
		sqlState = SSUnknownSQLState
	}
	return &SQLError{
		Num:     number,
		State:   sqlState,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (se *SQLError) Error() string {
	buf := &bytes.Buffer{}
	buf.WriteString(se.Message)

	// Add MySQL errno and SQLSTATE in a format that can be parsed
	// back out of the string, since all errors are eventually
	// flattened to strings at API boundaries.
	fmt.Fprintf(buf, " (errno %v) (sqlstate %v)", se.Num, se.State)
	return buf.String()
}

// Number returns the internal MySQL error code.
func (se *SQLError) Number() int {
	return se.Num
}

// SQLState returns the SQLSTATE value.
func (se *SQLError) SQLState() string {
	return se.State
}

// Code returns the symbolic name of the error number, or the decimal
// number itself when the errno is not in the table.
func (se *SQLError) Code() string {
	return CodeName(se.Num)
}

// CodeName resolves an errno to its symbolic server or client name.
func CodeName(num int) string {
	if name, ok := errorNames[num]; ok {
		return name
	}
	return strconv.Itoa(num)
}

// NewMalformedPacketError is the error every malformed-frame path
// funnels through.
func NewMalformedPacketError(format string, args ...any) *SQLError {
	return NewSQLError(CRMalformedPacket, SSUnknownSQLState, format, args...)
}

// IsConnErr returns true if the error is a client-side connection error.
func IsConnErr(err error) bool {
	if sqlErr, ok := err.(*SQLError); ok {
		num := sqlErr.Number()
		return num >= CRUnknownError && num <= CRNamedPipeStateError
	}
	return false
}
