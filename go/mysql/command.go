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
	"github.com/packetwire/mysqlwire/go/mysql/charset"
	"github.com/packetwire/mysqlwire/go/mysql/sqlerror"
)

// Command frames all share the shape: one command byte, then the
// argument bytes, no terminator. They restart the sequence at 0.

func newCommandPacket(command byte, arg []byte) *Packet {
	p := NewPacketBuffer(0, 1+len(arg))
	p.WriteByte(command)
	p.WriteBytes(arg)
	p.WriteHeader(0)
	return p
}

// ComStmtPreparePacket builds a COM_STMT_PREPARE frame for query,
// encoded under the connection character set.
func ComStmtPreparePacket(query string, encodingName string) (*Packet, error) {
	arg, err := charset.Encode(encodingName, query)
	if err != nil {
		return nil, sqlerror.NewSQLError(sqlerror.CRCantReadCharset, "", "cannot encode query under %q", encodingName)
	}
	return newCommandPacket(ComStmtPrepare, arg), nil
}

// ComQueryPacket builds a COM_QUERY frame.
func ComQueryPacket(query string, encodingName string) (*Packet, error) {
	arg, err := charset.Encode(encodingName, query)
	if err != nil {
		return nil, sqlerror.NewSQLError(sqlerror.CRCantReadCharset, "", "cannot encode query under %q", encodingName)
	}
	return newCommandPacket(ComQuery, arg), nil
}

// ComInitDBPacket builds a COM_INIT_DB frame.
func ComInitDBPacket(db string) *Packet {
	return newCommandPacket(ComInitDB, []byte(db))
}

// ComPingPacket builds a COM_PING frame.
func ComPingPacket() *Packet {
	return newCommandPacket(ComPing, nil)
}

// ComQuitPacket builds a COM_QUIT frame.
func ComQuitPacket() *Packet {
	return newCommandPacket(ComQuit, nil)
}
