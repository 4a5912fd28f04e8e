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

package sqlerror

// Error codes for client-side errors.
// Originally found in include/mysql/errmsg.h
const (
	// CRUnknownError is CR_UNKNOWN_ERROR
	CRUnknownError = 2000

	// CRConnectionError is CR_CONNECTION_ERROR
	// This is returned if a connection via a Unix socket fails.
	CRConnectionError = 2002

	// CRConnHostError is CR_CONN_HOST_ERROR
	// This is returned if a connection via a TCP socket fails.
	CRConnHostError = 2003

	// CRServerGone is CR_SERVER_GONE_ERROR.
	// This is returned if the client tries to send a command but it fails.
	CRServerGone = 2006

	// CRVersionError is CR_VERSION_ERROR
	// This is returned if the server versions don't match what we support.
	CRVersionError = 2007

	// CRServerHandshakeErr is CR_SERVER_HANDSHAKE_ERR
	CRServerHandshakeErr = 2012

	// CRServerLost is CR_SERVER_LOST.
	// Used when the client cannot read a response from the server.
	CRServerLost = 2013

	// CRCommandsOutOfSync is CR_COMMANDS_OUT_OF_SYNC
	// Sent when streaming calls are not done in the right order.
	CRCommandsOutOfSync = 2014

	// CRNamedPipeStateError is CR_NAMEDPIPESETSTATE_ERROR.
	// This is the highest possible number for a connection error.
	CRNamedPipeStateError = 2018

	// CRCantReadCharset is CR_CANT_READ_CHARSET
	CRCantReadCharset = 2019

	// CRSSLConnectionError is CR_SSL_CONNECTION_ERROR
	CRSSLConnectionError = 2026

	// CRMalformedPacket is CR_MALFORMED_PACKET
	CRMalformedPacket = 2027
)

// Error codes for server-side errors.
// Originally found in include/mysql/mysqld_error.h
const (
	// ERAccessDeniedError is ER_ACCESS_DENIED_ERROR
	ERAccessDeniedError = 1045

	// ERUnknownComError is ER_UNKNOWN_COM_ERROR
	ERUnknownComError = 1047

	// ERBadNullError is ER_BAD_NULL_ERROR
	ERBadNullError = 1048

	// ERBadDb is ER_BAD_DB_ERROR
	ERBadDb = 1049

	// ERServerShutdown is ER_SERVER_SHUTDOWN
	ERServerShutdown = 1053

	// ERBadFieldError is ER_BAD_FIELD_ERROR
	ERBadFieldError = 1054

	// ERDupEntry is ER_DUP_ENTRY
	ERDupEntry = 1062

	// ERParseError is ER_PARSE_ERROR
	ERParseError = 1064

	// EREmptyQuery is ER_EMPTY_QUERY
	EREmptyQuery = 1065

	// ERNoTablesUsed is ER_NO_TABLES_USED
	ERNoTablesUsed = 1096

	// ERUnknownError is ER_UNKNOWN_ERROR
	ERUnknownError = 1105

	// ERUnknownTable is ER_UNKNOWN_TABLE
	ERUnknownTable = 1109

	// ERNoSuchTable is ER_NO_SUCH_TABLE
	ERNoSuchTable = 1146

	// ERNetPacketTooLarge is ER_NET_PACKET_TOO_LARGE
	ERNetPacketTooLarge = 1153

	// ERCantDoThisDuringAnTransaction is
	// ER_CANT_DO_THIS_DURING_AN_TRANSACTION
	ERCantDoThisDuringAnTransaction = 1179

	// ERLockWaitTimeout is ER_LOCK_WAIT_TIMEOUT
	ERLockWaitTimeout = 1205

	// ERLockDeadlock is ER_LOCK_DEADLOCK
	ERLockDeadlock = 1213

	// ERQueryInterrupted is ER_QUERY_INTERRUPTED
	ERQueryInterrupted = 1317

	// ERDataTooLong is ER_DATA_TOO_LONG
	ERDataTooLong = 1406

	// ERDataOutOfRange is ER_DATA_OUT_OF_RANGE
	ERDataOutOfRange = 1690
)

// SQL states for errors.
// Originally found in include/mysql/sql_state.h
const (
	// SSUnknownSQLState is the catch-all state client libraries use.
	SSUnknownSQLState = "HY000"

	// SSDataTooLong is ER_DATA_TOO_LONG
	SSDataTooLong = "22001"

	// SSDataOutOfRange is ER_DATA_OUT_OF_RANGE
	SSDataOutOfRange = "22003"

	// SSBadNullError is ER_BAD_NULL_ERROR
	SSBadNullError = "23000"

	// SSDupKey is ER_DUP_KEY
	SSDupKey = "23000"

	// SSAccessDeniedError is ER_ACCESS_DENIED_ERROR
	SSAccessDeniedError = "28000"

	// SSLockDeadlock is ER_LOCK_DEADLOCK
	SSLockDeadlock = "40001"

	// SSNetError is the state for network errors.
	SSNetError = "08S01"
)

// errorNames resolves an errno to its symbolic name, for the Code
// surfaced on decoded error frames.
var errorNames = map[int]string{
	ERAccessDeniedError:             "ER_ACCESS_DENIED_ERROR",
	ERUnknownComError:               "ER_UNKNOWN_COM_ERROR",
	ERBadNullError:                  "ER_BAD_NULL_ERROR",
	ERBadDb:                         "ER_BAD_DB_ERROR",
	ERServerShutdown:                "ER_SERVER_SHUTDOWN",
	ERBadFieldError:                 "ER_BAD_FIELD_ERROR",
	ERDupEntry:                      "ER_DUP_ENTRY",
	ERParseError:                    "ER_PARSE_ERROR",
	EREmptyQuery:                    "ER_EMPTY_QUERY",
	ERNoTablesUsed:                  "ER_NO_TABLES_USED",
	ERUnknownError:                  "ER_UNKNOWN_ERROR",
	ERUnknownTable:                  "ER_UNKNOWN_TABLE",
	ERNoSuchTable:                   "ER_NO_SUCH_TABLE",
	ERNetPacketTooLarge:             "ER_NET_PACKET_TOO_LARGE",
	ERCantDoThisDuringAnTransaction: "ER_CANT_DO_THIS_DURING_AN_TRANSACTION",
	ERLockWaitTimeout:               "ER_LOCK_WAIT_TIMEOUT",
	ERLockDeadlock:                  "ER_LOCK_DEADLOCK",
	ERQueryInterrupted:              "ER_QUERY_INTERRUPTED",
	ERDataTooLong:                   "ER_DATA_TOO_LONG",
	ERDataOutOfRange:                "ER_DATA_OUT_OF_RANGE",
	CRUnknownError:                  "CR_UNKNOWN_ERROR",
	CRConnectionError:               "CR_CONNECTION_ERROR",
	CRConnHostError:                 "CR_CONN_HOST_ERROR",
	CRServerGone:                    "CR_SERVER_GONE_ERROR",
	CRVersionError:                  "CR_VERSION_ERROR",
	CRServerHandshakeErr:            "CR_SERVER_HANDSHAKE_ERR",
	CRServerLost:                    "CR_SERVER_LOST",
	CRCommandsOutOfSync:             "CR_COMMANDS_OUT_OF_SYNC",
	CRCantReadCharset:               "CR_CANT_READ_CHARSET",
	CRSSLConnectionError:            "CR_SSL_CONNECTION_ERROR",
	CRMalformedPacket:               "CR_MALFORMED_PACKET",
}
