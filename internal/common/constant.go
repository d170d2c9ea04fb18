// Package common contains the error taxonomy and small helpers shared by the
// client layers.
package common

// RequestIDHeaderName carries the per-request correlation id on outbound
// HTTP calls.
const RequestIDHeaderName = "X-Request-ID"

// GenericNetworkMessage is shown whenever no usable server message exists.
const GenericNetworkMessage = "Network error or server is down"

// StorageFailureMessage is shown when the local session store fails.
const StorageFailureMessage = "Could not save data on this device"
