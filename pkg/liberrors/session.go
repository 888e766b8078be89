// Package liberrors contains the error types returned by rtspingest.
package liberrors

import (
	"fmt"

	"github.com/clearskyvideo/rtspingest/pkg/base"
)

// ErrSessionWrongState is returned when an operation is attempted from a state that does not allow it.
type ErrSessionWrongState struct {
	AllowedList []fmt.Stringer
	State       fmt.Stringer
}

// Error implements the error interface.
func (e ErrSessionWrongState) Error() string {
	return fmt.Sprintf("must be in state %v, while is in state %v", e.AllowedList, e.State)
}

// ErrSessionConnectFailed is returned when the TCP connection to the RTSP server could not be established.
type ErrSessionConnectFailed struct {
	Err error
}

// Error implements the error interface.
func (e ErrSessionConnectFailed) Error() string {
	return fmt.Sprintf("connection failed: %v", e.Err)
}

// ErrSessionWrongStatusCode is returned when a RTSP response carries an unexpected status code.
type ErrSessionWrongStatusCode struct {
	Method  base.Method
	Code    base.StatusCode
	Message string
}

// Error implements the error interface.
func (e ErrSessionWrongStatusCode) Error() string {
	return fmt.Sprintf("%s: wrong status code: %d (%s)", e.Method, e.Code, e.Message)
}

// ErrSessionEmptySDP is returned when the DESCRIBE response carries an empty or unparsable SDP body.
type ErrSessionEmptySDP struct {
	Err error
}

// Error implements the error interface.
func (e ErrSessionEmptySDP) Error() string {
	return fmt.Sprintf("invalid or empty SDP body: %v", e.Err)
}

// ErrSessionNoVideoMedia is returned when the SDP does not advertise a video media section.
type ErrSessionNoVideoMedia struct{}

// Error implements the error interface.
func (e ErrSessionNoVideoMedia) Error() string {
	return "SDP does not contain a video media section"
}

// ErrSessionTransportExhausted is returned when every entry of the transport negotiation ladder has failed.
type ErrSessionTransportExhausted struct {
	Attempts int
}

// Error implements the error interface.
func (e ErrSessionTransportExhausted) Error() string {
	return fmt.Sprintf("transport negotiation exhausted after %d attempt(s)", e.Attempts)
}

// ErrSessionMissingSessionID is returned when a SETUP response carries no Session header.
type ErrSessionMissingSessionID struct{}

// Error implements the error interface.
func (e ErrSessionMissingSessionID) Error() string {
	return "SETUP response did not include a Session header"
}

// ErrSessionInvalidTransportHeader is returned when a SETUP response's Transport header cannot be parsed
// or lacks the fields required by the negotiated mode.
type ErrSessionInvalidTransportHeader struct {
	Err error
}

// Error implements the error interface.
func (e ErrSessionInvalidTransportHeader) Error() string {
	return fmt.Sprintf("invalid Transport header: %v", e.Err)
}
