package differenzler

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnauthorizedAction = errors.New("action not expected from this participant now")
	ErrPlayMultipleGame   = errors.New("identity already plays another session")
	ErrSessionStarted     = errors.New("session already started")
)

type BackendCode uint8

const (
	BackendCodeZero BackendCode = iota // reserved
	GeneralCode                        // malformed request, decode failure
	SessionCode                        // unknown session or rejected submission
	ConnectionCode                     // transport write or connection state
	SystemCode                         // internal failure
)

type (
	// BackendErr failure reported to a client through the error event
	BackendErr struct {
		reason any
		Err    error
		Msg    string
		Code   BackendCode
	}
)

func (appErr *BackendErr) Error() string {
	if appErr.Err != nil {
		return fmt.Sprintf("%d: %s: %v", appErr.Code, appErr.Msg, appErr.Err)
	}
	return fmt.Sprintf("%d: %s", appErr.Code, appErr.Msg)
}

func (appErr *BackendErr) Unwrap() error {
	return appErr.Err
}

// BackendError reason is logged only, never sent to the client.
func BackendError(code BackendCode, msg string, err error, reason any) *BackendErr {
	return &BackendErr{
		reason: reason,
		Err:    err,
		Msg:    msg,
		Code:   code,
	}
}

// clientMessage text for the error{message} event
func clientMessage(err error) string {
	var appErr *BackendErr
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			return appErr.Msg + ": " + appErr.Err.Error()
		}
		return appErr.Msg
	}
	return err.Error()
}
