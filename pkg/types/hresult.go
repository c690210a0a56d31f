package types

import (
	"errors"
	"fmt"
)

// HResult is the host's 32-bit result code.
type HResult uint32

// Result codes for every error classification of this module.
const (
	HResultOK                = HResult(0x00000000)
	HResultFalse             = HResult(0x00000001)
	HResultInvalidArg        = HResult(0x80070057)
	HResultAccessDenied      = HResult(0x80030005) // STG_E_ACCESSDENIED
	HResultReadFault         = HResult(0x8003001E) // STG_E_READFAULT
	HResultNoInterface       = HResult(0x80004002)
	HResultNoAggregation     = HResult(0x80040110)
	HResultClassNotAvailable = HResult(0x80040111)
	HResultSelfRegClass      = HResult(0x80040201) // SELFREG_E_CLASS
	HResultAlreadyInit       = HResult(0x800704DF) // ERROR_ALREADY_INITIALIZED
	HResultFail              = HResult(0x80004005)
)

// resultCodes is checked in order; the first match wins.
var resultCodes = []struct {
	err  error
	code HResult
}{
	{ErrInvalidArgument, HResultInvalidArg},
	{ErrAccessDenied, HResultAccessDenied},
	{ErrStreamUnreadable, HResultReadFault},
	{ErrAlreadyInitialized, HResultAlreadyInit},
	{ErrNoInterface, HResultNoInterface},
	{ErrNoAggregation, HResultNoAggregation},
	{ErrClassNotAvailable, HResultClassNotAvailable},
	{ErrRegistration, HResultSelfRegClass},
}

// ResultOf maps err to the host result code. nil maps to HResultOK and
// unclassified errors to HResultFail.
func ResultOf(err error) HResult {
	if err == nil {
		return HResultOK
	}
	for _, rc := range resultCodes {
		if errors.Is(err, rc.err) {
			return rc.code
		}
	}
	return HResultFail
}

// Failed reports whether the code is a failure (high bit set).
func (h HResult) Failed() bool {
	return h&0x80000000 != 0
}

func (h HResult) String() string {
	return fmt.Sprintf("0x%08X", uint32(h))
}
