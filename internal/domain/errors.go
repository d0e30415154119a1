package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")

	// ErrRecordFetch means the patient registration source was unreachable
	// or returned a non-2xx status. Fatal to the whole request.
	ErrRecordFetch = errors.New("patient record fetch failed")

	// ErrSynthesisParse means a generative response that was required to be
	// strict JSON did not parse. Fatal; no partial report is assembled.
	ErrSynthesisParse = errors.New("synthesis output is not valid JSON")

	// ErrSynthesisService means the generative-model service itself errored
	// or timed out. Fatal at whichever stage it occurs.
	ErrSynthesisService = errors.New("synthesis service call failed")
)
