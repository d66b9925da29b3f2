package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput     = errors.New("Given Param is not valid")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")
	ErrInvalidChainId    = errors.New("invalid chain id")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
	ErrInvalidName    = errors.New("Invalid name")

	// resolution error
	ErrUnsupportedChain  = errors.New("unsupported chain")
	ErrSenderMismatch    = errors.New("offchain lookup sender mismatch")
	ErrTooManyRedirects  = errors.New("too many ccip read redirects")
	ErrInvalidRevertData = errors.New("invalid revert data")
)
