package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for value parsing.
var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrUnknownUnits        = errors.New("unknown units")
	ErrUnknownErrorKind    = errors.New("unknown error kind")
)

// ErrorKind classifies a failed domain fetch. It travels inside a Result and
// is never returned as an error value.
type ErrorKind int

const (
	ErrorGeneric ErrorKind = iota
	ErrorClient
	ErrorServer
	ErrorUnauthorized
	ErrorNotFound
	ErrorNetworkUnavailable
)

// AllErrorKinds lists every ErrorKind.
func AllErrorKinds() []ErrorKind {
	return []ErrorKind{
		ErrorGeneric,
		ErrorClient,
		ErrorServer,
		ErrorUnauthorized,
		ErrorNotFound,
		ErrorNetworkUnavailable,
	}
}

func (k ErrorKind) String() string {
	switch k {
	case ErrorClient:
		return "client"
	case ErrorServer:
		return "server"
	case ErrorUnauthorized:
		return "unauthorized"
	case ErrorNotFound:
		return "not_found"
	case ErrorNetworkUnavailable:
		return "network_unavailable"
	default:
		return "generic"
	}
}

// ParseErrorKind is the inverse of ErrorKind.String.
func ParseErrorKind(value string) (ErrorKind, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, k := range AllErrorKinds() {
		if k.String() == value {
			return k, nil
		}
	}
	return ErrorGeneric, fmt.Errorf("%w: %q", ErrUnknownErrorKind, value)
}
