// Package messages maps fetch failures to user-facing message keys and
// renders those keys in the user's language.
package messages

import "github.com/belinwu/WeatherApp/model"

// Key identifies a user-facing message.
type Key string

const (
	KeyGeneric            Key = "error.generic"
	KeyClient             Key = "error.client"
	KeyServer             Key = "error.server"
	KeyUnauthorized       Key = "error.unauthorized"
	KeyNotFound           Key = "error.not_found"
	KeyNetworkUnavailable Key = "error.network_unavailable"
)

// KeyFor returns the message shown for a failed fetch of the given kind.
// Unknown kinds map to KeyGeneric.
func KeyFor(kind model.ErrorKind) Key {
	switch kind {
	case model.ErrorClient:
		return KeyClient
	case model.ErrorServer:
		return KeyServer
	case model.ErrorUnauthorized:
		return KeyUnauthorized
	case model.ErrorNotFound:
		return KeyNotFound
	case model.ErrorNetworkUnavailable:
		return KeyNetworkUnavailable
	default:
		return KeyGeneric
	}
}
