package main

import "net/http"

// lookupErrorKind enumerates the ways a lookup request can fail. Each kind
// maps to exactly one HTTP status and response body at the server boundary.
type lookupErrorKind int

const (
	errInvalidPath lookupErrorKind = iota
	errEmptyFQDN
	errResolutionFailed
	errZoneNotFound
	errInternal
)

func (k lookupErrorKind) statusCode() int {
	if k == errInvalidPath {
		return http.StatusBadRequest
	}
	if k == errInternal {
		return http.StatusInternalServerError
	}

	return http.StatusNotFound
}

func (k lookupErrorKind) message() string {
	switch k {
	case errInvalidPath:
		return "Invalid path"
	case errEmptyFQDN:
		return "Not Found. Please provide a FQDN in the path, e.g., /my.database.com"
	case errResolutionFailed:
		return "FQDN not found or could not be resolved"
	case errZoneNotFound:
		return "Zone not found for the given FQDN's IP"
	default:
		return "Internal Server Error"
	}
}

// metricResult is the value used for the result label of the lookup counter.
func (k lookupErrorKind) metricResult() string {
	switch k {
	case errInvalidPath:
		return "invalid_path"
	case errEmptyFQDN:
		return "empty_fqdn"
	case errResolutionFailed:
		return "resolve_error"
	case errZoneNotFound:
		return "zone_not_found"
	default:
		return "internal_error"
	}
}
