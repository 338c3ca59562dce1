package presets

import (
	"regexp"
	"strings"
)

// UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (36 characters)
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// validates a UUID string format
func IsValidUUID(id string) bool {
	if id == "" {
		return false
	}

	return uuidRegex.MatchString(strings.ToLower(id))
}

// ValidateUUID returns a BadRequest when id is missing and a NotFound when it
// is not a UUID, so malformed ids never reach storage.
func ValidateUUID(id, resource string) error {
	if resource == "" {
		resource = "resource"
	}

	if id == "" {
		return BadRequest.New("missing " + resource + " id")
	}

	if !IsValidUUID(id) {
		return NotFound.New(resource + " not found")
	}

	return nil
}
