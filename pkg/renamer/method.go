package renamer

import (
	"fmt"
	"strings"
)

// Method selects which synthesis rule produces a proposed name.
type Method int

const (
	// MethodMetadataMatch names files from resolved show and episode metadata.
	MethodMetadataMatch Method = iota
	// MethodIncrementingNumber names files by their position in the batch.
	MethodIncrementingNumber
	// MethodOriginalName keeps the filename stem, extension stripped.
	MethodOriginalName
	// MethodExtension keeps only the extension, without its leading dot.
	MethodExtension
	// MethodCreationDate names files by their creation date.
	MethodCreationDate
)

func (m Method) String() string {
	switch m {
	case MethodMetadataMatch:
		return "metadata"
	case MethodIncrementingNumber:
		return "number"
	case MethodOriginalName:
		return "name"
	case MethodExtension:
		return "extension"
	case MethodCreationDate:
		return "date"
	}
	return "unknown"
}

// ParseMethod maps a user-supplied method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metadata", "tvshow", "tv":
		return MethodMetadataMatch, nil
	case "number", "nr":
		return MethodIncrementingNumber, nil
	case "name":
		return MethodOriginalName, nil
	case "extension", "ext":
		return MethodExtension, nil
	case "date":
		return MethodCreationDate, nil
	}
	return 0, fmt.Errorf("unknown renaming method %q", s)
}
