package application

import (
	"fmt"
	"strings"

	"scenelink/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "scenePath" -> "scene path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"scenePath":    "scene path",
		"nodePath":     "node path",
		"manifestPath": "manifest path",
		"outputPath":   "output path",
		"childName":    "child name",
		"linkTarget":   "link target",
		"tag":          "tag",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateChildName checks a node name can be used as a path element.
func ValidateChildName(name string) error {
	if err := ValidateRequired("childName", name); err != nil {
		return err
	}
	if strings.Contains(name, "/") {
		return &ValidationError{
			Field:   "childName",
			Message: fmt.Sprintf("child name cannot contain '/': %s", name),
		}
	}
	return nil
}

// ValidateAttributeName rejects names reserved for links on ordinary writes.
// The link attribute itself is accepted only with a link value.
func ValidateAttributeName(name string, v domain.Value) error {
	if err := ValidateRequired("attribute", name); err != nil {
		return err
	}
	if name == domain.LinkHashAttribute {
		return &ModeError{Op: "write " + name, Mode: domain.ModeWrite}
	}
	_, isLink := v.(domain.LinkDescriptor)
	if name == domain.LinkAttribute && !isLink {
		return &ValidationError{
			Field:   "attribute",
			Message: fmt.Sprintf("%s only accepts link values", name),
		}
	}
	if name != domain.LinkAttribute && isLink {
		return &ValidationError{
			Field:   "attribute",
			Message: fmt.Sprintf("link values are only valid on %s", domain.LinkAttribute),
		}
	}
	return nil
}
