package customization

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"resumeforge-utils/pkg/utils"
)

// snapshotSchema is the wire contract for imported customizations. The four
// core fields must all be present; metadata and history are optional.
const snapshotSchema = `{
  "type": "object",
  "required": ["colorScheme", "typography", "layout", "sectionVisibility"],
  "properties": {
    "colorScheme": {
      "type": "object",
      "required": ["primary", "background", "text"],
      "additionalProperties": {"type": "string"}
    },
    "typography": {
      "type": "object",
      "required": ["heading", "body"]
    },
    "layout": {
      "type": "object",
      "required": ["columns"]
    },
    "sectionVisibility": {
      "type": "object",
      "minProperties": 1
    },
    "metadata": {"type": "object"},
    "changeHistory": {"type": "array"},
    "baseTemplate": {"type": "string"}
  }
}`

var compiledSnapshotSchema = gojsonschema.NewStringLoader(snapshotSchema)

// validateSnapshotJSON checks the raw import payload against the snapshot
// schema before unmarshalling.
func validateSnapshotJSON(data []byte) error {
	result, err := gojsonschema.Validate(compiledSnapshotSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return utils.NewError(utils.ErrParseError, fmt.Sprintf("snapshot is not valid JSON: %v", err))
	}
	if !result.Valid() {
		detail := "snapshot failed validation"
		if errs := result.Errors(); len(errs) > 0 {
			detail = fmt.Sprintf("snapshot failed validation: %s", errs[0].String())
		}
		return utils.NewValidationError(detail)
	}
	return nil
}
