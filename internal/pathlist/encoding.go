package pathlist

import "pathedit/internal/model"

// SelectEncoding picks the registry subtype for a serialized PATH value.
// A value with a %NAME% token must be REG_EXPAND_SZ. Otherwise an existing
// string subtype is kept, so a value the operator stored as expandable stays
// expandable after its last token is removed; anything else becomes REG_SZ.
func SelectEncoding(serialized string, previous model.ValueEncoding) model.ValueEncoding {
	if HasToken(serialized) {
		return model.EncodingExpandable
	}
	if previous.IsString() {
		return previous
	}
	return model.EncodingPlain
}
