package busdoc

import (
	"encoding/json"
	"io"
)

// Write serializes the output document: a JSON array of responses, one
// per stat request. HTML-escaping is disabled so the embedded SVG
// documents keep their literal '<', '>', and '&' instead of being
// rewritten to JSON unicode escapes — the map field's only escaping
// contract is svg.Escape's backslash-escaping of '"' and '\'.
func Write(w io.Writer, responses []Response) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(responses)
}
