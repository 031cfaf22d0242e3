package platform

import (
	"encoding/json"
	"fmt"
)

// Payload is the JSON body of an entry submission.
type Payload struct {
	// Details is the resolved entry value; nil omits the key.
	Details any `json:"details,omitempty"`
	// H is the entry signature.
	H string `json:"h"`
	// GrecaptchaResponse is always null.
	GrecaptchaResponse *string `json:"grecaptcha_response"`
	// Dbg and Efd are the explicit-state and form-state maps.
	Dbg  map[string]any `json:"dbg"`
	Efd  map[string]any `json:"efd"`
	Dbge DebugMetadata  `json:"dbge"`
	// F is the fraud token.
	F string `json:"f"`
}

// DebugMetadata is the static client metadata sent with every
// submission.
type DebugMetadata struct {
	Eed   string `json:"eed"`
	Csefr string `json:"csefr"`
	Csefn string `json:"csefn"`
	Hed   string `json:"hed"`
	Ae    string `json:"ae"`
	Aebps string `json:"aebps"`
}

// NewDebugMetadata returns the metadata for entryID.
func NewDebugMetadata(entryID string) DebugMetadata {
	return DebugMetadata{
		Eed:   "5",
		Csefr: "rnull",
		Csefn: "#undefined:true",
		Hed:   fmt.Sprintf("#%s:undefined:undefined:undefined", entryID),
		Ae:    "elc",
		Aebps: "ae#2",
	}
}

// Marshal encodes the payload. Nil state maps encode as {}.
func (p *Payload) Marshal() ([]byte, error) {
	out := *p
	if out.Dbg == nil {
		out.Dbg = map[string]any{}
	}
	if out.Efd == nil {
		out.Efd = map[string]any{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return data, nil
}
