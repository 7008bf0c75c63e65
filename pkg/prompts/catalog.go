// Package prompts holds the AdBrain persona and the per-mode instructions that
// together form the system prompt of a conversation.
package prompts

import "strings"

// Mode is a selectable behavioral profile. Only the constants below are
// recognized; any other value falls back to the base persona.
type Mode string

const (
	ModeCampaignStrategy Mode = "Campaign Strategy"
	ModeCopywriting      Mode = "Copywriting"
	ModeAdAudit          Mode = "Ad Audit"
	ModePersonaOffer     Mode = "Persona / Offer Builder"
)

// DefaultMode is the mode a new session starts in.
const DefaultMode = ModeCampaignStrategy

var modeOrder = []Mode{
	ModeCampaignStrategy,
	ModeCopywriting,
	ModeAdAudit,
	ModePersonaOffer,
}

var modeSlugs = map[Mode]string{
	ModeCampaignStrategy: "strategy",
	ModeCopywriting:      "copy",
	ModeAdAudit:          "audit",
	ModePersonaOffer:     "persona",
}

// Modes returns the recognized modes in display order.
func Modes() []Mode {
	out := make([]Mode, len(modeOrder))
	copy(out, modeOrder)
	return out
}

// String returns the display name.
func (m Mode) String() string { return string(m) }

// Valid reports whether m is one of the recognized modes.
func (m Mode) Valid() bool {
	_, ok := modeFragments[m]
	return ok
}

// Slug returns the short command-line alias, or "" for unrecognized modes.
func (m Mode) Slug() string { return modeSlugs[m] }

// ParseMode resolves a user-typed mode by display name, slug or 1-based index,
// ignoring case and surrounding space.
func ParseMode(s string) (Mode, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for i, m := range modeOrder {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, modeSlugs[m]) {
			return m, true
		}
		if s == string(rune('1'+i)) {
			return m, true
		}
	}
	return "", false
}

// BuildSystemPrompt returns the base persona followed by the instructions for
// mode, separated by a newline. Unrecognized modes get the base persona alone.
func BuildSystemPrompt(mode Mode) string {
	fragment, ok := modeFragments[mode]
	if !ok {
		return BasePrompt
	}
	return BasePrompt + "\n" + fragment
}
