package conduit

// Key codes are W3C KeyboardEvent.code strings ("KeyA", "Digit1",
// "ShiftLeft"). Hosts translate their native identifiers into this form.
// The constants below cover the codes the package itself inspects.
const (
	KeyShiftLeft    = "ShiftLeft"
	KeyShiftRight   = "ShiftRight"
	KeyControlLeft  = "ControlLeft"
	KeyControlRight = "ControlRight"
	KeyAltLeft      = "AltLeft"
	KeyAltRight     = "AltRight"
	KeyMetaLeft     = "MetaLeft"
	KeyMetaRight    = "MetaRight"

	KeyEscape    = "Escape"
	KeyEnter     = "Enter"
	KeySpace     = "Space"
	KeyTab       = "Tab"
	KeyBackspace = "Backspace"
	KeyDelete    = "Delete"
)

// modifierForKey returns the modifier bit a key code contributes, or 0.
func modifierForKey(code string) KeyModifiers {
	switch code {
	case KeyShiftLeft, KeyShiftRight:
		return ModShift
	case KeyControlLeft, KeyControlRight:
		return ModCtrl
	case KeyAltLeft, KeyAltRight:
		return ModAlt
	case KeyMetaLeft, KeyMetaRight:
		return ModMeta
	}
	return 0
}

// IsModifierKey reports whether code names a left or right modifier key.
func IsModifierKey(code string) bool {
	return modifierForKey(code) != 0
}
