package protocol

import (
	"strings"
	"unicode/utf8"
)

type KeyName int

const (
	KeyUnknown KeyName = iota
	KeyChar
	KeyReturn
	KeyTab
	KeySpace
	KeyComma
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyBackSpace
	KeyEscape
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyLeftCommand
	KeyRightCommand
	KeyRightAlt
	KeyRightControl
	KeyRightShift
	KeyCapsLock
)

// Key is a decoded key name. Char is set only when Name is KeyChar.
type Key struct {
	Name KeyName
	Char rune
}

func Char(r rune) Key {
	return Key{Name: KeyChar, Char: r}
}

var keyStrings = [...]string{
	KeyUnknown:      "Unknown",
	KeyReturn:       "Return",
	KeyTab:          "Tab",
	KeySpace:        "Space",
	KeyComma:        "Comma",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyBackSpace:    "BackSpace",
	KeyEscape:       "Escape",
	KeyLeftShift:    "LeftShift",
	KeyLeftControl:  "LeftControl",
	KeyLeftAlt:      "LeftAlt",
	KeyLeftCommand:  "LeftCommand",
	KeyRightCommand: "RightCommand",
	KeyRightAlt:     "RightAlt",
	KeyRightControl: "RightControl",
	KeyRightShift:   "RightShift",
	KeyCapsLock:     "CapsLock",
}

var keyNames = map[string]KeyName{
	// spellings sent by older display servers
	"LefCommand": KeyLeftCommand,
	"Caps_Lock":  KeyCapsLock,
}

func init() {
	for name, s := range keyStrings {
		if s != "" && KeyName(name) != KeyUnknown {
			keyNames[s] = KeyName(name)
		}
	}
}

var keyAliases = map[string]rune{
	"space":      ' ',
	"leftparen":  '(',
	"rightparen": ')',
	"period":     '.',
}

// ParseKey decodes a key name. It never fails: names it does not know
// decode to KeyUnknown.
func ParseKey(s string) Key {
	if utf8.RuneCountInString(s) != 1 {
		s = strings.TrimSpace(s)
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if r != utf8.RuneError {
			return Char(r)
		}
	}
	if name, ok := keyNames[s]; ok {
		return Key{Name: name}
	}
	if r, ok := keyAliases[s]; ok {
		return Char(r)
	}
	return Key{Name: KeyUnknown}
}

func (k Key) String() string {
	if k.Name == KeyChar {
		return string(k.Char)
	}
	if int(k.Name) < len(keyStrings) && keyStrings[k.Name] != "" {
		return keyStrings[k.Name]
	}
	return keyStrings[KeyUnknown]
}
