package domcheck

// Key names a keyboard key using DOM key values.
type Key string

// Special key constants for use with Press.
const (
	Enter      Key = "Enter"
	Escape     Key = "Escape"
	Tab        Key = "Tab"
	Backspace  Key = "Backspace"
	Delete     Key = "Delete"
	ArrowUp    Key = "ArrowUp"
	ArrowDown  Key = "ArrowDown"
	ArrowLeft  Key = "ArrowLeft"
	ArrowRight Key = "ArrowRight"
	Home       Key = "Home"
	End        Key = "End"
	PageUp     Key = "PageUp"
	PageDown   Key = "PageDown"
	Space      Key = " "
	Shift      Key = "Shift"
	Control    Key = "Control"
	Alt        Key = "Alt"
	Meta       Key = "Meta"

	F1  Key = "F1"
	F2  Key = "F2"
	F3  Key = "F3"
	F4  Key = "F4"
	F5  Key = "F5"
	F6  Key = "F6"
	F7  Key = "F7"
	F8  Key = "F8"
	F9  Key = "F9"
	F10 Key = "F10"
	F11 Key = "F11"
	F12 Key = "F12"
)

// keyDefinition describes the events a key produces. Text is empty for
// control keys, which must never change a control's value.
type keyDefinition struct {
	Key     string
	Code    string
	KeyCode int
	Text    string
}

// Printable reports whether pressing the key inserts a character.
func (d keyDefinition) Printable() bool {
	return d.Text != ""
}

var keyTable = buildKeyTable()

func buildKeyTable() map[Key]keyDefinition {
	t := map[Key]keyDefinition{
		Enter:      {Key: "Enter", Code: "Enter", KeyCode: 13},
		Escape:     {Key: "Escape", Code: "Escape", KeyCode: 27},
		Tab:        {Key: "Tab", Code: "Tab", KeyCode: 9},
		Backspace:  {Key: "Backspace", Code: "Backspace", KeyCode: 8},
		Delete:     {Key: "Delete", Code: "Delete", KeyCode: 46},
		ArrowUp:    {Key: "ArrowUp", Code: "ArrowUp", KeyCode: 38},
		ArrowDown:  {Key: "ArrowDown", Code: "ArrowDown", KeyCode: 40},
		ArrowLeft:  {Key: "ArrowLeft", Code: "ArrowLeft", KeyCode: 37},
		ArrowRight: {Key: "ArrowRight", Code: "ArrowRight", KeyCode: 39},
		Home:       {Key: "Home", Code: "Home", KeyCode: 36},
		End:        {Key: "End", Code: "End", KeyCode: 35},
		PageUp:     {Key: "PageUp", Code: "PageUp", KeyCode: 33},
		PageDown:   {Key: "PageDown", Code: "PageDown", KeyCode: 34},
		Shift:      {Key: "Shift", Code: "ShiftLeft", KeyCode: 16},
		Control:    {Key: "Control", Code: "ControlLeft", KeyCode: 17},
		Alt:        {Key: "Alt", Code: "AltLeft", KeyCode: 18},
		Meta:       {Key: "Meta", Code: "MetaLeft", KeyCode: 91},
		Space:      {Key: " ", Code: "Space", KeyCode: 32, Text: " "},
	}
	fkeys := []Key{F1, F2, F3, F4, F5, F6, F7, F8, F9, F10, F11, F12}
	for i, k := range fkeys {
		t[k] = keyDefinition{Key: string(k), Code: string(k), KeyCode: 112 + i}
	}
	for c := 'a'; c <= 'z'; c++ {
		upper := c - 'a' + 'A'
		code := "Key" + string(upper)
		t[Key(string(c))] = keyDefinition{Key: string(c), Code: code, KeyCode: int(upper), Text: string(c)}
		t[Key(string(upper))] = keyDefinition{Key: string(upper), Code: code, KeyCode: int(upper), Text: string(upper)}
	}
	for c := '0'; c <= '9'; c++ {
		t[Key(string(c))] = keyDefinition{Key: string(c), Code: "Digit" + string(c), KeyCode: int(c), Text: string(c)}
	}
	punctuation := []struct {
		key, code string
		keyCode   int
	}{
		{"-", "Minus", 189}, {"_", "Minus", 189},
		{"=", "Equal", 187}, {"+", "Equal", 187},
		{"[", "BracketLeft", 219}, {"{", "BracketLeft", 219},
		{"]", "BracketRight", 221}, {"}", "BracketRight", 221},
		{`\`, "Backslash", 220}, {"|", "Backslash", 220},
		{";", "Semicolon", 186}, {":", "Semicolon", 186},
		{"'", "Quote", 222}, {`"`, "Quote", 222},
		{",", "Comma", 188}, {"<", "Comma", 188},
		{".", "Period", 190}, {">", "Period", 190},
		{"/", "Slash", 191}, {"?", "Slash", 191},
		{"`", "Backquote", 192}, {"~", "Backquote", 192},
		{"!", "Digit1", 49}, {"@", "Digit2", 50}, {"#", "Digit3", 51},
		{"$", "Digit4", 52}, {"%", "Digit5", 53}, {"^", "Digit6", 54},
		{"&", "Digit7", 55}, {"*", "Digit8", 56}, {"(", "Digit9", 57},
		{")", "Digit0", 48},
	}
	for _, p := range punctuation {
		t[Key(p.key)] = keyDefinition{Key: p.key, Code: p.code, KeyCode: p.keyCode, Text: p.key}
	}
	return t
}

func lookupKey(k Key) (keyDefinition, bool) {
	d, ok := keyTable[k]
	return d, ok
}
