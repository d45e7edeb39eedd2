package calculator

// Category is the visual class of a keypad button.
type Category string

const (
	CategoryDigit      Category = "digit"
	CategoryBinaryOp   Category = "binaryOp"
	CategoryAction     Category = "action"
	CategoryScientific Category = "scientific"
)

// ScientificToggle is the label of the button that shows or hides the
// scientific row. It never reaches the evaluator.
const ScientificToggle = "Sci"

// Style is the colour pair a display surface uses for a button.
type Style struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// StyleFor maps a category to its colours.
func StyleFor(c Category) Style {
	switch c {
	case CategoryDigit:
		return Style{Background: "white24", Foreground: "white"}
	case CategoryBinaryOp:
		return Style{Background: "orange", Foreground: "white"}
	case CategoryScientific:
		return Style{Background: "blue_700", Foreground: "white"}
	default:
		return Style{Background: "blue_grey_100", Foreground: "black"}
	}
}

// Button describes one key on the keypad.
type Button struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Span     int      `json:"span"`
	Style    Style    `json:"style"`
}

func button(label string, c Category) Button {
	return Button{Label: label, Category: c, Span: 1, Style: StyleFor(c)}
}

func digits(labels ...string) []Button {
	out := make([]Button, 0, len(labels))
	for _, l := range labels {
		out = append(out, button(l, CategoryDigit))
	}
	return out
}

// Layout returns the keypad rows top to bottom. The scientific row is only
// present when scientific is true.
func Layout(scientific bool) [][]Button {
	rows := make([][]Button, 0, 6)

	if scientific {
		rows = append(rows, []Button{
			button("sin", CategoryScientific),
			button("cos", CategoryScientific),
			button("tan", CategoryScientific),
			button("ln", CategoryScientific),
			button("log10", CategoryScientific),
			button("^", CategoryScientific),
		})
	}

	zero := button("0", CategoryDigit)
	zero.Span = 2

	rows = append(rows,
		[]Button{
			button("AC", CategoryAction),
			button("+/-", CategoryAction),
			button("%", CategoryAction),
			button(ScientificToggle, CategoryAction),
		},
		append(digits("7", "8", "9"), button("/", CategoryBinaryOp)),
		append(digits("4", "5", "6"), button("*", CategoryBinaryOp)),
		append(digits("1", "2", "3"), button("-", CategoryBinaryOp)),
		[]Button{
			zero,
			button(".", CategoryDigit),
			button("+", CategoryBinaryOp),
			button("=", CategoryBinaryOp),
		},
	)

	return rows
}
