package renderer

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
)

var (
	ColorImage       color.Style
	ColorAction      color.Style
	ColorActionShort color.Style
	ColorDenied      color.Style
	ColorSubtle      color.Style
	ColorHappy       color.Style
	ColorBad         color.Style

	regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:#.%]+)}`)
)

func init() {
	InitColors(true)
}

// InitColors initializes the color styles. With enabled false every style
// renders plain text.
func InitColors(enabled bool) {
	color.Enable = enabled

	ColorImage = color.Style{color.FgCyan, color.OpBold}
	ColorAction = color.Style{color.FgMagenta}
	ColorActionShort = color.Style{color.FgMagenta, color.OpBold}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorSubtle = color.Style{color.FgGray}
	ColorHappy = color.Style{color.FgGreen, color.OpBold}
	ColorBad = color.Style{color.FgYellow, color.OpBold}
}

// StyleText applies a style to text.
func StyleText(text string, style TextStyle) string {
	switch style {
	case StyleImage:
		return ColorImage.Sprint(text)
	case StyleAction:
		return ColorAction.Sprint(text)
	case StyleActionShort:
		return ColorActionShort.Sprint(text)
	case StyleDenied:
		return ColorDenied.Sprint(text)
	case StyleSubtle:
		return ColorSubtle.Sprint(text)
	case StyleHappy:
		return ColorHappy.Sprint(text)
	case StyleBad:
		return ColorBad.Sprint(text)
	default:
		return text
	}
}

// FormatString formats a string with special markup:
//
//	GT{KEY}       translated string
//	IMG{n}        image label
//	ACTION{next}  command, first letter highlighted
//	DENIED{text}  refusal
//	HAPPY{text}   happy outcome
//	BAD{text}     bad outcome
//
// Markup is expanded in msg before the arguments are substituted, so
// argument values are printed as they are. Operands may hold verbs, as in
// IMG{%d}.
func FormatString(msg string, a ...any) string {
	ret := msg

	matches := regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = strings.ReplaceAll(gotext.Get(operand), "%", "%%")
		case "IMG":
			val = ColorImage.Sprint("#" + operand)
		case "ACTION":
			if strings.HasPrefix(operand, "%") {
				val = ColorAction.Sprint(operand)
			} else {
				val = ColorActionShort.Sprint(operand[0:1]) + ColorAction.Sprint(operand[1:])
			}
		case "DENIED":
			val = ColorDenied.Sprint(operand)
		case "HAPPY":
			val = ColorHappy.Sprint(operand)
		case "BAD":
			val = ColorBad.Sprint(operand)
		default:
			val = strings.ReplaceAll(fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand), "%", "%%")
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	if len(a) == 0 {
		return strings.ReplaceAll(ret, "%%", "%")
	}
	return fmt.Sprintf(ret, a...)
}

// PrintBullet prints a bulleted line to w.
func PrintBullet(w io.Writer, txt string, a ...any) {
	fmt.Fprintln(w, "- "+FormatString(txt, a...))
}

// Rule returns a horizontal line of the given width with label centred in it.
func Rule(width int, label string) string {
	if label != "" {
		label = " " + label + " "
	}
	labelLen := len([]rune(color.ClearCode(label)))
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}
	return ColorSubtle.Sprint(strings.Repeat("─", sideLen)) + label + ColorSubtle.Sprint(strings.Repeat("─", rightLen))
}
