package cli

import (
	"fmt"
	"io"
	"os"
)

type Output struct {
	enableColors bool
	out          io.Writer
	errOut       io.Writer
}

func NewOutput() *Output {
	return &Output{
		enableColors: isTerminal(),
		out:          os.Stdout,
		errOut:       os.Stderr,
	}
}

func NewOutputTo(out, errOut io.Writer) *Output {
	return &Output{out: out, errOut: errOut}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) colorize(code, text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[" + code + "m" + text + "\033[0m"
}

func (o *Output) Green(text string) string {
	return o.colorize("32", text)
}

func (o *Output) Yellow(text string) string {
	return o.colorize("33", text)
}

func (o *Output) Red(text string) string {
	return o.colorize("31", text)
}

func (o *Output) Gray(text string) string {
	return o.colorize("90", text)
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	prefix := "  "
	if emoji != "" {
		prefix += emoji + " "
	}
	fmt.Fprintf(o.out, prefix+msg+"\n", args...)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+o.Yellow("⚠ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintError(msg string, args ...any) {
	fmt.Fprintf(o.errOut, "  "+o.Red("✗ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", path)
}

func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
