package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/inmobix/internal/client/forms"
	"github.com/dmitrijs2005/inmobix/internal/common"
)

// readPassword and isTerminal are test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTextDefault works like GetSimpleText but shows current in brackets and
// returns it when the user just presses Enter.
func GetTextDefault(reader *bufio.Reader, prompt, current string, w io.Writer) (string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	text, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	if text == "" {
		return current, nil
	}
	return text, nil
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal without echo. When stdin is not a terminal (piped input)
// the password is read as a plain line from reader.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(reader *bufio.Reader, prompt string, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		text, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	}

	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, _ := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetConfirm asks a yes/no question. An empty answer yields def.
func GetConfirm(reader *bufio.Reader, prompt string, def bool, w io.Writer) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	text, err := GetSimpleText(reader, prompt+" "+hint, w)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(text) {
	case "":
		return def, nil
	case "y", "yes", "s", "si", "sí":
		return true, nil
	default:
		return false, nil
	}
}

// fieldReader fills typed form fields from prompts and collects the parse
// failures as validation errors, so a form is reported in one go.
type fieldReader struct {
	reader *bufio.Reader
	w      io.Writer
	errs   forms.ValidationErrors
	err    error
}

func (f *fieldReader) text(prompt, current string) string {
	if f.err != nil {
		return current
	}
	v, err := GetTextDefault(f.reader, prompt, current, f.w)
	if err != nil {
		f.err = err
		return current
	}
	return v
}

// multiline reads free text over several lines; finishing straight away
// keeps current.
func (f *fieldReader) multiline(prompt, current string) string {
	if f.err != nil {
		return current
	}
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := GetMultiline(f.reader, prompt, f.w)
	if err != nil {
		f.err = err
		return current
	}
	if v == "" {
		return current
	}
	return v
}

func (f *fieldReader) decimal(field, prompt string, current float64) float64 {
	def := ""
	if current != 0 {
		def = strconv.FormatFloat(current, 'f', -1, 64)
	}
	v := f.text(prompt, def)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		f.errs = append(f.errs, forms.FieldError{Field: field, Message: "must be a number"})
		return 0
	}
	return n
}

func (f *fieldReader) integer(field, prompt string, current int) int {
	v := f.text(prompt, strconv.Itoa(current))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs = append(f.errs, forms.FieldError{Field: field, Message: "must be a whole number"})
		return 0
	}
	return n
}

func (f *fieldReader) yesNo(prompt string, current bool) bool {
	if f.err != nil {
		return current
	}
	v, err := GetConfirm(f.reader, prompt, current, f.w)
	if err != nil {
		f.err = err
		return current
	}
	return v
}

// done returns the I/O error first, then the parse errors, if any.
func (f *fieldReader) done() error {
	if f.err != nil {
		return f.err
	}
	if len(f.errs) > 0 {
		return f.errs
	}
	return nil
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

// askPassword returns the password as a string for the request DTOs; the
// raw bytes are wiped.
func (a *App) askPassword(prompt string) (string, error) {
	pw, err := GetPassword(a.reader, prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) confirm(prompt string, def bool) (bool, error) {
	return GetConfirm(a.reader, prompt, def, a.out)
}

func (a *App) fields() *fieldReader {
	return &fieldReader{reader: a.reader, w: a.out}
}

// argOrAsk returns args[i] when present, otherwise prompts for it.
func (a *App) argOrAsk(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return strings.TrimSpace(args[i]), nil
	}
	return a.ask(prompt)
}
