package at

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a modem line does not have the
// expected shape.
var ErrMalformed = errors.New("malformed response")

// NewMessage is the payload of a +CMTI notification.
type NewMessage struct {
	Storage string // e.g. "SM" for SIM, "ME" for phone memory
	Index   int
}

// Message is a stored SMS as returned by AT+CMGR in text mode.
type Message struct {
	Status string // "REC UNREAD", "REC READ", ...
	Sender string
	Time   string
	Text   string
}

// ReadMessage returns the command reading the message at index.
func ReadMessage(index int) string {
	return "AT+CMGR=" + strconv.Itoa(index)
}

// DeleteMessage returns the command deleting the message at index.
func DeleteMessage(index int) string {
	return "AT+CMGD=" + strconv.Itoa(index)
}

// ParseCMTI parses a new message indication such as `+CMTI: "SM",3`.
func ParseCMTI(line string) (NewMessage, error) {
	rest, ok := strings.CutPrefix(line, UrcNewMsg)
	if !ok {
		return NewMessage{}, fmt.Errorf("%w: not a %s line: %q", ErrMalformed, UrcNewMsg, line)
	}

	fields := splitFields(strings.TrimSpace(rest))
	if len(fields) != 2 {
		return NewMessage{}, fmt.Errorf("%w: %q", ErrMalformed, line)
	}

	index, err := strconv.Atoi(fields[1])
	if err != nil {
		return NewMessage{}, fmt.Errorf("%w: bad index in %q", ErrMalformed, line)
	}

	return NewMessage{Storage: fields[0], Index: index}, nil
}

// ParseCMGR parses the response to AT+CMGR as joined by the modem
// loop: one line per token, separated by "\n". The header is
//
//	+CMGR: "REC UNREAD","+306912345678",,"24/01/02,10:11:12+08"
//
// followed by the message body and the final OK. A multi-line body is
// joined back with "\n".
func ParseCMGR(response string) (Message, error) {
	lines := strings.Split(response, "\n")

	header := -1
	for i, l := range lines {
		if strings.HasPrefix(l, RespReadMsg) {
			header = i
			break
		}
	}
	if header < 0 {
		return Message{}, fmt.Errorf("%w: no %s header in %q", ErrMalformed, RespReadMsg, response)
	}

	fields := splitFields(strings.TrimSpace(strings.TrimPrefix(lines[header], RespReadMsg)))
	if len(fields) < 2 {
		return Message{}, fmt.Errorf("%w: %q", ErrMalformed, lines[header])
	}

	msg := Message{
		Status: fields[0],
		Sender: fields[1],
	}
	if len(fields) > 3 {
		msg.Time = fields[3]
	}

	body := lines[header+1:]
	if n := len(body); n > 0 && body[n-1] == OK {
		body = body[:n-1]
	}
	msg.Text = strings.Join(body, "\n")

	return msg, nil
}

// splitFields splits a comma separated parameter list, keeping commas
// inside double quotes and stripping the quotes.
func splitFields(s string) []string {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(fields, cur.String())
}
