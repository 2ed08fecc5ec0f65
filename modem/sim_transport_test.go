package modem_test

import (
	"context"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"i4.energy/across/smscmd/at"
	"i4.energy/across/smscmd/modem"
)

// simTransport answers every written command from a script, the way a
// modem in ATE0 mode would. Unknown commands get ERROR. Reads block
// until a reply or an injected URC is available, like a serial port.
type simTransport struct {
	mu     sync.Mutex
	script map[string]string
	writes []string
	reads  chan []byte
	closed bool
}

func newSimTransport(script map[string]string) *simTransport {
	return &simTransport{
		script: script,
		reads:  make(chan []byte, 16),
	}
}

func (s *simTransport) Write(p []byte) (int, error) {
	cmd := strings.TrimSuffix(string(p), "\r")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, io.ErrClosedPipe
	}
	s.writes = append(s.writes, cmd)

	resp, ok := s.script[cmd]
	if !ok {
		resp = "\r\nERROR\r\n"
	}
	s.reads <- []byte(resp)
	return len(p), nil
}

func (s *simTransport) Read(p []byte) (int, error) {
	data, ok := <-s.reads
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (s *simTransport) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.reads)
	}
	return nil
}

// Inject queues unsolicited output from the modem.
func (s *simTransport) Inject(data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.reads <- []byte(data)
	}
}

// Writes returns the commands written so far.
func (s *simTransport) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.writes)
}

type dialFunc func(ctx context.Context) (modem.Transport, error)

func (f dialFunc) Dial(ctx context.Context) (modem.Transport, error) { return f(ctx) }

func readyScript() map[string]string {
	ok := "\r\nOK\r\n"
	return map[string]string{
		at.CmdAt:                   ok,
		at.CmdEchoOff:              ok,
		at.CmdVerboseErrors:        ok,
		at.CmdSimStatus:            "\r\n+CPIN: READY\r\n\r\nOK\r\n",
		at.CmdSetTextMode:          ok,
		at.CmdNewMessageIndication: ok,
	}
}

func TestIncomingSMSRoundTrip(t *testing.T) {
	script := readyScript()
	script[at.ReadMessage(3)] = "\r\n+CMGR: \"REC UNREAD\",\"+306900000001\",,\"24/01/02,10:11:12+08\"\r\nMin2 10.5\r\n\r\nOK\r\n"
	script[at.DeleteMessage(3)] = "\r\nOK\r\n"
	sim := newSimTransport(script)

	config, err := modem.NewConfigBuilder().
		WithATTimeout(time.Second).
		WithDialer(dialFunc(func(context.Context) (modem.Transport, error) { return sim, nil })).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	ctx := context.Background()
	m, err := modem.New(ctx, config)
	if err != nil {
		t.Fatalf("failed to create modem: %v", err)
	}
	defer m.Close()
	go m.Loop(ctx)

	sim.Inject("\r\n+CMTI: \"SM\",3\r\n")

	var urc string
	select {
	case urc = <-m.URC():
	case <-time.After(time.Second):
		t.Fatal("no URC received")
	}

	note, err := at.ParseCMTI(urc)
	if err != nil {
		t.Fatalf("ParseCMTI(%q): %v", urc, err)
	}

	sms, err := m.ReadSMS(ctx, note.Index)
	if err != nil {
		t.Fatalf("ReadSMS: %v", err)
	}
	if sms.Sender != "+306900000001" || sms.Text != "Min2 10.5" || sms.Index != 3 {
		t.Errorf("unexpected SMS: %+v", sms)
	}

	if err := m.DeleteSMS(ctx, note.Index); err != nil {
		t.Fatalf("DeleteSMS: %v", err)
	}

	want := []string{
		at.CmdAt, at.CmdEchoOff, at.CmdVerboseErrors, at.CmdSimStatus,
		at.CmdSetTextMode, at.CmdNewMessageIndication,
		"AT+CMGR=3", "AT+CMGD=3",
	}
	if got := sim.Writes(); !slices.Equal(got, want) {
		t.Errorf("writes = %q, want %q", got, want)
	}
}

func TestUnknownCommandIsError(t *testing.T) {
	sim := newSimTransport(readyScript())

	config, err := modem.NewConfigBuilder().
		WithATTimeout(time.Second).
		WithMaxRetries(2).
		WithDialer(dialFunc(func(context.Context) (modem.Transport, error) { return sim, nil })).
		Build()
	if err != nil {
		t.Fatalf("unexpected error from Build(): %v", err)
	}

	ctx := context.Background()
	m, err := modem.New(ctx, config)
	if err != nil {
		t.Fatalf("failed to create modem: %v", err)
	}
	defer m.Close()
	go m.Loop(ctx)

	if err := m.DeleteSMS(ctx, 9); err == nil {
		t.Fatal("expected error for rejected delete")
	}
	if got := sim.Writes(); len(got) != 8 || got[6] != "AT+CMGD=9" || got[7] != "AT+CMGD=9" {
		t.Errorf("expected two delete attempts, writes = %q", got)
	}
}
