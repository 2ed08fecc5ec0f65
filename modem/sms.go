package modem

import (
	"context"
	"fmt"
	"strings"
	"time"

	"i4.energy/across/smscmd/at"
)

// SMS represents a text message stored on the modem.
type SMS struct {
	Index  int
	Status string // "REC UNREAD", "REC READ", "STO UNSENT", "STO SENT"
	Sender string
	Time   string
	Text   string
}

// SendSMS sends a text message to the specified recipient.
//
// The message is sent in text mode (not PDU mode). The recipient should be
// in international format (e.g., "+1234567890").
//
// This method blocks until the message is accepted by the network or an error
// occurs. Network delivery (to the final recipient) happens asynchronously.
// Consecutive sends are spaced by at least the configured minimum send
// interval.
func (m *Modem) SendSMS(ctx context.Context, recipient, message string) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := m.pace(ctx); err != nil {
		return err
	}

	// Use exec to send the initial command and get the prompt
	resp, err := m.exec(ctx, fmt.Sprintf(`AT+CMGS="%s"`, recipient))
	if err != nil {
		return fmt.Errorf("AT+CMGS command failed: %w", err)
	}

	// Check if we got the prompt
	if !strings.Contains(resp, at.Prompt) {
		return fmt.Errorf("did not receive SMS prompt, got: %q", resp)
	}

	// Now send the message body and wait for confirmation
	// This is essentially another exec(), but we just send the message text
	messageCmd := message + at.CtrlZ
	resp, err = m.exec(ctx, messageCmd)
	if err != nil {
		return fmt.Errorf("SMS send failed: %w", err)
	}

	// Check for successful send (should contain +CMGS and OK)
	if !strings.Contains(resp, at.OK) {
		return fmt.Errorf("unexpected SMS response: %s", resp)
	}

	m.lastSend = time.Now()
	return nil
}

// pace blocks until the minimum send interval since the last accepted
// SMS has elapsed.
func (m *Modem) pace(ctx context.Context) error {
	if m.config.minSendInterval <= 0 || m.lastSend.IsZero() {
		return nil
	}
	wait := time.Until(m.lastSend.Add(m.config.minSendInterval))
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting for send slot: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

// ReadSMS reads the message stored at index.
//
// Transport level failures are retried up to the configured number of
// retries. A response that cannot be parsed is not retried.
func (m *Modem) ReadSMS(ctx context.Context, index int) (SMS, error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	resp, err := m.retry(ctx, at.ReadMessage(index))
	if err != nil {
		return SMS{}, fmt.Errorf("read SMS %d: %w", index, err)
	}

	msg, err := at.ParseCMGR(resp)
	if err != nil {
		return SMS{}, fmt.Errorf("read SMS %d: %w", index, err)
	}

	return SMS{
		Index:  index,
		Status: msg.Status,
		Sender: msg.Sender,
		Time:   msg.Time,
		Text:   msg.Text,
	}, nil
}

// DeleteSMS removes the message stored at index.
func (m *Modem) DeleteSMS(ctx context.Context, index int) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if _, err := m.retry(ctx, at.DeleteMessage(index)); err != nil {
		return fmt.Errorf("delete SMS %d: %w", index, err)
	}
	return nil
}

func (m *Modem) retry(ctx context.Context, cmd string) (string, error) {
	attempts := m.config.maxRetries
	if attempts <= 0 {
		attempts = 1
	}

	var (
		resp string
		err  error
	)
	for i := 0; i < attempts; i++ {
		resp, err = m.exec(ctx, cmd)
		if err == nil {
			return resp, nil
		}
		if m.closed.Load() || ctx.Err() != nil {
			break
		}
	}
	return resp, err
}
