// Package gateway feeds SMS received by the modem into the command
// dispatcher and answers the sender.
package gateway

//go:generate go tool mockgen -source=gateway.go -destination=mock_device.go -package=gateway

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"i4.energy/across/smscmd/at"
	"i4.energy/across/smscmd/dispatch"
	"i4.energy/across/smscmd/modem"
)

// Device is the part of *modem.Modem the gateway needs.
type Device interface {
	URC() <-chan string
	ReadSMS(ctx context.Context, index int) (modem.SMS, error)
	DeleteSMS(ctx context.Context, index int) error
	SendSMS(ctx context.Context, recipient, message string) error
}

// Gateway reads every message announced by a +CMTI notification,
// runs its text through the Dispatcher and deletes it from storage.
type Gateway struct {
	Logger     *slog.Logger
	Device     Device
	Dispatcher *dispatch.Dispatcher
	// AllowedSenders restricts who may send commands. Empty allows all.
	AllowedSenders []string
	// Reply sends the result back to the sender when a command matched.
	Reply bool
}

// Run consumes notifications until ctx is done or the URC channel is
// closed.
func (g *Gateway) Run(ctx context.Context) error {
	urcs := g.Device.URC()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case urc, ok := <-urcs:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(urc, at.UrcNewMsg) {
				g.Logger.Debug("Ignoring URC", "urc", urc)
				continue
			}
			g.handleNotification(ctx, urc)
		}
	}
}

func (g *Gateway) handleNotification(ctx context.Context, urc string) {
	note, err := at.ParseCMTI(urc)
	if err != nil {
		g.Logger.Warn("Bad new message notification", "error", err, "urc", urc)
		return
	}

	sms, err := g.Device.ReadSMS(ctx, note.Index)
	if err != nil {
		g.Logger.Error("Failed to read SMS", "error", err, "index", note.Index)
		return
	}

	g.HandleMessage(ctx, sms)

	if err := g.Device.DeleteSMS(ctx, note.Index); err != nil {
		g.Logger.Error("Failed to delete SMS", "error", err, "index", note.Index)
	}
}

// HandleMessage dispatches the text of sms. It reports false when the
// sender is not allowed and the message was dropped.
func (g *Gateway) HandleMessage(ctx context.Context, sms modem.SMS) (dispatch.Result, bool) {
	if !g.allowed(sms.Sender) {
		g.Logger.Warn("Dropping SMS from unknown sender", "sender", sms.Sender, "index", sms.Index)
		return dispatch.Result{}, false
	}

	res := g.Dispatcher.Handle(sms.Text)
	g.Logger.Info("SMS command processed", "sender", sms.Sender, "command", res.Command, "outcome", res.Outcome.String())

	if g.Reply && res.Command != "" {
		if err := g.Device.SendSMS(ctx, sms.Sender, res.String()); err != nil {
			g.Logger.Error("Failed to send reply", "error", err, "to", sms.Sender)
		}
	}
	return res, true
}

func (g *Gateway) allowed(sender string) bool {
	if len(g.AllowedSenders) == 0 {
		return true
	}
	return slices.Contains(g.AllowedSenders, strings.TrimSpace(sender))
}
