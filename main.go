package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"i4.energy/across/smscmd/gateway"
	"i4.energy/across/smscmd/modem"
	"i4.energy/across/smscmd/mqttcmd"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP server")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("sim-pin", "", "SIM card PIN code (if required)")
	flag.String("mqtt-broker", "", "MQTT broker URL, empty disables MQTT (e.g. tcp://localhost:1883)")
	flag.String("mqtt-topic", "smscmd/command", "MQTT topic command lines are received on")
	flag.String("mqtt-client-id", "smscmd-1", "MQTT client identifier")
	flag.String("mqtt-username", "", "MQTT username")
	flag.String("mqtt-password", "", "MQTT password")
	flag.String("allowed-senders", "", "Comma separated phone numbers allowed to send commands, empty allows all")
	flag.Bool("reply", true, "Reply to SMS commands with their result")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := newSettings()
	dispatcher := newDispatcher(logger.With("component", "dispatch"), store)

	modemConfig, err := modem.NewConfigBuilder().
		WithATTimeout(5 * time.Second).
		WithInitTimeout(30 * time.Second).
		WithMaxRetries(5).
		WithMinSendInterval(10 * time.Second).
		WithSimPIN(config.SimPIN).
		WithDialer(modem.SerialDialer{
			PortName: config.SerialPort,
			BaudRate: config.BaudRate,
		}).
		Build()
	if err != nil {
		logger.Error("Failed to create modem config", "error", err)
		os.Exit(1)
	}

	m, err := modem.New(ctx, modemConfig)
	if err != nil {
		logger.Error("Failed to create modem", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting SMS command gateway", "serial_port", config.SerialPort, "commands", dispatcher.Commands())

	go func() {
		if err := m.Loop(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Modem loop stopped", "error", err)
			stop()
		}
	}()

	gw := &gateway.Gateway{
		Logger:         logger.With("component", "gateway"),
		Device:         m,
		Dispatcher:     dispatcher,
		AllowedSenders: config.AllowedSenders,
		Reply:          config.Reply,
	}
	go func() {
		if err := gw.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Gateway stopped", "error", err)
		}
	}()

	var bridge *mqttcmd.Bridge
	if config.MQTTBroker != "" {
		bridge = &mqttcmd.Bridge{
			Logger:     logger.With("component", "mqtt"),
			Dispatcher: dispatcher,
			Topic:      config.MQTTTopic,
		}
		err := bridge.Connect(ctx, mqttcmd.Config{
			Broker:   config.MQTTBroker,
			ClientID: config.MQTTClientID,
			Topic:    config.MQTTTopic,
			Username: config.MQTTUsername,
			Password: config.MQTTPassword,
		})
		if err != nil {
			// Auto-reconnect keeps trying in the background
			logger.Error("MQTT connect failed", "error", err, "broker", config.MQTTBroker)
		}
	}

	httpServer := &http.Server{
		Addr: config.BindAddress,
		Handler: &Server{
			Logger:     logger.With("component", "server"),
			Modem:      m,
			Dispatcher: dispatcher,
			Settings:   store,
		},
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal or a modem failure
	<-ctx.Done()
	logger.Info("Shutting down")

	if bridge != nil {
		logger.Info("Closing MQTT connection")
		bridge.Close()
	}

	logger.Info("Closing modem connection")
	if err := m.Close(); err != nil {
		logger.Error("Failed to close modem", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Closing HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to gracefully shutdown server", "error", err)
		os.Exit(1)
	}
}
