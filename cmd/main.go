package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dgtx/config"
	"dgtx/pkg/events"
	"dgtx/pkg/exchange"
	"dgtx/pkg/types"

	log "github.com/sirupsen/logrus"
)

func main() {
	configureLog(config.Env.EnvName)

	// init context for graceful shutdown
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(config.Env.EnvName)
	if err != nil {
		log.Fatalf("fail to load config: %v", err)
	}

	// trap signal for graceful shutdown
	setupSignalHandler(cancel)

	ex, err := exchange.New(cfg.Client)
	if err != nil {
		log.Panicf("fail to create exchange client: %v", err)
	}
	registerHandlers(ex)

	if err := ex.Connect(); err != nil {
		log.Fatalf("fail to connect: %v", err)
	}

	<-rootCtx.Done()
	ex.Close()
	log.Info("bye 👋")
}

func registerHandlers(ex *exchange.DgtxExchange) {
	ex.On(events.Connect, func(any) {
		log.Info("connected")
	})
	ex.On(events.Close, func(any) {
		log.Info("connection closed")
	})
	ex.On(events.WsError, func(data any) {
		log.Errorf("ws error: %v", data)
	})
	ex.On(events.TraderStatus, func(any) {
		log.Infof("trader: balance=%v leverage=%v position=%v", ex.Balance(), ex.CurrentLeverage(), ex.Position())
	})
	ex.On(events.GapChange, func(data any) {
		log.Infof("spread gap: %v", data)
	})
	ex.On(events.FuturesPxUpdate, func(data any) {
		log.Debugf("futures px: %v", data)
	})
	ex.On(events.OrderPlaced, func(data any) {
		log.Infof("order placed: %+v", data)
	})
	ex.On(events.OrderFilled, func(data any) {
		log.Infof("order filled: %+v", data)
	})
	ex.On(events.OrderCancelled, func(data any) {
		log.Infof("order cancelled: %+v", data)
	})
	ex.On(events.OrderRejected, func(data any) {
		log.Warnf("order rejected: %v", data)
	})
	ex.On(events.SystemError, func(data any) {
		log.Errorf("exchange error: %v", data)
	})
}

func configureLog(envName types.EnvName) {
	log.SetLevel(log.InfoLevel)
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if envName == types.EnvLocal || envName == types.EnvDev {
		log.SetLevel(log.DebugLevel)
	}
}

func setupSignalHandler(cancel context.CancelFunc) {
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigC
		log.Info("🚩 received shutdown signal")
		cancel()
	}()
}
