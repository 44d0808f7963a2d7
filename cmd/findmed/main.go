// Command findmed runs a "Find Me" BLE peripheral behind the BlueZ
// daemon: it advertises the Immediate Alert service and reacts to alert
// level writes from a connected central.
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/godbus/dbus/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	gatt "github.com/DiyaS-77/FindMe-Profile"
	"github.com/DiyaS-77/FindMe-Profile/bluez"
	"github.com/DiyaS-77/FindMe-Profile/broadcast"
	"github.com/DiyaS-77/FindMe-Profile/config"
	"github.com/DiyaS-77/FindMe-Profile/metrics"
)

func main() {
	var (
		cfgPath = flag.String("config", "/etc/findmed.yaml", "path to config yaml")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	conn, err := bluez.Connect()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to the Bluetooth daemon")
	}
	defer conn.Close()

	adapter, err := conn.FindAdapter(cfg.Adapter)
	if err != nil {
		log.WithError(err).Fatal("no usable Bluetooth adapter")
	}
	log.WithField("adapter", adapter).Info("using adapter")

	if err := conn.PowerOn(adapter); err != nil {
		log.WithError(err).Fatal("failed to power on adapter")
	}

	hub := broadcast.NewHub()

	app := gatt.NewApplication(dbus.ObjectPath(cfg.BasePath + "/app"))
	app.AddService(gatt.NewImmediateAlertService(func(level byte, msg string, notified bool) {
		metrics.AlertsTotal.WithLabelValues(msg).Inc()
		if notified {
			metrics.NotificationsSent.Inc()
		} else {
			metrics.NotificationsDropped.Inc()
		}
		hub.Broadcast(broadcast.Event{
			Type: "alert/received",
			Payload: map[string]interface{}{
				"level":    level,
				"message":  msg,
				"notified": notified,
			},
		})
	}))

	if err := conn.RegisterApplication(adapter, app); err != nil {
		log.WithError(err).Fatal("failed to register GATT application")
	}
	defer func() {
		if err := conn.UnregisterApplication(adapter, app); err != nil {
			log.WithError(err).Warn("failed to unregister GATT application")
		}
	}()

	adv := &gatt.Advertisement{
		ServiceUUIDs:   []string{gatt.ImmediateAlertUUID.String()},
		LocalName:      cfg.LocalName,
		IncludeTxPower: cfg.IncludeTxPower,
		OnRelease: func() {
			hub.Broadcast(broadcast.Event{Type: "advertisement/released"})
		},
	}
	advPath := dbus.ObjectPath(cfg.BasePath + "/advertisement0")
	if err := conn.RegisterAdvertisement(adapter, adv, advPath); err != nil {
		log.WithError(err).Fatal("failed to register advertisement")
	}
	defer func() {
		if err := conn.UnregisterAdvertisement(adapter, advPath); err != nil {
			log.WithError(err).Warn("failed to unregister advertisement")
		}
	}()

	if cfg.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/ws", hub)
		go func() {
			log.WithField("addr", cfg.Listen).Info("serving metrics and events")
			if err := http.ListenAndServe(cfg.Listen, mux); err != nil {
				log.WithError(err).Error("http server stopped")
			}
		}()
	}

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.WithError(err).Warn("sd_notify failed")
	}
	log.WithField("name", cfg.LocalName).Info("peripheral up, waiting for centrals")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")
}
