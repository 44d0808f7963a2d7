package gatt

import (
	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"
)

// Alert levels of the Alert Level characteristic.
const (
	NoAlert   = 0x00
	MildAlert = 0x01
	HighAlert = 0x02
)

// Immediate Alert service UUIDs assigned by the Bluetooth SIG.
var (
	ImmediateAlertUUID = UUID16(0x1802)
	AlertLevelUUID     = UUID16(0x2a06)
)

// An AlertFunc observes decoded alerts. notified reports whether a
// subscribed central was sent the message.
type AlertFunc func(level byte, message string, notified bool)

// AlertMessage maps an alert level to its human-readable message.
// Unrecognized levels map to "Unknown Alert" rather than failing.
func AlertMessage(level byte) string {
	switch level {
	case NoAlert:
		return "No Alert"
	case MildAlert:
		return "Mild Alert"
	case HighAlert:
		return "High Alert"
	default:
		return "Unknown Alert"
	}
}

// NewImmediateAlertService builds the Immediate Alert service with its
// single Alert Level characteristic. A write decodes the alert level
// from the first payload byte (remaining bytes are ignored), logs the
// mapped message, and pushes it to the subscribed central. The push is
// attempted on every write, whether or not the message changed.
// Listeners observe every decoded alert.
//
// The alert strings are fixed ASCII, so the byte-per-character encoding
// of the notification value is a plain []byte conversion.
func NewImmediateAlertService(listeners ...AlertFunc) *Service {
	s := NewService(ImmediateAlertUUID, true)
	c := s.AddCharacteristic(AlertLevelUUID)
	c.HandleWriteFunc(func(c *Characteristic, data []byte, options map[string]dbus.Variant) {
		level := data[0]
		msg := AlertMessage(level)
		log.WithFields(log.Fields{
			"level":   level,
			"message": msg,
		}).Info("alert level received")

		notified := c.Notifying()
		if err := c.Notify([]byte(msg)); err != nil {
			log.WithError(err).Warn("failed to send alert notification")
			notified = false
		}
		for _, l := range listeners {
			l(level, msg, notified)
		}
	})
	c.HandleNotifyFunc(func(c *Characteristic, notifying bool) {
		if notifying {
			log.Info("alert notifications enabled")
		} else {
			log.Info("alert notifications disabled")
		}
	})
	return s
}
