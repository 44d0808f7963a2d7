package gatt

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"
)

// Characteristic property flags understood by BlueZ.
const (
	FlagRead                 = "read"
	FlagWrite                = "write"
	FlagWriteWithoutResponse = "write-without-response"
	FlagNotify               = "notify"
)

// An Emitter broadcasts a D-Bus signal from an exported object.
// *dbus.Conn satisfies Emitter; tests substitute a capture.
type Emitter interface {
	Emit(path dbus.ObjectPath, name string, values ...interface{}) error
}

// A WriteHandler handles GATT write requests. Write and
// write-without-response requests are presented identically.
type WriteHandler interface {
	ServeWrite(c *Characteristic, data []byte, options map[string]dbus.Variant)
}

// WriteHandlerFunc is an adapter to allow the use of
// ordinary functions as WriteHandlers. If f is a function
// with the appropriate signature, WriteHandlerFunc(f) is a
// WriteHandler that calls f.
type WriteHandlerFunc func(c *Characteristic, data []byte, options map[string]dbus.Variant)

// ServeWrite calls f(c, data, options).
func (f WriteHandlerFunc) ServeWrite(c *Characteristic, data []byte, options map[string]dbus.Variant) {
	f(c, data, options)
}

// A NotifyHandler is informed when a central subscribes to, or
// unsubscribes from, value notifications on a characteristic.
type NotifyHandler interface {
	ServeNotify(c *Characteristic, notifying bool)
}

// NotifyHandlerFunc is an adapter to allow the use of
// ordinary functions as NotifyHandlers. If f is a function
// with the appropriate signature, NotifyHandlerFunc(f) is a
// NotifyHandler that calls f.
type NotifyHandlerFunc func(c *Characteristic, notifying bool)

// ServeNotify calls f(c, notifying).
func (f NotifyHandlerFunc) ServeNotify(c *Characteristic, notifying bool) {
	f(c, notifying)
}

// A Characteristic is a BLE characteristic, exposed to the host daemon
// as an org.bluez.GattCharacteristic1 object. The daemon calls WriteValue,
// StartNotify and StopNotify directly once the owning application has
// been registered.
type Characteristic struct {
	uuid  UUID
	flags []string

	// notifying gates outbound notifications. godbus dispatches each
	// exported method call on its own goroutine, so the flag is guarded.
	mu        sync.RWMutex
	notifying bool
	emitter   Emitter

	whandler WriteHandler
	nhandler NotifyHandler

	// storage used by other types
	service *Service
	index   int
}

// HandleWrite makes the characteristic support write-without-response
// requests, and routes write requests to h. HandleWrite must be called
// before the owning application is registered.
func (c *Characteristic) HandleWrite(h WriteHandler) {
	c.addFlag(FlagWriteWithoutResponse)
	c.whandler = h
}

// HandleWriteFunc calls HandleWrite(WriteHandlerFunc(f)).
func (c *Characteristic) HandleWriteFunc(f func(c *Characteristic, data []byte, options map[string]dbus.Variant)) {
	c.HandleWrite(WriteHandlerFunc(f))
}

// HandleNotify makes the characteristic support notify subscriptions,
// and routes subscription state changes to h. HandleNotify must be
// called before the owning application is registered.
func (c *Characteristic) HandleNotify(h NotifyHandler) {
	c.addFlag(FlagNotify)
	c.nhandler = h
}

// HandleNotifyFunc calls HandleNotify(NotifyHandlerFunc(f)).
func (c *Characteristic) HandleNotifyFunc(f func(c *Characteristic, notifying bool)) {
	c.HandleNotify(NotifyHandlerFunc(f))
}

func (c *Characteristic) addFlag(flag string) {
	for _, f := range c.flags {
		if f == flag {
			return
		}
	}
	c.flags = append(c.flags, flag)
}

// UUID returns the characteristic's UUID.
func (c *Characteristic) UUID() UUID {
	return c.uuid
}

// Service returns the service the characteristic belongs to.
func (c *Characteristic) Service() *Service {
	return c.service
}

// Path returns the characteristic's object path, derived from its
// position under the owning service. The position is fixed once set;
// services never reorder their characteristics.
func (c *Characteristic) Path() dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("%s/char%d", c.service.Path(), c.index))
}

// Notifying reports whether a central has subscribed to notifications.
func (c *Characteristic) Notifying() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.notifying
}

// BindEmitter attaches the signal emitter used for value notifications.
// The bluez registrar binds the bus connection here.
func (c *Characteristic) BindEmitter(e Emitter) {
	c.mu.Lock()
	c.emitter = e
	c.mu.Unlock()
}

// Flags returns the characteristic's property flags.
func (c *Characteristic) Flags() []string {
	return c.flags
}

// Properties returns the characteristic's current property map.
func (c *Characteristic) Properties() Properties {
	return Properties{
		GattCharacteristicInterface: {
			"UUID":      dbus.MakeVariant(c.uuid.Full()),
			"Service":   dbus.MakeVariant(c.service.Path()),
			"Flags":     dbus.MakeVariant(c.flags),
			"Notifying": dbus.MakeVariant(c.Notifying()),
		},
	}
}

// WriteValue handles org.bluez.GattCharacteristic1.WriteValue calls from
// the daemon. Recoverable conditions never surface as D-Bus errors; the
// protocol expects a void return. An empty payload is logged and dropped.
// The options map is accepted for protocol compatibility but not
// inspected.
func (c *Characteristic) WriteValue(value []byte, options map[string]dbus.Variant) *dbus.Error {
	if len(value) == 0 {
		log.WithField("char", c.uuid.String()).Warn("ignoring empty write")
		return nil
	}
	if c.whandler != nil {
		c.whandler.ServeWrite(c, value, options)
	}
	return nil
}

// StartNotify handles subscription requests from the daemon. Idempotent.
func (c *Characteristic) StartNotify() *dbus.Error {
	c.setNotifying(true)
	return nil
}

// StopNotify handles unsubscription requests from the daemon. Idempotent.
func (c *Characteristic) StopNotify() *dbus.Error {
	c.setNotifying(false)
	return nil
}

func (c *Characteristic) setNotifying(enabled bool) {
	c.mu.Lock()
	changed := c.notifying != enabled
	c.notifying = enabled
	c.mu.Unlock()

	log.WithFields(log.Fields{
		"char":      c.uuid.String(),
		"notifying": enabled,
	}).Info("notification state set")

	if changed && c.nhandler != nil {
		c.nhandler.ServeNotify(c, enabled)
	}
}

// Notify pushes data to the subscribed central as a PropertiesChanged
// signal on the characteristic's Value property. While no central is
// subscribed the data is dropped; nothing is queued for replay. The
// emission is fire-and-forget: BLE notifications are unacknowledged at
// this layer.
func (c *Characteristic) Notify(data []byte) error {
	c.mu.RLock()
	notifying, emitter := c.notifying, c.emitter
	c.mu.RUnlock()

	if !notifying {
		log.WithField("char", c.uuid.String()).Debug("notification skipped, no subscriber")
		return nil
	}
	if emitter == nil {
		return errors.New("gatt: characteristic not bound to a bus connection")
	}
	changed := map[string]dbus.Variant{"Value": dbus.MakeVariant(data)}
	return emitter.Emit(c.Path(), propertiesChangedSignal, GattCharacteristicInterface, changed, []string{})
}
