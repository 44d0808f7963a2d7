// Package bluez binds a GATT application and advertisement to the BlueZ
// daemon over the system D-Bus. The daemon owns the radio; this package
// only locates an adapter, powers it on, and hands the composed object
// tree and advertisement payload across the bus.
package bluez

import (
	"errors"
	"fmt"
	"sort"

	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"

	gatt "github.com/DiyaS-77/FindMe-Profile"
)

// ErrAdapterNotFound is returned when the daemon exposes no usable
// Bluetooth adapter.
var ErrAdapterNotFound = errors.New("bluez: no Bluetooth adapter found")

// managedObjects mirrors the a{oa{sa{sv}}} shape of GetManagedObjects.
type managedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// A Conn is a connection to the BlueZ daemon.
type Conn struct {
	bus *dbus.Conn
}

// Connect opens the system bus. Failure here is fatal for the
// peripheral: nothing downstream can function without the daemon.
func Connect() (*Conn, error) {
	bus, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("bluez: connect to system bus: %w", err)
	}
	return &Conn{bus: bus}, nil
}

// Close releases the bus connection.
func (c *Conn) Close() error {
	return c.bus.Close()
}

// FindAdapter returns the object path of the adapter with the given
// name (such as "hci0"), or of the first adapter the daemon exposes
// when name is empty.
func (c *Conn) FindAdapter(name string) (dbus.ObjectPath, error) {
	var objects managedObjects
	root := c.bus.Object(gatt.BluezBusName, "/")
	if err := root.Call(gatt.ObjectManagerInterface+".GetManagedObjects", 0).Store(&objects); err != nil {
		return "", fmt.Errorf("bluez: enumerate adapters: %w", err)
	}
	return pickAdapter(objects, name)
}

// pickAdapter selects an adapter path from a managed objects listing.
// With no name, the lowest path advertising Adapter1 wins, so the
// choice is stable across the daemon's unordered reply.
func pickAdapter(objects managedObjects, name string) (dbus.ObjectPath, error) {
	if name != "" {
		want := dbus.ObjectPath("/org/bluez/" + name)
		if ifaces, ok := objects[want]; ok {
			if _, ok := ifaces[gatt.AdapterInterface]; ok {
				return want, nil
			}
		}
		return "", fmt.Errorf("bluez: adapter %q: %w", name, ErrAdapterNotFound)
	}

	paths := make([]string, 0, len(objects))
	for path := range objects {
		paths = append(paths, string(path))
	}
	sort.Strings(paths)
	for _, path := range paths {
		if _, ok := objects[dbus.ObjectPath(path)][gatt.AdapterInterface]; ok {
			return dbus.ObjectPath(path), nil
		}
	}
	return "", ErrAdapterNotFound
}

// PowerOn powers the adapter via the daemon.
func (c *Conn) PowerOn(adapter dbus.ObjectPath) error {
	obj := c.bus.Object(gatt.BluezBusName, adapter)
	call := obj.Call(gatt.PropertiesInterface+".Set", 0,
		gatt.AdapterInterface, "Powered", dbus.MakeVariant(true))
	if call.Err != nil {
		return fmt.Errorf("bluez: power on %s: %w", adapter, call.Err)
	}
	log.WithField("adapter", adapter).Info("adapter powered on")
	return nil
}

// RegisterApplication exports the application's object tree on the bus
// and hands it to the daemon's GATT manager. The daemon enumerates the
// tree through the application's ObjectManager interface during this
// call. The returned error carries the daemon's rejection when
// registration fails; there is no retry.
func (c *Conn) RegisterApplication(adapter dbus.ObjectPath, app *gatt.Application) error {
	if err := c.exportTree(app); err != nil {
		return err
	}
	obj := c.bus.Object(gatt.BluezBusName, adapter)
	call := obj.Call(gatt.GattManagerInterface+".RegisterApplication", 0,
		app.Path(), map[string]dbus.Variant{})
	if call.Err != nil {
		return fmt.Errorf("bluez: register application: %w", call.Err)
	}
	log.WithField("path", app.Path()).Info("GATT application registered")
	return nil
}

// UnregisterApplication removes the application from the daemon.
func (c *Conn) UnregisterApplication(adapter dbus.ObjectPath, app *gatt.Application) error {
	obj := c.bus.Object(gatt.BluezBusName, adapter)
	call := obj.Call(gatt.GattManagerInterface+".UnregisterApplication", 0, app.Path())
	if call.Err != nil {
		return fmt.Errorf("bluez: unregister application: %w", call.Err)
	}
	return nil
}

// exportTree exports the application root with its ObjectManager
// interface, each service and characteristic at its derived path, and
// binds the bus as every characteristic's notification emitter.
func (c *Conn) exportTree(app *gatt.Application) error {
	if err := c.bus.Export(app, app.Path(), gatt.ObjectManagerInterface); err != nil {
		return fmt.Errorf("bluez: export application: %w", err)
	}
	for _, s := range app.Services() {
		if err := c.bus.Export(s, s.Path(), gatt.GattServiceInterface); err != nil {
			return fmt.Errorf("bluez: export service %s: %w", s.Path(), err)
		}
		for _, char := range s.Characteristics() {
			if err := c.bus.Export(char, char.Path(), gatt.GattCharacteristicInterface); err != nil {
				return fmt.Errorf("bluez: export characteristic %s: %w", char.Path(), err)
			}
			char.BindEmitter(c.bus)
		}
	}
	return nil
}

// RegisterAdvertisement exports adv at path and registers it with the
// daemon's advertising manager.
func (c *Conn) RegisterAdvertisement(adapter dbus.ObjectPath, adv *gatt.Advertisement, path dbus.ObjectPath) error {
	if err := c.bus.Export(adv, path, gatt.AdvertisementInterface); err != nil {
		return fmt.Errorf("bluez: export advertisement: %w", err)
	}
	// GetAll is looked up on the Properties interface.
	if err := c.bus.Export(adv, path, gatt.PropertiesInterface); err != nil {
		return fmt.Errorf("bluez: export advertisement properties: %w", err)
	}
	obj := c.bus.Object(gatt.BluezBusName, adapter)
	call := obj.Call(gatt.AdvertisingManagerInterface+".RegisterAdvertisement", 0,
		path, map[string]dbus.Variant{})
	if call.Err != nil {
		return fmt.Errorf("bluez: register advertisement: %w", call.Err)
	}
	log.WithField("path", path).Info("advertisement registered")
	return nil
}

// UnregisterAdvertisement removes the advertisement from the daemon.
func (c *Conn) UnregisterAdvertisement(adapter dbus.ObjectPath, path dbus.ObjectPath) error {
	obj := c.bus.Object(gatt.BluezBusName, adapter)
	call := obj.Call(gatt.AdvertisingManagerInterface+".UnregisterAdvertisement", 0, path)
	if call.Err != nil {
		return fmt.Errorf("bluez: unregister advertisement: %w", call.Err)
	}
	return nil
}
