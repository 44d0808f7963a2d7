package gatt

import (
	"github.com/godbus/dbus/v5"
	log "github.com/sirupsen/logrus"
)

// An Advertisement describes the peripheral's discoverability to the
// daemon's advertising manager as an org.bluez.LEAdvertisement1 object.
// All properties are fixed at construction; the daemon reads them once
// and releases the advertisement on teardown.
type Advertisement struct {
	ServiceUUIDs   []string
	LocalName      string
	IncludeTxPower bool

	// OnRelease, if set, is called when the daemon tears the
	// advertisement down, for example on adapter reset.
	OnRelease func()
}

// GetAll implements org.freedesktop.DBus.Properties for the
// advertisement. The daemon only ever asks for
// org.bluez.LEAdvertisement1, so the interface name is not inspected.
func (a *Advertisement) GetAll(iface string) (map[string]dbus.Variant, *dbus.Error) {
	return map[string]dbus.Variant{
		"Type":           dbus.MakeVariant("peripheral"),
		"ServiceUUIDs":   dbus.MakeVariant(a.ServiceUUIDs),
		"LocalName":      dbus.MakeVariant(a.LocalName),
		"IncludeTxPower": dbus.MakeVariant(a.IncludeTxPower),
	}, nil
}

// Release handles the daemon's teardown notification. There is no
// internal state to clean up.
func (a *Advertisement) Release() *dbus.Error {
	log.Info("advertisement released")
	if a.OnRelease != nil {
		a.OnRelease()
	}
	return nil
}
