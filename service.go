package gatt

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// A Service is a BLE service, exposed to the host daemon as an
// org.bluez.GattService1 object. Calls to AddCharacteristic must occur
// before the owning application is registered.
type Service struct {
	uuid    UUID
	primary bool
	chars   []*Characteristic

	// storage used by Application
	app   *Application
	index int
}

// NewService creates a service with the given UUID.
func NewService(u UUID, primary bool) *Service {
	return &Service{uuid: u, primary: primary}
}

// AddCharacteristic adds a characteristic to a service.
// AddCharacteristic panics if the service already contains
// another characteristic with the same UUID.
func (s *Service) AddCharacteristic(u UUID) *Characteristic {
	for _, char := range s.chars {
		if char.uuid.Equal(u) {
			panic("service already contains a characteristic with uuid " + u.String())
		}
	}

	char := &Characteristic{
		service: s,
		uuid:    u,
		index:   len(s.chars),
	}
	s.chars = append(s.chars, char)
	return char
}

// Characteristics returns the service's characteristics in insertion
// order, for tree flattening by the application.
func (s *Service) Characteristics() []*Characteristic {
	return s.chars
}

// UUID returns the service's UUID.
func (s *Service) UUID() UUID {
	return s.uuid
}

// Primary reports whether this is a primary service.
func (s *Service) Primary() bool {
	return s.primary
}

// Path returns the service's object path, derived from its position
// under the owning application. Path panics if the service has not been
// added to an application.
func (s *Service) Path() dbus.ObjectPath {
	if s.app == nil {
		panic("service not added to an application")
	}
	return dbus.ObjectPath(fmt.Sprintf("%s/service%d", s.app.path, s.index))
}

// Properties returns the service's property map. The characteristic
// path list is derived from the current composition order and stays
// consistent with Characteristics.
func (s *Service) Properties() Properties {
	paths := make([]dbus.ObjectPath, 0, len(s.chars))
	for _, char := range s.chars {
		paths = append(paths, char.Path())
	}
	return Properties{
		GattServiceInterface: {
			"UUID":            dbus.MakeVariant(s.uuid.Full()),
			"Primary":         dbus.MakeVariant(s.primary),
			"Characteristics": dbus.MakeVariant(paths),
		},
	}
}
