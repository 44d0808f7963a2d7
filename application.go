package gatt

import "github.com/godbus/dbus/v5"

// Properties maps a D-Bus interface name to the property values an
// object exposes under it. dbus.Variant carries the heterogeneous
// values (strings, booleans, byte sequences, object paths and arrays
// of paths).
type Properties map[string]map[string]dbus.Variant

// An ObjectMap is the flattened object tree handed to the daemon's
// ObjectManager query at registration time.
type ObjectMap map[dbus.ObjectPath]Properties

// An Application is the root of the exposed GATT object tree. The host
// daemon enumerates the tree once, synchronously, when the application
// is registered; thereafter it calls directly into the exported
// characteristics.
type Application struct {
	path     dbus.ObjectPath
	services []*Service
}

// NewApplication creates an application rooted at basePath.
func NewApplication(basePath dbus.ObjectPath) *Application {
	return &Application{path: basePath}
}

// Path returns the application's root object path.
func (a *Application) Path() dbus.ObjectPath {
	return a.path
}

// AddService adds a service to the application. The service's object
// path is derived from its append position, so services must not be
// added or reordered after the application has been registered.
func (a *Application) AddService(s *Service) {
	s.app = a
	s.index = len(a.services)
	a.services = append(a.services, s)
}

// Services returns the application's services in insertion order.
func (a *Application) Services() []*Service {
	return a.services
}

// GetManagedObjects implements org.freedesktop.DBus.ObjectManager for
// the daemon's registration query. The tree is flattened depth first:
// each service's own entry, then its characteristics in stored order.
// The map is computed fresh on every call so it reflects composition at
// call time.
func (a *Application) GetManagedObjects() (ObjectMap, *dbus.Error) {
	objects := make(ObjectMap)
	for _, s := range a.services {
		objects[s.Path()] = s.Properties()
		for _, char := range s.Characteristics() {
			objects[char.Path()] = char.Properties()
		}
	}
	return objects, nil
}
