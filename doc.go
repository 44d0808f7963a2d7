// Package gatt implements the GATT object tree for a Bluetooth LE
// "Find Me" peripheral.
//
// Gatt (Generic Attribute Profile) is the protocol used to expose
// services and characteristics from a BLE peripheral to a central.
//
// This package holds the composable object tree (Application, Service,
// Characteristic) and the notification state machine of the Alert Level
// characteristic. It does not talk to the radio itself: the tree is
// handed to the host Bluetooth daemon (BlueZ), which owns the adapter
// and mediates all GATT and advertising traffic. See the bluez package
// for the registration glue.
//
// SETUP
//
// Only Linux with BlueZ 5.x is supported. The daemon must be running
// with the GATT manager enabled (the default on modern distributions),
// and the process needs permission to talk to org.bluez on the system
// bus. Unlike HCI-socket based stacks there is no need to bring the
// device down first; BlueZ keeps control of the radio.
//
// USAGE
//
// Peripherals are constructed by creating an application, adding
// services and characteristics, and then registering the application
// with the daemon.
//
//	app := gatt.NewApplication("/org/bluez/findme/app")
//	app.AddService(gatt.NewImmediateAlertService())
//
//	conn, err := bluez.Connect()
//	// ...
//	adapter, err := conn.FindAdapter("")
//	// ...
//	err = conn.RegisterApplication(adapter, app)
//
// Once registered, the daemon calls directly into the exported
// characteristics for writes and subscriptions, and notifications are
// emitted back through the same bus connection.
//
// Note that some BLE central devices, particularly iOS, may aggressively
// cache results from previous connections. If you change your services or
// characteristics, you may need to reboot the other device to pick up the
// changes.
package gatt
