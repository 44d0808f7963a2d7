package gatt

// This file includes names from the BlueZ D-Bus API.

const (
	// BluezBusName is the daemon's well-known name on the system bus.
	BluezBusName = "org.bluez"

	AdapterInterface            = "org.bluez.Adapter1"
	GattManagerInterface        = "org.bluez.GattManager1"
	GattServiceInterface        = "org.bluez.GattService1"
	GattCharacteristicInterface = "org.bluez.GattCharacteristic1"
	AdvertisingManagerInterface = "org.bluez.LEAdvertisingManager1"
	AdvertisementInterface      = "org.bluez.LEAdvertisement1"

	ObjectManagerInterface = "org.freedesktop.DBus.ObjectManager"
	PropertiesInterface    = "org.freedesktop.DBus.Properties"

	propertiesChangedSignal = PropertiesInterface + ".PropertiesChanged"
)
