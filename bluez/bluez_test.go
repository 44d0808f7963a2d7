package bluez

import (
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"

	gatt "github.com/DiyaS-77/FindMe-Profile"
)

func adapterObject() map[string]map[string]dbus.Variant {
	return map[string]map[string]dbus.Variant{
		gatt.AdapterInterface: {"Powered": dbus.MakeVariant(false)},
	}
}

func deviceObject() map[string]map[string]dbus.Variant {
	return map[string]map[string]dbus.Variant{
		"org.bluez.Device1": {"Connected": dbus.MakeVariant(false)},
	}
}

func TestPickAdapter(t *testing.T) {
	cases := []struct {
		name    string
		objects managedObjects
		adapter string
		want    dbus.ObjectPath
		wantErr bool
	}{
		{
			name:    "empty listing",
			objects: managedObjects{},
			wantErr: true,
		},
		{
			name: "no adapter capability",
			objects: managedObjects{
				"/org/bluez/hci0/dev_AA": deviceObject(),
			},
			wantErr: true,
		},
		{
			name: "single adapter",
			objects: managedObjects{
				"/org/bluez/hci0": adapterObject(),
			},
			want: "/org/bluez/hci0",
		},
		{
			name: "first adapter wins",
			objects: managedObjects{
				"/org/bluez/hci1":        adapterObject(),
				"/org/bluez/hci0":        adapterObject(),
				"/org/bluez/hci0/dev_AA": deviceObject(),
			},
			want: "/org/bluez/hci0",
		},
		{
			name: "named adapter present",
			objects: managedObjects{
				"/org/bluez/hci0": adapterObject(),
				"/org/bluez/hci1": adapterObject(),
			},
			adapter: "hci1",
			want:    "/org/bluez/hci1",
		},
		{
			name: "named adapter missing",
			objects: managedObjects{
				"/org/bluez/hci0": adapterObject(),
			},
			adapter: "hci9",
			wantErr: true,
		},
		{
			name: "named path without adapter capability",
			objects: managedObjects{
				"/org/bluez/hci0": deviceObject(),
			},
			adapter: "hci0",
			wantErr: true,
		},
	}

	for _, tt := range cases {
		got, err := pickAdapter(tt.objects, tt.adapter)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %q", tt.name, got)
			} else if !errors.Is(err, ErrAdapterNotFound) {
				t.Errorf("%s: error %v is not ErrAdapterNotFound", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: got %q want %q", tt.name, got, tt.want)
		}
	}
}
