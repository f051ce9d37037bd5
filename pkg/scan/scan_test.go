package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNmcliOutput(t *testing.T) {
	output := `AA\:BB\:CC\:DD\:EE\:FF:HomeNet:2437 MHz:6:87
11\:22\:33\:44\:55\:66::5180 MHz:36:42
not-a-mac:Broken:2412 MHz:1:10
AA\:BB\:CC\:DD\:EE\:01:Colon\:Net:2462 MHz:11:55
`

	actual := parseNmcliOutput(output)

	require.Len(t, actual, 3)
	assert.Equal(t, Station{
		BSSID:     "AA:BB:CC:DD:EE:FF",
		SSID:      "HomeNet",
		Signal:    87,
		Frequency: 2437,
		Channel:   6,
	}, actual[0])
	assert.Equal(t, Station{
		BSSID:     "11:22:33:44:55:66",
		SSID:      "",
		Signal:    42,
		Frequency: 5180,
		Channel:   36,
	}, actual[1])
	assert.Equal(t, "Colon:Net", actual[2].SSID)
}

func TestParseIwOutput(t *testing.T) {
	output := `BSS aa:bb:cc:dd:ee:ff(on wlan0)
	freq: 2437
	signal: -44.00 dBm
	SSID: HomeNet
	DS Parameter set: channel 6
BSS 11:22:33:44:55:66(on wlan0)
	freq: 5180
	signal: -86.00 dBm
	SSID: FarAway
	HT operation:
		 * primary channel: 36
`

	actual := parseIwOutput(output)

	require.Len(t, actual, 2)
	assert.Equal(t, Station{
		BSSID:     "AA:BB:CC:DD:EE:FF",
		SSID:      "HomeNet",
		Signal:    80,
		Frequency: 2437,
		Channel:   6,
	}, actual[0])
	assert.Equal(t, Station{
		BSSID:     "11:22:33:44:55:66",
		SSID:      "FarAway",
		Signal:    20,
		Frequency: 5180,
		Channel:   36,
	}, actual[1])
}

func TestParseNetshOutput(t *testing.T) {
	output := `
Interface name : Wi-Fi
There are 2 networks currently visible.

SSID 1 : HomeNet
    Network type            : Infrastructure
    Authentication          : WPA2-Personal
    BSSID 1                 : aa:bb:cc:dd:ee:ff
         Signal             : 87%
         Channel            : 6
    BSSID 2                 : aa:bb:cc:dd:ee:01
         Signal             : 42%
         Channel            : 11

SSID 2 :
    Network type            : Infrastructure
    BSSID 1                 : 11:22:33:44:55:66
         Signal             : 23%
         Channel            : 36
`

	actual := parseNetshOutput(output)

	require.Len(t, actual, 3)
	assert.Equal(t, Station{
		BSSID:   "AA:BB:CC:DD:EE:FF",
		SSID:    "HomeNet",
		Signal:  87,
		Channel: 6,
	}, actual[0])
	assert.Equal(t, Station{
		BSSID:   "AA:BB:CC:DD:EE:01",
		SSID:    "HomeNet",
		Signal:  42,
		Channel: 11,
	}, actual[1])
	assert.Equal(t, Station{
		BSSID:   "11:22:33:44:55:66",
		SSID:    "",
		Signal:  23,
		Channel: 36,
	}, actual[2])
}

func TestSignalPercentFromDbm(t *testing.T) {
	assert.Equal(t, 0, signalPercentFromDbm(-110))
	assert.Equal(t, 0, signalPercentFromDbm(-100))
	assert.Equal(t, 50, signalPercentFromDbm(-65))
	assert.Equal(t, 100, signalPercentFromDbm(-30))
	assert.Equal(t, 100, signalPercentFromDbm(-10))
}

func TestNormalizeBSSID(t *testing.T) {
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", normalizeBSSID(" aa:bb:cc:dd:ee:ff "))
	assert.True(t, isValidBSSID("AA:BB:CC:DD:EE:FF"))
	assert.False(t, isValidBSSID("aa:bb:cc:dd:ee:ff"))
	assert.False(t, isValidBSSID("AA:BB:CC:DD:EE"))
	assert.False(t, isValidBSSID(""))
}

func TestBackend_Set(t *testing.T) {
	cases := map[string]Backend{
		"":      BackendAuto,
		"auto":  BackendAuto,
		"nmcli": BackendNmcli,
		"iw":    BackendIw,
		"netsh": BackendNetsh,
		"demo":  BackendDemo,
		"NmCli": BackendNmcli,
	}
	for plain, expected := range cases {
		var actual Backend
		require.NoError(t, actual.Set(plain))
		assert.Equal(t, expected, actual)
	}

	var buf Backend
	assert.Error(t, buf.Set("wavemon"))
}

func TestBackend_String(t *testing.T) {
	assert.Equal(t, "auto", BackendAuto.String())
	assert.Equal(t, "demo", BackendDemo.String())
	assert.Equal(t, "illegal-scan-backend-66", Backend(66).String())
}

func TestDemoScanner_repeatsLastBatch(t *testing.T) {
	instance := NewDemoScanner(
		[]Station{{BSSID: "AA:BB:CC:DD:EE:01"}},
		[]Station{{BSSID: "AA:BB:CC:DD:EE:01"}, {BSSID: "AA:BB:CC:DD:EE:02"}},
	)

	ctx := context.Background()

	first, err := instance.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := instance.Scan(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	third, err := instance.Scan(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, third)
}

func TestStation_String(t *testing.T) {
	assert.Equal(t, "HomeNet (AA:BB:CC:DD:EE:FF)", Station{BSSID: "AA:BB:CC:DD:EE:FF", SSID: "HomeNet"}.String())
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", Station{BSSID: "AA:BB:CC:DD:EE:FF"}.String())
}
