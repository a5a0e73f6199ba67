package env

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/fuel.go/pkg/bridge"
	"github.com/robotalks/fuel.go/pkg/comm"
	"github.com/robotalks/fuel.go/pkg/session"
)

func TestDialLoop(t *testing.T) {
	conf := NewConfig()
	conf.URL = LoopURL
	require.True(t, conf.IsEmulated())
	tr, err := conf.Dial()
	require.NoError(t, err)
	defer tr.Close()
	require.IsType(t, &session.Emulator{}, tr)

	samples, err := session.NewController(tr).Do(10)
	require.NoError(t, err)
	require.Len(t, samples, 10)
}

type silentDevice struct{}

func (silentDevice) ReadPacket() ([]byte, error) { return nil, comm.ErrTimeout }
func (silentDevice) WritePacket([]byte) error    { return nil }

func TestDialWebsocketReadTimeout(t *testing.T) {
	srv := httptest.NewServer(bridge.New(silentDevice{}).Handler())
	defer srv.Close()

	conf := NewConfig()
	conf.URL = "ws" + strings.TrimPrefix(srv.URL, "http")
	conf.ReadTimeout = 200 * time.Millisecond
	tr, err := conf.Dial()
	require.NoError(t, err)
	defer tr.Close()

	_, err = session.NewController(tr).Do(5)
	require.Equal(t, comm.ErrTimeout, err)
}

func TestDialUnknownScheme(t *testing.T) {
	conf := NewConfig()
	conf.URL = "ftp://host/"
	_, err := conf.Dial()
	require.Error(t, err)
}

func TestSerialPort(t *testing.T) {
	testCases := []struct {
		url    string
		expect string
	}{
		{"/dev/ttyUSB0", "/dev/ttyUSB0"},
		{"COM3", "COM3"},
		{"serial:///dev/ttyACM1", "/dev/ttyACM1"},
		{"serial://COM4", "COM4"},
		{"serial:COM5", "COM5"},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			u, err := url.Parse(tc.url)
			require.NoError(t, err)
			require.Equal(t, tc.expect, serialPort(u))
		})
	}
}

func TestNewPublisherDisabled(t *testing.T) {
	conf := NewConfig()
	conf.MQTTURL = ""
	pub, err := conf.NewPublisher()
	require.NoError(t, err)
	require.Nil(t, pub)
}

func TestDefaults(t *testing.T) {
	conf := NewConfig()
	require.NotEmpty(t, conf.DeviceID)
	require.Equal(t, Default().URL, conf.URL)
	conf.URL = "changed"
	require.NotEqual(t, "changed", Default().URL)
}
