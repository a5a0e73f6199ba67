package sh

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/fuel.go/pkg/comm/mqtt"
	"github.com/robotalks/fuel.go/pkg/env"
)

func TestSamplesArg(t *testing.T) {
	n, err := samplesArg(nil)
	require.NoError(t, err)
	require.EqualValues(t, defaultSamples, n)

	n, err = samplesArg([]string{"0x10"})
	require.NoError(t, err)
	require.EqualValues(t, 16, n)

	_, err = samplesArg([]string{"65536"})
	require.Error(t, err)
	_, err = samplesArg([]string{"abc"})
	require.Error(t, err)
}

func TestShellQueryLoop(t *testing.T) {
	color.NoColor = true
	conf := env.Default()
	conf.URL = env.LoopURL
	s := New(conf)
	require.NoError(t, s.Open(env.LoopURL))
	defer s.Close()
	require.NotNil(t, s.Controller)

	out, err := s.Query(3)
	require.NoError(t, err)
	require.Contains(t, out, "samples=3")

	s.OutputJSON = true
	out, err = s.Query(2)
	require.NoError(t, err)
	require.Contains(t, out, "[")

	s.Close()
	require.Nil(t, s.Controller)
	require.Nil(t, s.Transport)
}

func TestShellOpenInvalid(t *testing.T) {
	s := New(env.Default())
	require.Error(t, s.Open("ftp://nowhere"))
	require.Nil(t, s.Controller)
}

func TestShellClosePublisher(t *testing.T) {
	s := New(env.Default())
	s.ClosePublisher()

	q, err := mqtt.NewQueueFromURL("mqtt://127.0.0.1:1/fuel/")
	require.NoError(t, err)
	s.Publisher = mqtt.NewPublisher(q, "dev")
	s.ClosePublisher()
	require.Nil(t, s.Publisher)
	require.False(t, q.Client.IsConnected())
}

func TestShellExec(t *testing.T) {
	color.NoColor = true
	conf := env.NewConfig()
	conf.URL, conf.MQTTURL = env.LoopURL, ""
	s := New(conf).WithAutoOpen(true)
	s.Interactive = false

	require.NoError(t, s.Exec("query", "2"))
	require.Nil(t, s.Transport)
	require.Nil(t, s.Controller)

	require.EqualError(t, s.Exec(), "command expected")
	require.Nil(t, s.Transport)

	conf.URL = "ftp://nowhere"
	require.Error(t, s.Exec("query", "2"))

	conf.URL, conf.MQTTURL = env.LoopURL, "mqtt://127.0.0.1:1/fuel/"
	require.Error(t, s.Exec("query", "2"))
	require.Nil(t, s.Transport)
	require.Nil(t, s.Publisher)
}
