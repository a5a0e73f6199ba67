package main

import (
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/fuel.go/pkg/env"
)

func loopConfig() *env.Config {
	conf := env.NewConfig()
	conf.URL = env.LoopURL
	conf.MQTTURL = ""
	return conf
}

func TestRunOnce(t *testing.T) {
	color.NoColor = true
	nSamples, watch = 3, false
	require.NoError(t, run(loopConfig()))
}

func TestRunWatch(t *testing.T) {
	color.NoColor = true
	nSamples, watch, interval, count = 2, true, 10*time.Millisecond, 3
	defer func() { watch = false }()
	require.NoError(t, run(loopConfig()))
}

func TestRunErrors(t *testing.T) {
	nSamples, watch = 0x10000, false
	require.Error(t, run(loopConfig()))

	nSamples = 1
	conf := loopConfig()
	conf.URL = "ftp://nowhere"
	require.Error(t, run(conf))

	conf = loopConfig()
	conf.MQTTURL = "mqtt://127.0.0.1:1/fuel/"
	require.Error(t, run(conf))
}
