package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/fuel.go/pkg/env"
	fx "github.com/robotalks/fuel.go/pkg/framework"
	"github.com/robotalks/fuel.go/pkg/monitor"
	"github.com/robotalks/fuel.go/pkg/protocol"
	"github.com/robotalks/fuel.go/pkg/render"
	"github.com/robotalks/fuel.go/pkg/session"
)

const startupSamples = 60

var (
	nSamples   = 20
	outputJSON bool
	watch      bool
	interval   = monitor.DefaultInterval
	count      int
	barWidth   = render.DefaultConfig.Width
)

func init() {
	env.SetupFlags()
	flag.IntVar(&nSamples, "n", nSamples, "Number of samples to query, also accepted as the first argument.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print samples in JSON.")
	flag.BoolVar(&watch, "watch", watch, "Keep querying on every interval.")
	flag.DurationVar(&interval, "interval", interval, "Query interval in watch mode.")
	flag.IntVar(&count, "count", count, "Number of queries in watch mode, 0 for unlimited.")
	flag.IntVar(&barWidth, "width", barWidth, "Width of the level bar.")
}

func main() {
	flag.Parse()
	if arg := flag.Arg(0); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			log.Fatalf("invalid number of samples %q", arg)
		}
		nSamples = n
	}
	if err := run(env.NewConfig()); err != nil {
		log.Fatalln(err)
	}
}

func run(conf *env.Config) error {
	if nSamples < 0 || nSamples > 0xffff {
		return fmt.Errorf("number of samples out of range: %d", nSamples)
	}

	glog.V(1).Infof("Query packet: %s", protocol.Hex(protocol.EncodeQuery(startupSamples)))

	t, err := conf.Dial()
	if err != nil {
		return err
	}
	defer t.Close()

	pub, err := conf.NewPublisher()
	if err != nil {
		return err
	}

	rc := render.DefaultConfig
	rc.Width = barWidth
	var handlers []monitor.SampleHandler
	if outputJSON {
		handlers = append(handlers, &render.JSONWriter{Writer: os.Stdout})
	} else {
		handlers = append(handlers, render.NewChart(rc))
	}
	if pub != nil {
		handlers = append(handlers, pub)
		defer pub.Queue.Close()
	}

	poller := monitor.NewPoller(session.NewController(t), uint16(nSamples), handlers...)
	if !watch {
		return poller.PollOnce()
	}
	poller.Interval, poller.Count = interval, count
	poller.ErrorHandler = func(err error) {
		glog.Warningf("query failed at %s: %v", time.Now().Format(time.RFC3339), err)
	}
	return fx.NewRunner().HandleSignals().Go(poller).Wait()
}
