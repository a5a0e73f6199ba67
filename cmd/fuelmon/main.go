package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/robotalks/fuel.go/pkg/comm/mqtt"
	"github.com/robotalks/fuel.go/pkg/msgs"
	"github.com/robotalks/fuel.go/pkg/render"
)

var (
	mqttURL = "mqtt://localhost:1883/fuel/"
)

func init() {
	if val := os.Getenv("FUEL_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if err = q.Connect(); err != nil {
		log.Fatalln(err)
	}

	mqtt.SubSamples(q, func(topic string, batch *msgs.SampleBatch, err error) {
		if err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		samples, err := batch.ProtocolSamples()
		if err != nil {
			log.Printf("%s: %v", topic, err)
			return
		}
		s := render.Summarize(samples)
		log.Printf("%s: [%s] %s samples=%d min=%.2f%% max=%.2f%% avg=%.2f%%", topic,
			batch.DeviceId, batch.Time().Format(time.RFC3339), s.Count, s.Min, s.Max, s.Avg)
	})
	<-(chan struct{})(nil)
}
