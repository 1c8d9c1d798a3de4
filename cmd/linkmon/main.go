package main

import (
	"flag"
	"os"
	"path"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/mqtt"
	"github.com/robotalks/quadlink/pkg/telemetry"
	"github.com/robotalks/quadlink/pkg/telemetry/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/quadlink/"
)

func init() {
	if val := os.Getenv("QUADLINK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Exit(err)
	}
	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/cmd") || strings.HasSuffix(topic, "/cmd/reply") {
			glog.Infof("%s: %s", topic, string(payload))
			return
		}
		name := path.Base(topic)
		msg, err := msgs.Decode(name, payload)
		if err != nil {
			glog.Warningf("%s: bad message: %v", topic, err)
			return
		}
		glog.Infof("%s: %s", topic, telemetry.Describe(msg))
	}))
	if err = q.Connect(5 * time.Second); err != nil {
		glog.Exit(err)
	}
	<-(chan struct{})(nil)
}
