package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/quadlink/pkg/station"
)

func init() {
	station.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	s, err := station.NewConfig().Open()
	if err != nil {
		glog.Exitf("ground station: %v", err)
	}
	if err := s.RunWithSignals(); err != nil {
		glog.Flush()
		glog.Exitf("ground station: %v", err)
	}
}
