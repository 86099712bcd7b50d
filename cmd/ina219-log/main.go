// Command ina219-log polls a TI INA219 current/power sensor over I2C,
// integrates energy over time, and streams rows to the terminal, optionally
// to a timestamped CSV file, and optionally correlated with lines from a
// serial device.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/crdietrich/pi-INA219/internal/app/config"
	"github.com/crdietrich/pi-INA219/internal/domain"
	"github.com/crdietrich/pi-INA219/pkg/powerlog"
)

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printHelp()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ina219-log: %v\n", err)
		fmt.Fprintln(os.Stderr, "use -h or --help for details")
		os.Exit(2)
	}

	rt, err := powerlog.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ina219-log: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rt.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ina219-log: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs layers flag values over an optional yaml config file over the
// defaults. Only flags that were actually set override the file.
func parseArgs(args []string) (config.Run, error) {
	fs := flag.NewFlagSet("ina219-log", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var (
		configPath string
		number     string
		interval   float64
		units      string
		saveDir    string
		address    string
		port       string
		baud       int
		tx         string
		graph      float64
		metrics    string
	)
	for _, name := range []string{"c", "config"} {
		fs.StringVar(&configPath, name, "", "yaml config file")
	}
	for _, name := range []string{"n", "number"} {
		fs.StringVar(&number, name, "4", "number of samples, int or 'inf'")
	}
	for _, name := range []string{"i", "interval"} {
		fs.Float64Var(&interval, name, 1.0, "seconds between samples")
	}
	for _, name := range []string{"u", "units"} {
		fs.StringVar(&units, name, "J", "energy units: J, Wh, kW")
	}
	for _, name := range []string{"s", "save"} {
		fs.StringVar(&saveDir, name, "", "directory for the CSV save file")
	}
	for _, name := range []string{"a", "address"} {
		fs.StringVar(&address, name, "", "I2C address, e.g. 0x40")
	}
	for _, name := range []string{"p", "port"} {
		fs.StringVar(&port, name, "", "serial device for correlation mode")
	}
	for _, name := range []string{"b", "baud"} {
		fs.IntVar(&baud, name, 0, "serial baud rate")
	}
	for _, name := range []string{"t", "tx"} {
		fs.StringVar(&tx, name, "", "string transmitted before each correlated read")
	}
	for _, name := range []string{"g", "graph"} {
		fs.Float64Var(&graph, name, 0, "bar plot maximum power")
	}
	for _, name := range []string{"m", "metrics"} {
		fs.StringVar(&metrics, name, "", "Prometheus textfile path written at exit")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config.Run{}, flag.ErrHelp
		}
		return config.Run{}, err
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Run{}, err
		}
		cfg = loaded
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	setAny := func(names ...string) bool {
		for _, n := range names {
			if set[n] {
				return true
			}
		}
		return false
	}

	if setAny("n", "number") {
		count, err := parseCount(number)
		if err != nil {
			return config.Run{}, err
		}
		cfg.Count = count
	}
	if setAny("i", "interval") {
		cfg.Interval = interval
	}
	if setAny("u", "units") {
		cfg.Unit = domain.EnergyUnit(units)
	}
	if setAny("s", "save") {
		cfg.SaveDir = saveDir
	}
	if setAny("a", "address") {
		addr, err := strconv.ParseUint(address, 0, 8)
		if err != nil {
			return config.Run{}, fmt.Errorf("bad I2C address %q: %w", address, err)
		}
		cfg.Address = int(addr)
	}
	if setAny("p", "port") {
		cfg.Serial.Port = port
	}
	if setAny("b", "baud") {
		cfg.Serial.Baud = baud
	}
	if setAny("t", "tx") {
		cfg.Serial.Tx = tx
	}
	if setAny("g", "graph") {
		cfg.GraphMax = graph
	}
	if setAny("m", "metrics") {
		cfg.MetricsFile = metrics
	}

	if err := cfg.Validate(); err != nil {
		return config.Run{}, err
	}
	return cfg, nil
}

func parseCount(s string) (int, error) {
	if s == "inf" {
		return 0, nil // < 1 means unbounded
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad sample count %q: %w", s, err)
	}
	return n, nil
}

func printHelp() {
	fmt.Print(`Tool for collecting electrical current data from the
TI INA219 I2C chip

Usage:
  ina219-log -n 20 -i 0.5 -u kW -s ./data
  ina219-log -n inf -s ./data -g 5

Options:
  -h, --help            This help screen.
  -n, --number <x>      Number of samples to take, int or 'inf' [default: 4].
  -i, --interval <t>    Time in seconds between samples [default: 1.0].
  -u, --units <y>       Units to report: J, Wh, kW [default: J].
  -s, --save <dir>      Save data to a timestamped CSV in this directory.
  -a, --address <hex>   I2C address of the INA219 on the bus [default: 0x40].
  -p, --port <name>     Serial device for correlation mode.
  -b, --baud <rate>     Serial baud rate, required with --port.
  -t, --tx <string>     String transmitted before each correlated read.
  -g, --graph <max>     Show a bar plot scaled to this maximum power.
  -c, --config <file>   YAML config file; flags override its values.
  -m, --metrics <file>  Write Prometheus textfile metrics at exit.
`)
}
