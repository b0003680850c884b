package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"callisto/host/capture"
	"callisto/host/serial"
	"callisto/trace"
)

var (
	device     = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud       = flag.Int("baud", 115200, "Baud rate (must match the target's trace lane rate)")
	output     = flag.String("output", "-", "Capture file path, or - for stdout")
	configPath = flag.String("config", "", "JSON config file (overrides other flags)")
	mock       = flag.Bool("mock", false, "Generate synthetic events instead of reading a probe")
	interval   = flag.Duration("interval", 10*time.Millisecond, "Mock generator tick interval")
)

func main() {
	flag.Parse()

	cfg := capture.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.Output = *output

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read config: %v\n", err)
			os.Exit(1)
		}
		cfg, err = capture.LoadConfig(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to parse config: %v\n", err)
			os.Exit(1)
		}
	}

	out := os.Stdout
	if cfg.Output != "-" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if *mock {
		runMock(out, *interval)
		return
	}

	fmt.Fprintf(os.Stderr, "Capturing trace from %s at %d baud...\n", cfg.Device, cfg.Baud)

	port, err := serial.Open(&serial.Config{
		Device:      cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	c := capture.New(port, out)
	c.Start()

	waitForInterrupt()

	port.Close()
	c.Stop()
	fmt.Fprintf(os.Stderr, "\nCaptured %d bytes (%d read errors)\n",
		c.BytesCaptured(), c.ReadErrors())
}

// runMock drives the synthetic generator over a loopback channel and
// streams the console port to the output, so the capture path can be
// exercised without hardware.
func runMock(out *os.File, interval time.Duration) {
	fmt.Fprintln(os.Stderr, "Mock mode: generating synthetic trace events (Ctrl-C to stop)")

	lb := trace.NewLoopback(trace.DefaultLoopbackDepth)
	gen := capture.NewGenerator(trace.NewTracer(lb))

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				gen.Step()
				if b := lb.Drain(trace.PortConsole); len(b) > 0 {
					out.Write(b)
				}
				// Keep the binary ports from backing up the loopback.
				lb.Drain(trace.PortRTOS)
				lb.Drain(trace.PortMarkers)
				lb.Drain(trace.PortCounters)
			}
		}
	}()

	waitForInterrupt()
	close(stop)
	<-done
}

func waitForInterrupt() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
}
