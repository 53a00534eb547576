package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hjson/hjson-go/v4"

	"github.com/scanimetrics/wsnperf/throughput"
	"github.com/scanimetrics/wsnperf/ui"
	"github.com/scanimetrics/wsnperf/wsnperf"
)

var Version = "UNKNOWN"

var ErrInvalidPort = errors.New("invalid port number")

const (
	DefaultLinger     = time.Second
	DefaultCount      = 1024
	DefaultSize       = 1024
	DefaultStopRepeat = 8
)

// Config is the resolved set of options for one run.
type Config struct {
	Mode     wsnperf.Mode
	Protocol wsnperf.Protocol
	PingPong bool

	IPVersion    wsnperf.IPVersion
	LocalIP      net.IP
	Port         uint16
	V6Only       bool
	TrafficClass int

	// Server only
	BufferSize  int
	Linger      time.Duration
	ShowUI      bool
	MetricsAddr string

	// Logging
	LogTo      string
	OutputFile string
	NoOutput   bool
	Debug      bool

	// Client only
	ClientDest string
	Count      int
	Size       int
	Gap        time.Duration
	StopRepeat int
}

// options holds flag targets before validation. The same struct is the
// shape of a -useconffile document, so file values become flag defaults.
type options struct {
	Echo       bool   `json:"echo"`
	Throughput bool   `json:"throughput"`
	TCP        bool   `json:"tcp"`
	UDP        bool   `json:"udp"`
	PingPong   bool   `json:"pingpong"`
	Port       string `json:"port"`
	IP         string `json:"ip"`
	UseIPv4    bool   `json:"ipv4"`
	UseIPv6    bool   `json:"ipv6"`
	V6Only     bool   `json:"v6only"`
	TClass     int    `json:"tclass"`
	Buf        string `json:"buf"`
	Linger     string `json:"linger"`
	ShowUI     bool   `json:"ui"`
	Metrics    string `json:"metrics"`
	LogTo      string `json:"logto"`
	OutputFile string `json:"o"`
	NoOutput   bool   `json:"no"`
	Debug      bool   `json:"debug"`
	ClientDest string `json:"c"`
	Count      int    `json:"n"`
	Size       string `json:"l"`
	Gap        string `json:"g"`
	StopRepeat int    `json:"stoprepeat"`

	ConfFile string `json:"-"`
}

func defaultOptions() options {
	return options{
		Port:       "0",
		Linger:     DefaultLinger.String(),
		LogTo:      "stdout",
		Count:      DefaultCount,
		Size:       strconv.Itoa(DefaultSize),
		Gap:        "0s",
		StopRepeat: DefaultStopRepeat,
	}
}

func (o *options) flagSet(name string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { Usage(fs.Output(), name) }

	fs.BoolVar(&o.Echo, "e", o.Echo, "")
	fs.BoolVar(&o.Echo, "echo", o.Echo, "")
	fs.BoolVar(&o.Throughput, "t", o.Throughput, "")
	fs.BoolVar(&o.Throughput, "throughput", o.Throughput, "")
	fs.BoolVar(&o.TCP, "s", o.TCP, "")
	fs.BoolVar(&o.TCP, "tcp", o.TCP, "")
	fs.BoolVar(&o.UDP, "d", o.UDP, "")
	fs.BoolVar(&o.UDP, "udp", o.UDP, "")
	fs.BoolVar(&o.PingPong, "p", o.PingPong, "")
	fs.BoolVar(&o.PingPong, "pingpong", o.PingPong, "")
	fs.StringVar(&o.Port, "port", o.Port, "")
	fs.StringVar(&o.IP, "ip", o.IP, "")
	fs.BoolVar(&o.UseIPv4, "4", o.UseIPv4, "")
	fs.BoolVar(&o.UseIPv6, "6", o.UseIPv6, "")
	fs.BoolVar(&o.V6Only, "6only", o.V6Only, "")
	fs.IntVar(&o.TClass, "tclass", o.TClass, "")
	fs.StringVar(&o.Buf, "buf", o.Buf, "")
	fs.StringVar(&o.Linger, "linger", o.Linger, "")
	fs.BoolVar(&o.ShowUI, "ui", o.ShowUI, "")
	fs.StringVar(&o.Metrics, "metrics", o.Metrics, "")
	fs.StringVar(&o.LogTo, "logto", o.LogTo, "")
	fs.StringVar(&o.OutputFile, "o", o.OutputFile, "")
	fs.BoolVar(&o.NoOutput, "no", o.NoOutput, "")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "")
	fs.StringVar(&o.ClientDest, "c", o.ClientDest, "")
	fs.IntVar(&o.Count, "n", o.Count, "")
	fs.StringVar(&o.Size, "l", o.Size, "")
	fs.StringVar(&o.Gap, "g", o.Gap, "")
	fs.IntVar(&o.StopRepeat, "stoprepeat", o.StopRepeat, "")
	fs.StringVar(&o.ConfFile, "useconffile", o.ConfFile, "")
	return fs
}

// Parse resolves args (without the program name). A -useconffile document
// supplies defaults that explicit flags override. flag.ErrHelp is returned
// when -h was given.
func Parse(name string, args []string, output io.Writer) (*Config, error) {
	opts := defaultOptions()

	// First pass only locates the configuration file.
	scratch := defaultOptions()
	if err := scratch.flagSet(name, io.Discard).Parse(args); err == nil && scratch.ConfFile != "" {
		if err := loadFile(scratch.ConfFile, &opts); err != nil {
			return nil, err
		}
	}

	fs := opts.flagSet(name, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, fmt.Errorf("got unexpected argument %q", fs.Arg(0))
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	opts.overrideFile(set)

	cfg, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	validate := validateServerArgs
	if cfg.Mode == wsnperf.ModeClient {
		validate = validateClientArgs
	}
	if err := validate(set); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, opts *options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read configuration file: %w", err)
	}
	if err := hjson.Unmarshal(data, opts); err != nil {
		return fmt.Errorf("unable to parse configuration file %s: %w", path, err)
	}
	return nil
}

// overrideFile lets a flag replace the opposite choice made in the file.
func (o *options) overrideFile(set map[string]bool) {
	echo := set["e"] || set["echo"]
	thr := set["t"] || set["throughput"]
	if echo && !thr {
		o.Throughput = false
	} else if thr && !echo {
		o.Echo = false
	}
	tcp := set["s"] || set["tcp"]
	udp := set["d"] || set["udp"]
	if tcp && !udp {
		o.UDP = false
	} else if udp && !tcp {
		o.TCP = false
	}
}

func (o *options) resolve() (*Config, error) {
	if o.Echo && o.Throughput {
		return nil, errors.New("server mode was set multiple times")
	}
	if o.TCP && o.UDP {
		return nil, errors.New("transport type was set multiple times")
	}

	cfg := &Config{
		Mode:         wsnperf.ModeThroughput,
		Protocol:     wsnperf.TCP,
		PingPong:     o.PingPong,
		V6Only:       o.V6Only,
		TrafficClass: o.TClass,
		ShowUI:       o.ShowUI,
		MetricsAddr:  o.Metrics,
		LogTo:        o.LogTo,
		OutputFile:   o.OutputFile,
		NoOutput:     o.NoOutput,
		Debug:        o.Debug,
		ClientDest:   o.ClientDest,
		Count:        o.Count,
		StopRepeat:   o.StopRepeat,
	}
	if o.Echo {
		cfg.Mode = wsnperf.ModeEcho
	}
	if o.UDP {
		cfg.Protocol = wsnperf.UDP
	}
	if cfg.Mode == wsnperf.ModeEcho && cfg.Protocol == wsnperf.UDP {
		return nil, errors.New("the echo server only runs over tcp")
	}
	if o.ClientDest != "" {
		if o.Echo {
			return nil, errors.New("invalid argument, -e cannot be used in client (\"-c\") mode")
		}
		cfg.Mode = wsnperf.ModeClient
	}

	port, err := ParsePort(o.Port)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	switch {
	case o.UseIPv4 && o.UseIPv6:
		cfg.IPVersion = wsnperf.IPAny
	case o.UseIPv4:
		cfg.IPVersion = wsnperf.IPv4
	default:
		cfg.IPVersion = wsnperf.IPv6
	}

	if o.IP != "" {
		cfg.LocalIP = net.ParseIP(o.IP)
		if cfg.LocalIP == nil ||
			(cfg.IPVersion == wsnperf.IPv4 && cfg.LocalIP.To4() == nil) ||
			(cfg.IPVersion == wsnperf.IPv6 && cfg.LocalIP.To4() != nil) {
			return nil, fmt.Errorf("invalid ip address: %s", o.IP)
		}
	}

	if cfg.TrafficClass < 0 || cfg.TrafficClass > 255 {
		return nil, fmt.Errorf("invalid traffic class: %d", cfg.TrafficClass)
	}

	if o.Buf != "" {
		n, err := ui.ParseSize(o.Buf)
		if err != nil || n > 64*ui.MiB {
			return nil, fmt.Errorf("invalid buffer size: %s", o.Buf)
		}
		if cfg.Protocol == wsnperf.UDP && n < throughput.MinDatagramBufferSize {
			return nil, fmt.Errorf("udp buffer size must be at least %d bytes", throughput.MinDatagramBufferSize)
		}
		cfg.BufferSize = int(n)
	}

	if cfg.Linger, err = time.ParseDuration(o.Linger); err != nil || cfg.Linger < 0 {
		return nil, fmt.Errorf("invalid linger duration: %s", o.Linger)
	}
	if cfg.Gap, err = time.ParseDuration(o.Gap); err != nil || cfg.Gap < 0 {
		return nil, fmt.Errorf("invalid gap duration: %s", o.Gap)
	}

	size, err := ui.ParseSize(o.Size)
	if err != nil {
		return nil, fmt.Errorf("invalid message size: %s", o.Size)
	}
	if cfg.Protocol == wsnperf.UDP && size > 64*ui.KiB {
		return nil, errors.New("maximum udp message size is 64KiB")
	}
	cfg.Size = int(size)

	if cfg.Count < 0 {
		return nil, fmt.Errorf("invalid message count: %d", cfg.Count)
	}
	if cfg.StopRepeat < 1 {
		return nil, fmt.Errorf("invalid stop repeat: %d", cfg.StopRepeat)
	}
	return cfg, nil
}

func validateServerArgs(set map[string]bool) error {
	invalidFlags := make([]string, 0)
	for _, name := range []string{"n", "l", "g", "stoprepeat"} {
		if set[name] {
			invalidFlags = append(invalidFlags, "-"+name)
		}
	}
	if len(invalidFlags) > 0 {
		return fmt.Errorf("invalid command, %s can only be used in client (\"-c\") mode", invalidFlags)
	}
	return nil
}

func validateClientArgs(set map[string]bool) error {
	invalidFlags := make([]string, 0)
	for _, name := range []string{"ui", "6only", "buf", "linger", "metrics"} {
		if set[name] {
			invalidFlags = append(invalidFlags, "-"+name)
		}
	}
	if len(invalidFlags) > 0 {
		return fmt.Errorf("invalid command, %s can only be used in server mode", invalidFlags)
	}
	return nil
}

// ParsePort converts a decimal port number, ignoring surrounding whitespace.
// Zero is valid and lets the OS choose.
func ParsePort(s string) (uint16, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, s)
	}
	return uint16(n), nil
}
