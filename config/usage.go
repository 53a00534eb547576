package config

import (
	"fmt"
	"io"
)

// Usage prints the command-line usage text
func Usage(w io.Writer, name string) {
	fmt.Fprintf(w, "wsnperf %s: simple IPv6 test server\n", Version)
	fmt.Fprintf(w, "\nUsage:\n\t%s [-h] [-e | -t] [-s | -d] [-p] [-port pnum]\n", name)
	fmt.Fprintf(w, "\t%s -c <server> [-s | -d] [-p] [-n count] [-l len]\n", name)

	fmt.Fprintln(w, "\nCommon Parameters")
	fmt.Fprintln(w, "================================================================================")
	printFlagUsage(w, "h", "", "Help")
	printFlagUsage(w, "s,-tcp", "", "Use TCP. This is the default. The echo server always runs over TCP.")
	printFlagUsage(w, "d,-udp", "", "Use UDP.")
	printFlagUsage(w, "p,-pingpong", "", "Ping-pong mode. The UDP throughput server acknowledges every",
		"packet with its 4 byte sequence number. Does nothing outside UDP throughput mode.",
		"In client mode, count the acknowledgements.")
	printFlagUsage(w, "port", "<pnum>", "Port to listen on or connect to. By default, the OS selects one.")
	printFlagUsage(w, "4", "", "Use only IP v4 version")
	printFlagUsage(w, "6", "", "Use only IP v6 version. This is the default.")
	printFlagUsage(w, "tclass", "<n>", "IPv6 traffic class of outgoing packets (0-255).")
	printFlagUsage(w, "useconffile", "<file>", "Read defaults from an HJSON or JSON file. Flags override it.")

	fmt.Fprintln(w, "\nLogging")
	fmt.Fprintln(w, "================================================================================")
	printFlagUsage(w, "logto", "<stdout|syslog|file>", "Where to write human readable logs. Default: stdout")
	printFlagUsage(w, "o", "<filename>", "Also write JSON lines to <filename>.")
	printFlagUsage(w, "no", "", "Disable the JSON log file.")
	printFlagUsage(w, "debug", "", "Enable debug information in logging output.")

	fmt.Fprintln(w, "\nMode: Server")
	fmt.Fprintln(w, "================================================================================")
	printFlagUsage(w, "e,-echo", "", "Run an echo server which echoes lines of text back to the",
		"client. Accepts one connection and stops when \"exit\" is read on its own line.")
	printFlagUsage(w, "t,-throughput", "", "Run a throughput server which measures the rate of one client",
		"streaming data. This is the default.")
	printFlagUsage(w, "ip", "<addr>", "Local address to bind. Default: all addresses.")
	printFlagUsage(w, "6only", "", "Do not accept IPv4-mapped peers on an IPv6 socket.")
	printFlagUsage(w, "buf", "<len>", "Read buffer size, e.g. 1, 2KB, 64KIB.",
		"Default: 2048 for TCP, 64KIB for UDP.")
	printFlagUsage(w, "linger", "<duration>", "Time to keep the UDP socket open after the stop",
		"sequence so late retries are absorbed. Default: 1s")
	printFlagUsage(w, "ui", "", "Show output in text UI.")
	printFlagUsage(w, "metrics", "<addr>", "Serve Prometheus metrics on <addr>, e.g. :9100")

	fmt.Fprintln(w, "\nMode: Client")
	fmt.Fprintln(w, "================================================================================")
	printFlagUsage(w, "c", "<server>", "Stream data to a throughput server at <server>.")
	printFlagUsage(w, "n", "<count>", "Number of messages. Default: 1024")
	printFlagUsage(w, "l", "<len>", "Message length. Default: 1024")
	printFlagUsage(w, "g", "<duration>", "Gap between messages. Default: 0s")
	printFlagUsage(w, "stoprepeat", "<count>", "Number of UDP stop messages. Default: 8")
}

func printFlagUsage(w io.Writer, flag, info string, helptext ...string) {
	fmt.Fprintf(w, "\t-%s %s\n", flag, info)
	for _, help := range helptext {
		fmt.Fprintf(w, "\t\t%s\n", help)
	}
}
