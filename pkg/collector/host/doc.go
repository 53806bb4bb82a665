// Package host collects the scalar host readings that need no hardware
// protocol: CPU tick-delta load, virtual memory, disk usage, network
// byte-delta throughput, and process uptime.
package host
