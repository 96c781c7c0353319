package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a ops server address in format [host]:[port]
//	-backend coordination backend (etcd, http, memory)
//	-endpoints comma-separated etcd endpoints
//	-base-url HTTP KV API base URL
//	-dial-timeout coordination dial timeout (e.g., "5s")
//	-coordination-timeout coordination request timeout (e.g., "5s")
//	-directory service directory name in the coordination namespace
//	-environment runtime environment name
//	-m/-manifest json parameter manifest path
//	-c/-config json file path with configs
//	-request-timeout ops server request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var backend string
	var endpoints string
	var baseURL string
	var dialTimeout time.Duration
	var coordinationTimeout time.Duration
	var directoryName string
	var environment string
	var manifestPath string
	var jsonConfigPath string
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&backend, "backend", "", "Coordination backend (etcd, http, memory)")
	flag.StringVar(&endpoints, "endpoints", "", "Comma-separated etcd endpoints")
	flag.StringVar(&baseURL, "base-url", "", "HTTP KV API base URL")
	flag.DurationVar(&dialTimeout, "dial-timeout", 0, "Coordination dial timeout (e.g., 5s)")
	flag.DurationVar(&coordinationTimeout, "coordination-timeout", 0, "Coordination request timeout (e.g., 5s)")
	flag.StringVar(&directoryName, "directory", "", "Service directory name")
	flag.StringVar(&environment, "environment", "", "Runtime environment name")
	flag.StringVar(&manifestPath, "m", "", "JSON parameter manifest path")
	flag.StringVar(&manifestPath, "manifest", "", "JSON parameter manifest path (alias)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		Coordination: Coordination{
			Backend:        backend,
			Endpoints:      splitEndpoints(endpoints),
			BaseURL:        baseURL,
			DialTimeout:    dialTimeout,
			RequestTimeout: coordinationTimeout,
		},
		Resolver: Resolver{
			DirectoryName: directoryName,
			Environment:   environment,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		ManifestPath: manifestPath,
		JSONFilePath: jsonConfigPath,
	}
}

func splitEndpoints(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	endpoints := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			endpoints = append(endpoints, trimmed)
		}
	}

	return endpoints
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
