package net

import (
	"fmt"
	"net"
	"strings"
)

// OutgoingIP finds the address other machines on the LAN should use to
// reach this host. No packet is sent; dialing UDP only selects a route.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// Offline networks: fall back to the first usable interface.
		return firstIPv4().String()
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func firstIPv4() net.IP {
	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.To4()
			}
		}
	}
	return net.IPv4(127, 0, 0, 1)
}

// ShareLink formats the link a peer passes to `localsketch join`.
func ShareLink(scheme, host string, port int) string {
	return scheme + net.JoinHostPort(host, fmt.Sprint(port))
}

// ParseLink extracts host:port from a share link. A bare host:port is
// accepted as well.
func ParseLink(scheme, link string) (string, error) {
	addr := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(link), scheme), "/")
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid share link %q: %w", link, err)
	}
	if host == "" || port == "" {
		return "", fmt.Errorf("invalid share link %q: missing host or port", link)
	}
	return addr, nil
}
