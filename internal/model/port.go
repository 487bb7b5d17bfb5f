package model

import (
	"strconv"

	composetypes "github.com/compose-spec/compose-go/v2/types"
)

// PortString renders a long-syntax port entry in the short form used by
// compose files, e.g. "127.0.0.1:8080:80/udp".
func PortString(p composetypes.ServicePortConfig) string {
	s := strconv.FormatUint(uint64(p.Target), 10)
	if p.Published != "" {
		s = p.Published + ":" + s
		if p.HostIP != "" {
			s = p.HostIP + ":" + s
		}
	}
	if p.Protocol != "" && p.Protocol != "tcp" {
		s += "/" + p.Protocol
	}
	return s
}
