package rtspingest

import (
	"net"

	"github.com/clearskyvideo/rtspingest/pkg/base"
	"github.com/clearskyvideo/rtspingest/pkg/headers"
	"github.com/clearskyvideo/rtspingest/pkg/liberrors"
	rtpsock "github.com/clearskyvideo/rtspingest/pkg/rtp"
)

// negotiateTransport runs the deterministic transport negotiation ladder
// of base spec §4.1: TCP interleaved first, then UDP candidate port
// pairs, then UDP auto-assign.
func (s *Session) negotiateTransport() error {
	setupURL := buildSetupURL(s.video.control, s.contentBase, s.rtspURL.String())

	attempts := 0

	if s.cfg.PreferredTransport != TransportForceUDP {
		attempts++
		ok, err := s.trySetupTCP(setupURL)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	if s.cfg.PreferredTransport == TransportForceTCP {
		return liberrors.ErrSessionTransportExhausted{Attempts: attempts}
	}

	for _, pair := range s.cfg.UDPPortCandidates {
		if !udpPortPairAvailable(pair) {
			continue
		}
		attempts++
		ok, err := s.trySetupUDP(setupURL, pair, true)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	attempts++
	ok, err := s.trySetupUDP(setupURL, [2]int{0, 0}, false)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	return liberrors.ErrSessionTransportExhausted{Attempts: attempts}
}

func udpPortPairAvailable(pair [2]int) bool {
	for _, p := range pair {
		conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: p})
		if err != nil {
			return false
		}
		conn.Close()
	}
	return true
}

func (s *Session) trySetupTCP(setupURL string) (bool, error) {
	tr := headers.Transport{
		Protocol:       base.StreamProtocolTCP,
		Delivery:       deliveryUnicast(),
		InterleavedIds: &[2]int{0, 1},
	}

	resp, err := s.sendSetup(setupURL, tr)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != base.StatusOK {
		return false, nil
	}

	respTr, ok := firstTransport(resp.Header)
	if !ok || respTr.InterleavedIds == nil {
		return false, nil
	}

	if s.sessionID == "" {
		return false, liberrors.ErrSessionMissingSessionID{}
	}

	s.transportMode = TransportModeTCPInterleaved
	s.interleavedIDs = *respTr.InterleavedIds
	return true, nil
}

func (s *Session) trySetupUDP(setupURL string, pair [2]int, fixedPorts bool) (bool, error) {
	requestedPort := 0
	if fixedPorts {
		requestedPort = pair[0]
	}

	conn, err := rtpsock.ListenUDP(requestedPort)
	if err != nil {
		return false, nil
	}

	boundPort := conn.LocalAddr().(*net.UDPAddr).Port

	tr := headers.Transport{
		Protocol: base.StreamProtocolUDP,
		Delivery: deliveryUnicast(),
	}
	if fixedPorts {
		tr.ClientPorts = &[2]int{pair[0], pair[1]}
	}

	resp, err := s.sendSetup(setupURL, tr)
	if err != nil {
		conn.Close()
		return false, err
	}
	if resp.StatusCode != base.StatusOK {
		conn.Close()
		return false, nil
	}

	respTr, _ := firstTransport(resp.Header)

	if s.sessionID == "" {
		conn.Close()
		return false, liberrors.ErrSessionMissingSessionID{}
	}

	clientPorts := [2]int{boundPort, boundPort + 1}
	if respTr.ClientPorts != nil {
		clientPorts = *respTr.ClientPorts
	}
	if respTr.ServerPorts != nil {
		s.serverPorts = *respTr.ServerPorts
	}

	s.transportMode = TransportModeUDP
	s.clientPorts = clientPorts
	s.udpConn = conn
	return true, nil
}

// firstTransport decodes a SETUP response's Transport header and returns
// its first entry. Some servers echo back more than one comma-separated
// transport per RFC 2326 §12.39 even though this client only ever offers
// one; headers.Transports handles that split so a literal comma inside the
// header doesn't break a single-Transport Unmarshal.
func firstTransport(h base.Header) (headers.Transport, bool) {
	thv, ok := h["Transport"]
	if !ok {
		return headers.Transport{}, false
	}

	var ts headers.Transports
	if err := ts.Unmarshal(thv); err != nil || len(ts) == 0 {
		return headers.Transport{}, false
	}

	return ts[0], true
}

func deliveryUnicast() *base.StreamDelivery {
	v := base.StreamDeliveryUnicast
	return &v
}

func (s *Session) sendSetup(setupURL string, tr headers.Transport) (*base.Response, error) {
	u, err := base.ParseURL(setupURL)
	if err != nil {
		return nil, err
	}

	req := &base.Request{
		Method: base.Setup,
		URL:    u,
		Header: base.Header{
			"Transport": tr.Marshal(),
		},
	}

	return s.do(req)
}
