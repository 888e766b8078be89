package rtp

import (
	"context"
	"fmt"
	"net"
	"time"
)

const (
	udpReceiveBufferSize = 640 * 1024
	udpReadTimeout       = 5 * time.Second
	udpIdleWarnAfter     = 25 * time.Second
)

// ListenUDP binds a UDP socket for RTP reception on the requested local
// port. If the port is already in use, it falls back to an ephemeral port,
// per base spec §4.2.
func ListenUDP(localPort int) (*net.UDPConn, error) {
	addr := &net.UDPAddr{Port: localPort}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		conn, err = net.ListenUDP("udp", &net.UDPAddr{Port: 0})
		if err != nil {
			return nil, fmt.Errorf("rtp: unable to bind UDP socket: %w", err)
		}
	}

	if err := conn.SetReadBuffer(udpReceiveBufferSize); err != nil {
		conn.Close()
		return nil, fmt.Errorf("rtp: unable to set receive buffer: %w", err)
	}

	return conn, nil
}

// ReceiveLoop runs the UDP receive loop until ctx is canceled. Every
// datagram received is handed to d.Push. A run of five consecutive 5 s read
// timeouts (25 s of silence) triggers a non-fatal idle warning via the
// depacketizer's observer.
func (d *Depacketizer) ReceiveLoop(ctx context.Context, conn *net.UDPConn) {
	buf := make([]byte, 65536)
	consecutiveTimeouts := 0
	warnedIdle := false

	for {
		if ctx.Err() != nil {
			return
		}

		if err := conn.SetReadDeadline(time.Now().Add(udpReadTimeout)); err != nil {
			return
		}

		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				consecutiveTimeouts++
				if consecutiveTimeouts*int(udpReadTimeout/time.Second) >= int(udpIdleWarnAfter/time.Second) && !warnedIdle {
					warnedIdle = true
					d.logger.Warn("no RTP data received for 25s, possible NAT/firewall blocking UDP")
					if d.observer.OnError != nil {
						d.observer.OnError(fmt.Errorf("no RTP data received — possible NAT/firewall blocking UDP"), false)
					}
				}
				continue
			}

			if ctx.Err() != nil {
				return
			}

			d.logger.Debug("UDP receive error", "error", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		consecutiveTimeouts = 0
		warnedIdle = false

		packet := make([]byte, n)
		copy(packet, buf[:n])
		d.Push(packet)
	}
}

// HousekeepingLoop runs the 1 s-tick sweep that discards stale in-progress
// FU-A reassembly, until ctx is canceled.
func (d *Depacketizer) HousekeepingLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			d.Sweep(now)
			if d.stats.shouldReport(now) {
				d.report(now)
			}
		}
	}
}
