package sockopen

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	"golang.org/x/sys/unix"
)

// Socket wraps a delivered descriptor in an owned value so the higher-level
// probing layer never handles raw close calls. The zero value is invalid;
// use NewSocket with the descriptor received by a Handler.
type Socket struct {
	fd     int
	family Family
}

// NewSocket takes ownership of an open ICMP descriptor.
func NewSocket(fd int, family Family) *Socket {
	return &Socket{fd: fd, family: family}
}

// FD returns the underlying descriptor, or -1 if ownership was transferred.
func (s *Socket) FD() int {
	return s.fd
}

// File transfers ownership of the descriptor to an *os.File.
// The Socket is invalidated; close the returned file instead.
func (s *Socket) File() *os.File {
	f := os.NewFile(uintptr(s.fd), fmt.Sprintf("icmp:%s", s.family))
	s.fd = -1
	return f
}

// PacketConn converts the socket into a net.PacketConn for the caller's
// echo layer. The runtime duplicates the descriptor, so the Socket is
// invalidated; close the returned conn instead.
func (s *Socket) PacketConn() (net.PacketConn, error) {
	f := s.File()
	defer f.Close()
	return net.FilePacketConn(f)
}

// IPv4PacketConn converts the socket into an *ipv4.PacketConn,
// invalidating the Socket.
func (s *Socket) IPv4PacketConn() (*ipv4.PacketConn, error) {
	conn, err := s.PacketConn()
	if err != nil {
		return nil, err
	}
	return ipv4.NewPacketConn(conn), nil
}

// IPv6PacketConn converts the socket into an *ipv6.PacketConn,
// invalidating the Socket.
func (s *Socket) IPv6PacketConn() (*ipv6.PacketConn, error) {
	conn, err := s.PacketConn()
	if err != nil {
		return nil, err
	}
	return ipv6.NewPacketConn(conn), nil
}

// Close releases the descriptor. Closing an invalidated Socket is a no-op.
func (s *Socket) Close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}
