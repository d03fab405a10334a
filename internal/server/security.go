// Package server provides the listeners the account service is exposed on.
package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/account-auth/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// TLSListener serves connections over TLS using a certificate and key loaded
// from disk on every Listen call, so a restart picks up rotated files.
type TLSListener struct {
	certFile string
	keyFile  string
}

func NewTLSListener(certFile, keyFile string) *TLSListener {
	return &TLSListener{
		certFile: certFile,
		keyFile:  keyFile,
	}
}

// Config loads the key pair and returns the server TLS configuration.
func (l *TLSListener) Config() (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	cfg, err := l.Config()
	if err != nil {
		return nil, err
	}
	ln, err := tls.Listen(protocol, addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// PlainListener serves unencrypted TCP. Use only behind a TLS-terminating
// proxy or for local development: session tokens travel in metadata.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
