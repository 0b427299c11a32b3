// tunnel.go implements SSH local port forwarding for reaching listing
// databases behind a bastion host.
//
// Only key-based authentication is supported (with optional
// passphrase). A random local port is allocated to avoid conflicts; the
// forwarder runs in background goroutines until Stop closes the
// listener.
package store

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"sync"

	"golang.org/x/crypto/ssh"

	"github.com/propchat/propchat/config"
)

// Tunnel manages an SSH local port forward to a remote database.
type Tunnel struct {
	sshConfig  *ssh.ClientConfig
	sshAddr    string // e.g. "bastion:22"
	remoteAddr string // e.g. "db-host:5432"

	client   *ssh.Client
	listener net.Listener
	wg       sync.WaitGroup
	done     chan struct{}
}

// NewTunnel creates a tunnel configuration (does not connect yet).
func NewTunnel(cfg config.SSHConfig, dbHost string, dbPort int) (*Tunnel, error) {
	auth, err := keyAuth(cfg)
	if err != nil {
		return nil, err
	}

	sshPort := cfg.Port
	if sshPort == 0 {
		sshPort = 22
	}

	return &Tunnel{
		sshConfig: &ssh.ClientConfig{
			User:            cfg.User,
			Auth:            auth,
			HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: known_hosts verification
		},
		sshAddr:    net.JoinHostPort(cfg.Host, strconv.Itoa(sshPort)),
		remoteAddr: net.JoinHostPort(dbHost, strconv.Itoa(dbPort)),
		done:       make(chan struct{}),
	}, nil
}

// Start opens the SSH connection and begins forwarding. It returns the
// local host and port the database driver should connect to.
func (t *Tunnel) Start() (string, int, error) {
	var err error
	t.client, err = ssh.Dial("tcp", t.sshAddr, t.sshConfig)
	if err != nil {
		return "", 0, fmt.Errorf("ssh dial %s: %w", t.sshAddr, err)
	}

	t.listener, err = net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.client.Close()
		return "", 0, fmt.Errorf("local listen: %w", err)
	}

	port := t.listener.Addr().(*net.TCPAddr).Port

	t.wg.Add(1)
	go t.acceptLoop()

	return "127.0.0.1", port, nil
}

// Stop tears down the tunnel.
func (t *Tunnel) Stop() {
	close(t.done)
	if t.listener != nil {
		t.listener.Close()
	}
	t.wg.Wait()
	if t.client != nil {
		t.client.Close()
	}
}

func (t *Tunnel) acceptLoop() {
	defer t.wg.Done()
	for {
		localConn, err := t.listener.Accept()
		if err != nil {
			select {
			case <-t.done:
				return
			default:
				continue
			}
		}
		t.wg.Add(1)
		go t.forward(localConn)
	}
}

// forward pipes data between the local connection and the remote
// database through the SSH channel.
func (t *Tunnel) forward(localConn net.Conn) {
	defer t.wg.Done()
	defer localConn.Close()

	remoteConn, err := t.client.Dial("tcp", t.remoteAddr)
	if err != nil {
		return
	}
	defer remoteConn.Close()

	done := make(chan struct{}, 2)
	go func() {
		_, _ = io.Copy(remoteConn, localConn)
		done <- struct{}{}
	}()
	go func() {
		_, _ = io.Copy(localConn, remoteConn)
		done <- struct{}{}
	}()
	<-done
}

func keyAuth(cfg config.SSHConfig) ([]ssh.AuthMethod, error) {
	if cfg.KeyPath == "" {
		return nil, fmt.Errorf("no SSH key configured (set database.ssh.key_path)")
	}

	keyBytes, err := os.ReadFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read ssh key %s: %w", cfg.KeyPath, err)
	}

	var signer ssh.Signer
	if cfg.KeyPassphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(cfg.KeyPassphrase))
	} else {
		signer, err = ssh.ParsePrivateKey(keyBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("parse ssh key: %w", err)
	}

	return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
}
